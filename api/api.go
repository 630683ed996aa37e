// Package api exposes the chat command surface over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/health"
	"github.com/rlindsey28/chat-dice/logger"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const name = "api"

var (
	tracer = otel.Tracer(name)
)

// Dispatcher runs a chat command line for a caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, caller chat.Caller, line string) (chat.Transcript, error)
}

type CommandRequest struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

type Metrics struct {
	CommandCount metric.Int64Counter
}

func (m *Metrics) InitMetrics() {
	log := logger.Get()
	meter := otel.Meter(name)

	var err error
	m.CommandCount, err = meter.Int64Counter("chat.commands",
		metric.WithDescription("The number of chat commands received"),
		metric.WithUnit("{call}"))
	if err != nil {
		log.Error("failed to create counter", zap.Error(err))
		m.CommandCount = noop.Int64Counter{}
	}
}

type Handler struct {
	Dispatcher Dispatcher
	Metrics    Metrics
}

// NewRouter wires the health check and the room command endpoint.
func NewRouter(d Dispatcher, hc *health.Handler) *mux.Router {
	h := &Handler{Dispatcher: d}
	h.Metrics.InitMetrics()

	router := mux.NewRouter()
	router.HandleFunc("/health", hc.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{room}/commands", h.Command).Methods(http.MethodPost)
	return router
}

// Command runs one chat command in the room named by the path and returns
// its private replies and room broadcasts.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	ctx, span := tracer.Start(r.Context(), "command")
	defer span.End()

	room := mux.Vars(r)["room"]
	req := &CommandRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Debug("failed to decode CommandRequest", zap.Error(err))
		span.SetStatus(otelcodes.Error, "failed to decode CommandRequest")
		span.RecordError(err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.User) == "" || strings.TrimSpace(req.Message) == "" {
		span.SetStatus(otelcodes.Error, "missing user or message")
		http.Error(w, "user and message are required", http.StatusBadRequest)
		return
	}

	h.Metrics.CommandCount.Add(ctx, 1, metric.WithAttributes(attribute.String("chat.room", room)))
	status := http.StatusOK
	transcript, err := h.Dispatcher.Dispatch(ctx, chat.Caller{User: req.User, Room: room}, req.Message)
	if err != nil {
		span.SetStatus(otelcodes.Error, "command failed")
		span.RecordError(err)
		status = http.StatusInternalServerError
	}
	if transcript.Replies == nil {
		transcript.Replies = []string{}
	}
	if transcript.Broadcasts == nil {
		transcript.Broadcasts = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(transcript); err != nil {
		log.Error("failed to encode Transcript", zap.Error(err))
	}
}
