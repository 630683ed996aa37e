package health

import (
	"encoding/json"
	"net/http"

	"github.com/rlindsey28/chat-dice/logger"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type Handler struct {
	Service string
}

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

const name = "healthcheck"

var (
	tracer = otel.Tracer(name)
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), name)
	defer span.End()

	resp := Response{Status: "OK", Service: h.Service}
	log := logger.FromCtx(r.Context())
	log.Debug("health check", zap.String("status", resp.Status))
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		log.Error("failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
