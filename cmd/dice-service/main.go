package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rlindsey28/chat-dice/api"
	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/config"
	"github.com/rlindsey28/chat-dice/dicecmd"
	"github.com/rlindsey28/chat-dice/health"
	"github.com/rlindsey28/chat-dice/kafka"
	"github.com/rlindsey28/chat-dice/logger"
	"github.com/rlindsey28/chat-dice/rolldice"
	"github.com/rlindsey28/chat-dice/telemetry"

	"go.uber.org/zap"
)

func main() {
	// Handle SIGINT gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	conf, err := config.Load(ctx)
	if err != nil {
		log.Panic("failed to process config", zap.Error(err))
	}
	zaplog := logger.Init(conf.ServiceName, conf.LogLevel)
	defer zaplog.Sync()

	// Setup otel
	otelShutdown, err := telemetry.SetupOtelSDK(ctx, conf.Telemetry)
	if err != nil {
		zaplog.Panic("failed to setup otel", zap.Error(err))
	}
	// Handle otel shutdown
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zaplog.Error("failed to shutdown otel", zap.Error(err))
		}
	}()

	var sink chat.Sink = chat.LogSink{}
	if conf.Kafka.Enabled {
		producer, err := kafka.NewProducer(conf.Kafka)
		if err != nil {
			zaplog.Panic("failed to create kafka producer", zap.Error(err))
		}
		publisher := kafka.NewPublisher(conf.Kafka.Topic, producer)
		defer publisher.Close()
		sink = publisher
	}

	commands := chat.NewRouter(sink)
	dicecmd.Register(commands, rolldice.NewRoller(nil))

	router := api.NewRouter(commands, &health.Handler{Service: conf.ServiceName})

	zaplog.Debug("starting server", zap.String("service-name", conf.ServiceName), zap.String("port", conf.Port))
	srv := &http.Server{
		Addr:         conf.Port,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  time.Second,
		WriteTimeout: 10 * time.Second,
		Handler:      router,
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal
	select {
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			zaplog.Error("server error", zap.Error(err))
		}
		return
	case <-ctx.Done():
		zaplog.Info("shutting down server")
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zaplog.Error("failed to shutdown server", zap.Error(err))
	}
}
