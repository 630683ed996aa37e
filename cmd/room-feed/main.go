package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/config"
	"github.com/rlindsey28/chat-dice/kafka"
	"github.com/rlindsey28/chat-dice/logger"
	"github.com/rlindsey28/chat-dice/telemetry"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	room := flag.StringP("room", "r", "", "only print broadcasts to this room")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(ctx)
	if err != nil {
		log.Panic("failed to process config", zap.Error(err))
	}
	zaplog := logger.Init("room-feed", conf.LogLevel)
	zaplog.Info("loaded config", zap.Any("kafka", conf.Kafka))

	otelShutdown, err := telemetry.SetupOtelSDK(ctx, conf.Telemetry)
	if err != nil {
		zaplog.Panic("failed to setup otel", zap.Error(err))
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zaplog.Error("failed to shutdown otel", zap.Error(err))
		}
	}()

	feed := kafka.NewFeed(*room, func(_ context.Context, b chat.Broadcast) error {
		_, err := fmt.Fprintf(os.Stdout, "%s [%s] %s\n", b.SentAt.Format("15:04:05"), b.Room, b.Line)
		return err
	})
	if err := feed.Run(ctx, conf.Kafka); err != nil {
		zaplog.Error("room feed stopped", zap.Error(err))
		return
	}
	zaplog.Info("shutting down room feed")
}
