package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	ServiceName string          `env:"SERVICE_NAME, default=dice-service"`
	Port        string          `env:"PORT, default=:8080"`
	LogLevel    string          `env:"LOG_LEVEL, default=info"`
	Kafka       KafkaConfig     `env:", prefix=KAFKA_"`
	Telemetry   TelemetryConfig `env:", prefix=OTEL_"`
}

type TelemetryConfig struct {
	Enabled          bool   `env:"ENABLED, default=false"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE, default=chat"`
	ServiceName      string `env:"SERVICE_NAME, default=dice-service"`
	ExporterEndpoint string `env:"EXPORTER_OTLP_ENDPOINT, default=localhost:4317"`
	MetricsExporter  string `env:"METRICS_EXPORTER, default=otlp"`
}

type KafkaConfig struct {
	Enabled       bool     `env:"ENABLED, default=false"`
	Brokers       []string `env:"BROKERS, delimiter=;, default=localhost:9092"`
	Topic         string   `env:"TOPIC, default=chat.room.broadcasts"`
	ConsumerGroup string   `env:"CONSUMER_GROUP, default=room-feed"`
}

// Load reads the AppConfig from the process environment.
func Load(ctx context.Context) (AppConfig, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (AppConfig, error) {
	var conf AppConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &conf,
		Lookuper: lookuper,
	}); err != nil {
		return AppConfig{}, fmt.Errorf("failed to process config: %w", err)
	}
	return conf, nil
}
