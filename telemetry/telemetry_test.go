package telemetry

import (
	"context"
	"testing"

	"github.com/rlindsey28/chat-dice/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOtelSDKDisabled(t *testing.T) {
	shutdown, err := SetupOtelSDK(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupOtelSDKUnknownExporter(t *testing.T) {
	_, err := SetupOtelSDK(context.Background(), config.TelemetryConfig{
		Enabled:          true,
		ServiceName:      "dice-test",
		ExporterEndpoint: "localhost:4317",
		MetricsExporter:  "carrier-pigeon",
	})
	assert.ErrorContains(t, err, "unknown metrics exporter")
}
