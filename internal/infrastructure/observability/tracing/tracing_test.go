package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

func TestInit_SinEndpointEsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), logger.Nop(),
		config.AppConfig{Name: "farmacia-api", Env: "test"},
		config.TelemetryConfig{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
