package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/log"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger("debug", log.ComponentWorker)
	require.NotNil(t, logger)

	assert.Equal(t, log.ComponentWorker, logger.Component())
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	logger = SetupLogger("error", "")
	assert.Equal(t, log.ComponentApp, logger.Component())
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
}

func TestSignalContext_Cancel(t *testing.T) {
	ctx, cancel := SignalContext(log.New(log.DefaultConfig()))
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
