package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"go-posting-workflow/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitLevel(t *testing.T) {
	ctx := context.Background()

	logger.Init("warn")
	assert.False(t, logger.Log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Log.Enabled(ctx, slog.LevelWarn))

	logger.Init("debug")
	assert.True(t, logger.Log.Enabled(ctx, slog.LevelDebug))

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger.Init("shout")
		assert.False(t, logger.Log.Enabled(ctx, slog.LevelDebug))
		assert.True(t, logger.Log.Enabled(ctx, slog.LevelInfo))
	})
}
