package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/linemk/shop-online-api/internal/lib/logger"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{logger.EnvLocal, logger.EnvDev, logger.EnvProd, "unknown"} {
		log := logger.SetupLogger(env)
		assert.NotNil(t, log, "logger for env %q should be created", env)
	}
}

func TestSetupLogger_DevEnablesDebug(t *testing.T) {
	log := logger.SetupLogger(logger.EnvDev)
	assert.True(t, log.Handler().Enabled(context.Background(), slog.LevelDebug), "dev logger should accept debug records")

	prod := logger.SetupLogger(logger.EnvProd)
	assert.False(t, prod.Handler().Enabled(context.Background(), slog.LevelDebug), "prod logger should drop debug records")
}
