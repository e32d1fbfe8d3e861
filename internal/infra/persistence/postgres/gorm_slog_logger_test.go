package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"wasul/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturedGormLogger(t *testing.T, cfg *config.Config) (*gormSlogLogger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	l, ok := newGormSlogLogger(base, cfg).(*gormSlogLogger)
	require.True(t, ok)

	return l, &buf
}

func TestGormSlogLogger_SlowThresholdFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.SlowQueryThreshold = time.Millisecond

	l, buf := newCapturedGormLogger(t, cfg)
	assert.Equal(t, time.Millisecond, l.slowThreshold)

	l.Trace(context.Background(), time.Now().Add(-10*time.Millisecond), func() (string, int64) {
		return "SELECT * FROM addresses WHERE code = $1", 1
	}, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
	assert.Contains(t, buf.String(), "addresses")
}

func TestGormSlogLogger_DefaultThresholdWhenUnset(t *testing.T) {
	l, buf := newCapturedGormLogger(t, &config.Config{})
	assert.Equal(t, defaultGormSlowThreshold, l.slowThreshold)

	// Well under the default threshold: nothing logged at Warn level.
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newCapturedGormLogger(t, &config.Config{})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM addresses WHERE phone = $1", 0
	}, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_DebugEnablesQueryLogging(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Debug = true

	l, buf := newCapturedGormLogger(t, cfg)
	assert.Equal(t, logger.Info, l.level)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	assert.Contains(t, buf.String(), "GORM query")
}
