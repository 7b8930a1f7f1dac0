package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/config"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "info"},
		{level: "warn"},
		{level: "error"},
		{level: "WARN"}, // case-insensitive
		{level: "verbose", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, log)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, log)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	base := slog.Default().With("component", "test")

	ctx := logger.WithContext(context.Background(), base)
	assert.Same(t, base, logger.FromContext(ctx))
	assert.Same(t, base, logger.FromContextOrDefault(ctx, nil))
}

func TestFromContextOrDefaultFallbacks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.Nil(t, logger.FromContext(ctx))

	def := slog.Default().With("component", "fallback")
	assert.Same(t, def, logger.FromContextOrDefault(ctx, def))
	assert.NotNil(t, logger.FromContextOrDefault(ctx, nil), "nil default falls back to slog.Default")
}
