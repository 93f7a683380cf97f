package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/canvasedit/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Logging
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{"console debug", config.Logging{Level: "debug", Format: "console"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"json warn", config.Logging{Level: "warn", Format: "json"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", config.Logging{Level: "error", Format: "json"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.off))
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.Logging{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = New(config.Logging{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	l := Must(config.Logging{Format: "xml"})
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}
