// Package logging builds the application logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/canvasedit/internal/config"
)

// New creates a logger writing to stderr.
//
// Format "json" selects the production encoder and "console" the
// development encoder. Level is one of debug, info, warn or error.
func New(cfg config.Logging) (*zap.Logger, error) {
	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		zc.Level = level
	}

	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Must is like New but falls back to a no-op logger on error.
func Must(cfg config.Logging) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
