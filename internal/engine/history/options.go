package history

import (
	"time"

	"go.uber.org/zap"
)

// DefaultMaxEntries is the undo capacity used when none is configured.
const DefaultMaxEntries = 100

// Option configures a History.
type Option func(*History)

// WithMaxEntries sets the undo capacity. Values <= 0 select DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n <= 0 {
			n = DefaultMaxEntries
		}
		h.maxEntries = n
	}
}

// WithLogger sets the logger used for failures and evictions.
func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}
