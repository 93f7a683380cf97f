package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/canvasedit/internal/clipboard"
	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine/command"
	"github.com/dshills/canvasedit/internal/engine/history"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultTitle          = "Untitled"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithDocument sets the document the engine edits. Without it the engine
// starts on a new single-page document.
func WithDocument(doc *document.Document) Option {
	return func(e *Engine) {
		if doc != nil {
			e.doc = doc
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger shared by the engine and its history.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDuplicateOffset sets how far duplicates are shifted from the source.
func WithDuplicateOffset(p document.Point) Option {
	return func(e *Engine) {
		e.duplicateOffset = p
	}
}

// WithPasteOffset sets how far pasted elements are shifted.
func WithPasteOffset(p document.Point) Option {
	return func(e *Engine) {
		e.pasteOffset = p
	}
}

// WithReadOnly creates an engine that refuses edits.
func WithReadOnly(readOnly bool) Option {
	return func(e *Engine) {
		e.readOnly = readOnly
	}
}

func defaultOffsets() (dup, paste document.Point) {
	return command.DefaultDuplicateOffset, clipboard.DefaultOffset
}
