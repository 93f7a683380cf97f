package engine

import (
	"errors"

	"github.com/dshills/canvasedit/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNoSelection indicates an operation was given no element ids.
	ErrNoSelection = errors.New("no elements selected")
)

// History errors, re-exported for callers that only import engine.
var (
	ErrNothingToUndo  = history.ErrNothingToUndo
	ErrNothingToRedo  = history.ErrNothingToRedo
	ErrBatchOpen      = history.ErrBatchOpen
	ErrCheckpointLost = history.ErrCheckpointLost
)
