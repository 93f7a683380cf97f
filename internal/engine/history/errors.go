package history

import (
	"errors"
	"fmt"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrBatchOpen     = errors.New("batch in progress")
	ErrNoBatch       = errors.New("no batch in progress")

	// ErrCheckpointLost indicates a checkpoint whose entry is no longer in
	// the history.
	ErrCheckpointLost = errors.New("checkpoint no longer in history")
)

// Operation names carried by CommandError.
const (
	OpExecute  = "execute"
	OpUndo     = "undo"
	OpRedo     = "redo"
	OpRollback = "rollback"
)

// CommandError reports a command that failed during a history operation.
// The history is left as it was before the operation started.
type CommandError struct {
	Op      string
	Command string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

func newCommandError(op string, cmd Command, err error) *CommandError {
	return &CommandError{Op: op, Command: cmd.Description(), Err: err}
}
