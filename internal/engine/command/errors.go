package command

import "errors"

// Errors returned by commands.
var (
	// ErrNoTargets indicates that none of the requested elements exist.
	ErrNoTargets = errors.New("no matching elements")

	// ErrTooFewElements indicates an operation that needs more elements.
	ErrTooFewElements = errors.New("too few elements")

	// ErrNotContainer indicates an element that cannot be ungrouped.
	ErrNotContainer = errors.New("element is not a group or frame")

	// ErrDuplicateID indicates an insert whose id is already on the page.
	ErrDuplicateID = errors.New("element id already present")

	// ErrNotExecuted indicates Undo on a command that has not run.
	ErrNotExecuted = errors.New("command has not been executed")

	// ErrNoChange indicates an edit that would leave the document unchanged.
	ErrNoChange = errors.New("no change")

	// ErrUnsupportedProperty indicates a property no target element supports.
	ErrUnsupportedProperty = errors.New("property not supported by target elements")
)
