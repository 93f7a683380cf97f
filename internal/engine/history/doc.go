// Package history provides undo/redo for document edits.
//
// The history system uses the Command pattern: every mutation of a document
// is a Command that can be executed, undone, and executed again.
//
// # Commands
//
// Commands implement the Command interface with Execute, Undo and
// Description. Execute captures the state Undo needs; Undo restores it.
// Concrete document commands live in the command package. Batch combines
// several commands into one undo unit.
//
// # History Stack
//
// The History type manages bounded undo and redo stacks:
//
//	h := NewHistory(WithMaxEntries(100))
//
//	// Execute and record
//	err := h.Push(cmd)
//
//	// Undo/redo
//	desc, err := h.Undo()
//	desc, err = h.Redo()
//
// Pushing a new command clears the redo stack. When the undo stack exceeds
// its capacity the oldest entry is dropped.
//
// # Batches
//
// Multiple commands can be recorded as a single undo unit:
//
//	h.BeginBatch("Resize and move")
//	// ... multiple pushes ...
//	h.EndBatch()
//
// Batches nest. Undo and Redo are refused while a batch is open.
//
// # Failures
//
// A command that fails to execute is never recorded. A command that fails
// to undo or redo stays where it was, and the caller receives a
// *CommandError describing the failure.
package history
