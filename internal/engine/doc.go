// Package engine provides the editing facade for a canvas document.
//
// The engine combines a document, an undo/redo history and a clipboard
// into a single thread-safe API. Every edit is expressed as a command from
// the command package and pushed onto the history, so any edit made
// through the engine can be undone.
//
// # Architecture
//
// The engine is composed of several sub-packages:
//
//   - history: Command interface, batches, bounded undo/redo stacks
//   - command: Concrete document commands (move, resize, group, ...)
//
// It also relies on the document package for the data model and the
// clipboard package for copy and paste.
//
// # Basic Usage
//
//	eng := engine.New(engine.WithMaxUndoEntries(200))
//
//	id, _ := eng.Create(document.NewShape(document.ShapeRectangle,
//	    document.NewRect(10, 10, 100, 50)))
//	eng.Move([]engine.ElementID{id}, 5, 0)
//
//	desc, _ := eng.Undo() // "Move ..."
//	eng.Redo()
//
// # Batches
//
// Several edits can be recorded as one undo step:
//
//	eng.BeginBatch("Tidy up")
//	eng.Align(ids, command.AlignLeft)
//	eng.Distribute(ids, command.Vertical)
//	eng.EndBatch()
//
// Transaction does the same and undoes the edits if the function fails.
//
// # Documents
//
// Open switches to another document and clears history, since recorded
// commands refer to the document they were built for.
//
// # Thread Safety
//
// Edits take the engine's write lock for the duration of the command, so
// the document is never observed mid-edit through the engine. Elements
// and Element return copies.
package engine
