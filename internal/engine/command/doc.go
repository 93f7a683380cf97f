// Package command implements the reversible document edits recorded by the
// history package.
//
// Every command is bound at construction to a document, a page index and the
// element ids or values it operates on. Constructors never touch the
// document; all mutation happens in Execute. Each command captures exactly
// what its Undo needs:
//
//   - Move applies the inverse delta.
//   - Resize writes the previous bounds back.
//   - Create and Paste remove what they inserted.
//   - Delete reinserts removed elements at their original indices.
//   - Duplicate removes the copies it minted.
//   - Group and Ungroup restore the member order and positions.
//   - PropertyChange restores each element's own previous value.
//   - Reorder, Align and Distribute restore positions and bounds.
package command
