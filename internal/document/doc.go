// Package document provides the in-memory element store edited by canvasedit.
//
// A Document is an ordered list of Pages. Each Page holds an ordered list of
// top-level Elements whose index is the z-order: index 0 paints at the back,
// the last index paints at the front.
//
// # Elements
//
// Element is a closed set of variants:
//   - FrameElement: a container with its own children
//   - TextElement: styled text content
//   - ImageElement: a reference to an image asset
//   - ShapeElement: rectangle, ellipse, line, arrow or polygon with stroke/fill
//   - GroupElement: a container created by grouping elements
//
// Every element carries a stable ElementID. Moving or resizing an element never
// changes its identity; duplicating or pasting mints a fresh id for the copy.
//
// # Z-Order
//
// Page exposes the z-order primitives used by commands and by callers that
// intentionally bypass undo history:
//
//	page.BringToFront(id)
//	page.SendToBack(id)
//	page.BringForward(id)
//	page.SendBackward(id)
//	idx, ok := page.ZOrder(id)
//
// All primitives preserve the relative order of the other elements.
//
// # Concurrency
//
// Document and Page are not safe for concurrent use. Callers serialize
// mutation at the document boundary.
package document
