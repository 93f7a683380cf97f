// Package clipboard holds copied document elements for later pasting.
package clipboard

import (
	"errors"
	"sync"

	"github.com/dshills/canvasedit/internal/document"
)

// ErrEmpty is returned by Paste when nothing has been copied.
var ErrEmpty = errors.New("clipboard is empty")

// DefaultOffset is how far pasted elements are shifted from their source.
var DefaultOffset = document.Point{X: 20, Y: 20}

// Clipboard stores deep copies of elements. Every Paste returns new copies
// with fresh ids, so pasting twice never produces colliding elements.
type Clipboard struct {
	mu     sync.Mutex
	items  []document.Element
	offset document.Point
}

// New returns an empty clipboard using DefaultOffset.
func New() *Clipboard {
	return &Clipboard{offset: DefaultOffset}
}

// SetOffset changes the shift applied to pasted elements.
func (c *Clipboard) SetOffset(p document.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = p
}

// Offset returns the shift applied to pasted elements.
func (c *Clipboard) Offset() document.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Copy replaces the clipboard contents with deep copies of elements.
// Later edits to the originals do not affect the clipboard.
func (c *Clipboard) Copy(elements []document.Element) {
	items := make([]document.Element, 0, len(elements))
	for _, e := range elements {
		if e != nil {
			items = append(items, e.Clone())
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// Paste returns fresh copies of the clipboard contents. Every element and
// descendant gets a new id, and each top-level copy is shifted by the
// offset.
func (c *Clipboard) Paste() ([]document.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return nil, ErrEmpty
	}

	out := make([]document.Element, len(c.items))
	for i, e := range c.items {
		dup := e.Clone()
		document.RegenerateIDs(dup)
		document.Translate(dup, c.offset.X, c.offset.Y)
		out[i] = dup
	}
	return out, nil
}

// Len returns the number of stored elements.
func (c *Clipboard) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// HasContent reports whether Paste would return elements.
func (c *Clipboard) HasContent() bool {
	return c.Len() > 0
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
