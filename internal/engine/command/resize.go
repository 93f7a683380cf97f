package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Resize replaces the bounds of a single element. The caller captures the
// old bounds before the gesture started.
type Resize struct {
	target
	id        document.ElementID
	oldBounds document.Rect
	newBounds document.Rect
}

// NewResize creates a resize of id from oldBounds to newBounds.
func NewResize(doc *document.Document, page int, id document.ElementID, oldBounds, newBounds document.Rect) *Resize {
	return &Resize{
		target:    target{doc: doc, pageIndex: page},
		id:        id,
		oldBounds: oldBounds,
		newBounds: newBounds,
	}
}

// Execute implements history.Command.
func (c *Resize) Execute() (string, error) {
	if err := c.set(c.newBounds); err != nil {
		return "", err
	}
	return c.Description(), nil
}

// Undo implements history.Command.
func (c *Resize) Undo() (string, error) {
	if err := c.set(c.oldBounds); err != nil {
		return "", err
	}
	return "Undo: " + c.Description(), nil
}

func (c *Resize) set(r document.Rect) error {
	p, err := c.page()
	if err != nil {
		return err
	}
	e, _, ok := p.Find(c.id)
	if !ok {
		return fmt.Errorf("%w: %s", document.ErrElementNotFound, c.id)
	}
	e.SetBounds(r)
	return nil
}

// Description implements history.Command.
func (c *Resize) Description() string {
	return "Resize"
}
