package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Create inserts a new element. The command owns the element: Undo takes it
// back off the page and redo inserts the same payload at the same index.
type Create struct {
	target
	element document.Element
	index   int
	placed  bool
}

// NewCreate creates an insert of e at the front of the page.
func NewCreate(doc *document.Document, page int, e document.Element) *Create {
	return &Create{
		target:  target{doc: doc, pageIndex: page},
		element: e,
		index:   -1,
	}
}

// NewCreateAt creates an insert of e at z-order index.
func NewCreateAt(doc *document.Document, page int, e document.Element, index int) *Create {
	c := NewCreate(doc, page, e)
	c.index = index
	return c
}

// ElementID returns the id of the created element.
func (c *Create) ElementID() document.ElementID {
	return c.element.ID()
}

// Execute implements history.Command.
func (c *Create) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	if p.Contains(c.element.ID()) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, c.element.ID())
	}

	if c.index < 0 || c.index > p.Len() {
		c.index = p.Len()
	}
	p.Insert(c.index, c.element)
	c.placed = true
	return fmt.Sprintf("Created %s %s", c.element.Kind(), c.element.ID()), nil
}

// Undo implements history.Command.
func (c *Create) Undo() (string, error) {
	if !c.placed {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	e, i, ok := p.Remove(c.element.ID())
	if !ok {
		return "", fmt.Errorf("%w: %s", document.ErrElementNotFound, c.element.ID())
	}
	c.element = e
	c.index = i
	c.placed = false
	return fmt.Sprintf("Removed %s %s", e.Kind(), e.ID()), nil
}

// Description implements history.Command.
func (c *Create) Description() string {
	return "Create"
}
