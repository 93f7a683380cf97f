package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Paste inserts elements taken from a clipboard. Constructing a Paste does
// not modify the document; the elements are added by Execute.
type Paste struct {
	target
	elements []document.Element
	applied  bool
}

// NewPaste creates a paste of elements. The elements should already carry
// fresh ids.
func NewPaste(doc *document.Document, page int, elements []document.Element) *Paste {
	es := make([]document.Element, len(elements))
	copy(es, elements)
	return &Paste{
		target:   target{doc: doc, pageIndex: page},
		elements: es,
	}
}

// PastedIDs returns the ids of the pasted elements.
func (c *Paste) PastedIDs() []document.ElementID {
	ids := make([]document.ElementID, len(c.elements))
	for i, e := range c.elements {
		ids[i] = e.ID()
	}
	return ids
}

// Execute implements history.Command.
func (c *Paste) Execute() (string, error) {
	if len(c.elements) == 0 {
		return "", ErrNoTargets
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	for _, e := range c.elements {
		if p.Contains(e.ID()) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
		}
	}
	for _, e := range c.elements {
		p.Add(e)
	}
	c.applied = true
	n := len(c.elements)
	return fmt.Sprintf("Pasted %d %s", n, plural(n, "element", "elements")), nil
}

// Undo implements history.Command.
func (c *Paste) Undo() (string, error) {
	if !c.applied {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	n := p.RemoveAll(c.PastedIDs())
	c.applied = false
	return fmt.Sprintf("Removed %d pasted %s", n, plural(n, "element", "elements")), nil
}

// Description implements history.Command.
func (c *Paste) Description() string {
	return "Paste"
}
