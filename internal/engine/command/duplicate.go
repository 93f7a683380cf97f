package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// DefaultDuplicateOffset is how far copies are shifted from their source.
var DefaultDuplicateOffset = document.Point{X: 20, Y: 20}

// Duplicate adds deep copies of elements with fresh ids, shifted by an
// offset. The copies are minted on the first Execute and reused on redo, so
// their ids stay stable across undo/redo cycles.
type Duplicate struct {
	target
	sourceIDs []document.ElementID
	offset    document.Point
	copies    []document.Element
	applied   bool
}

// NewDuplicate creates a duplicate of ids using DefaultDuplicateOffset.
func NewDuplicate(doc *document.Document, page int, ids []document.ElementID) *Duplicate {
	return NewDuplicateWithOffset(doc, page, ids, DefaultDuplicateOffset)
}

// NewDuplicateWithOffset creates a duplicate of ids shifted by offset.
func NewDuplicateWithOffset(doc *document.Document, page int, ids []document.ElementID, offset document.Point) *Duplicate {
	return &Duplicate{
		target:    target{doc: doc, pageIndex: page},
		sourceIDs: copyIDs(ids),
		offset:    offset,
	}
}

// DuplicateIDs returns the ids of the copies, or nil before the first Execute.
func (c *Duplicate) DuplicateIDs() []document.ElementID {
	if c.copies == nil {
		return nil
	}
	ids := make([]document.ElementID, len(c.copies))
	for i, e := range c.copies {
		ids[i] = e.ID()
	}
	return ids
}

// Execute implements history.Command.
func (c *Duplicate) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}

	if c.copies == nil {
		ls := locate(p, c.sourceIDs)
		if len(ls) == 0 {
			return "", ErrNoTargets
		}
		copies := make([]document.Element, len(ls))
		for i, l := range ls {
			dup := l.element.Clone()
			document.RegenerateIDs(dup)
			document.Translate(dup, c.offset.X, c.offset.Y)
			copies[i] = dup
		}
		c.copies = copies
	}

	for _, e := range c.copies {
		if p.Contains(e.ID()) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
		}
	}
	for _, e := range c.copies {
		p.Add(e)
	}
	c.applied = true
	n := len(c.copies)
	return fmt.Sprintf("Duplicated %d %s", n, plural(n, "element", "elements")), nil
}

// Undo implements history.Command.
func (c *Duplicate) Undo() (string, error) {
	if !c.applied {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	n := p.RemoveAll(c.DuplicateIDs())
	c.applied = false
	return fmt.Sprintf("Removed %d %s", n, plural(n, "duplicate", "duplicates")), nil
}

// Description implements history.Command.
func (c *Duplicate) Description() string {
	return "Duplicate"
}
