package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Delete removes elements from a page. Undo reinserts every removed element
// at the index it held, so the original z-order is restored exactly.
type Delete struct {
	target
	ids     []document.ElementID
	removed []located
}

// NewDelete creates a delete of ids.
func NewDelete(doc *document.Document, page int, ids []document.ElementID) *Delete {
	return &Delete{
		target: target{doc: doc, pageIndex: page},
		ids:    copyIDs(ids),
	}
}

// Execute implements history.Command.
func (c *Delete) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	ls := locate(p, c.ids)
	if len(ls) == 0 {
		return "", ErrNoTargets
	}
	removeLocated(p, ls)
	c.removed = ls
	return fmt.Sprintf("Deleted %d %s", len(ls), plural(len(ls), "element", "elements")), nil
}

// Undo implements history.Command.
func (c *Delete) Undo() (string, error) {
	if c.removed == nil {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	restoreLocated(p, c.removed)
	n := len(c.removed)
	c.removed = nil
	return fmt.Sprintf("Restored %d %s", n, plural(n, "element", "elements")), nil
}

// Description implements history.Command.
func (c *Delete) Description() string {
	return "Delete"
}
