package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Move translates elements by a fixed delta. Containers move with their
// children. Undo applies the opposite delta to the same ids.
type Move struct {
	target
	ids    []document.ElementID
	dx, dy float64
}

// NewMove creates a move of ids by (dx, dy).
func NewMove(doc *document.Document, page int, ids []document.ElementID, dx, dy float64) *Move {
	return &Move{
		target: target{doc: doc, pageIndex: page},
		ids:    copyIDs(ids),
		dx:     dx,
		dy:     dy,
	}
}

// Execute implements history.Command.
func (c *Move) Execute() (string, error) {
	n, err := c.apply(c.dx, c.dy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved %d %s by (%g, %g)", n, plural(n, "element", "elements"), c.dx, c.dy), nil
}

// Undo implements history.Command.
func (c *Move) Undo() (string, error) {
	n, err := c.apply(-c.dx, -c.dy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved %d %s back", n, plural(n, "element", "elements")), nil
}

func (c *Move) apply(dx, dy float64) (int, error) {
	p, err := c.page()
	if err != nil {
		return 0, err
	}
	ls := locate(p, c.ids)
	if len(ls) == 0 {
		return 0, ErrNoTargets
	}
	for _, l := range ls {
		document.Translate(l.element, dx, dy)
	}
	return len(ls), nil
}

// Description implements history.Command.
func (c *Move) Description() string {
	return "Move"
}
