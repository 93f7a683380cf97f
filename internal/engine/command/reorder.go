package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// ReorderOp is a z-order move.
type ReorderOp int

// Z-order moves.
const (
	BringToFront ReorderOp = iota
	SendToBack
	BringForward
	SendBackward
)

var reorderNames = map[ReorderOp]string{
	BringToFront: "front",
	SendToBack:   "back",
	BringForward: "forward",
	SendBackward: "backward",
}

var reorderLabels = map[ReorderOp]string{
	BringToFront: "Bring to Front",
	SendToBack:   "Send to Back",
	BringForward: "Bring Forward",
	SendBackward: "Send Backward",
}

// String returns the short op name.
func (op ReorderOp) String() string {
	if n, ok := reorderNames[op]; ok {
		return n
	}
	return fmt.Sprintf("ReorderOp(%d)", int(op))
}

// ParseReorderOp looks up an op by short name.
func ParseReorderOp(s string) (ReorderOp, error) {
	for op, n := range reorderNames {
		if n == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown reorder op %q", s)
}

// Reorder changes the z-order of one element. A move that would not change
// the order fails with ErrNoChange, so it never enters history.
type Reorder struct {
	target
	id       document.ElementID
	op       ReorderOp
	previous int
}

// NewReorder creates a z-order move of id.
func NewReorder(doc *document.Document, page int, id document.ElementID, op ReorderOp) *Reorder {
	return &Reorder{
		target:   target{doc: doc, pageIndex: page},
		id:       id,
		op:       op,
		previous: -1,
	}
}

// Execute implements history.Command.
func (c *Reorder) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	i, ok := p.ZOrder(c.id)
	if !ok {
		return "", fmt.Errorf("%w: %s", document.ErrElementNotFound, c.id)
	}

	var moved bool
	switch c.op {
	case BringToFront:
		moved = i < p.Len()-1 && p.BringToFront(c.id)
	case SendToBack:
		moved = i > 0 && p.SendToBack(c.id)
	case BringForward:
		moved = p.BringForward(c.id)
	case SendBackward:
		moved = p.SendBackward(c.id)
	default:
		return "", fmt.Errorf("unknown reorder op %d", int(c.op))
	}
	if !moved {
		return "", fmt.Errorf("%w: %s already at %s", ErrNoChange, c.id, c.op)
	}

	c.previous = i
	return c.Description(), nil
}

// Undo implements history.Command.
func (c *Reorder) Undo() (string, error) {
	if c.previous < 0 {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	if !p.MoveTo(c.id, c.previous) {
		return "", fmt.Errorf("%w: %s", document.ErrElementNotFound, c.id)
	}
	return "Undo: " + c.Description(), nil
}

// Description implements history.Command.
func (c *Reorder) Description() string {
	if l, ok := reorderLabels[c.op]; ok {
		return l
	}
	return "Reorder"
}
