package command

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/canvasedit/internal/document"
)

// AlignMode selects the edge or center elements are aligned on.
type AlignMode int

// Alignment modes.
const (
	AlignLeft AlignMode = iota
	AlignCenterH
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
)

var alignNames = map[AlignMode]string{
	AlignLeft:    "left",
	AlignCenterH: "center",
	AlignRight:   "right",
	AlignTop:     "top",
	AlignMiddle:  "middle",
	AlignBottom:  "bottom",
}

// String returns the mode name.
func (m AlignMode) String() string {
	if n, ok := alignNames[m]; ok {
		return n
	}
	return fmt.Sprintf("AlignMode(%d)", int(m))
}

// ParseAlignMode looks up a mode by name.
func ParseAlignMode(s string) (AlignMode, error) {
	for m, n := range alignNames {
		if n == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown align mode %q", s)
}

// Axis is a layout direction.
type Axis int

// Axes.
const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis looks up an axis by name.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// offset is a translation applied to one element.
type offset struct {
	id     document.ElementID
	dx, dy float64
}

// layout translates elements to computed positions and remembers the
// offsets so they can be reversed.
type layout struct {
	target
	ids     []document.ElementID
	applied []offset
}

func (l *layout) run(need int, place func([]located) []offset) (int, error) {
	p, err := l.page()
	if err != nil {
		return 0, err
	}
	ls := locate(p, l.ids)
	if len(ls) < need {
		return 0, fmt.Errorf("%w: need at least %d, found %d", ErrTooFewElements, need, len(ls))
	}
	offs := place(ls)
	for i, o := range offs {
		document.Translate(ls[i].element, o.dx, o.dy)
	}
	l.applied = offs
	return len(ls), nil
}

func (l *layout) revert() error {
	if l.applied == nil {
		return ErrNotExecuted
	}
	p, err := l.page()
	if err != nil {
		return err
	}
	for _, o := range l.applied {
		if e, _, ok := p.Find(o.id); ok {
			document.Translate(e, -o.dx, -o.dy)
		}
	}
	l.applied = nil
	return nil
}

// Align lines elements up on a shared edge or center. Edges use the extreme
// edge of the selection; centers use the mean of the element centers.
type Align struct {
	layout
	mode AlignMode
}

// NewAlign creates an alignment of ids.
func NewAlign(doc *document.Document, page int, ids []document.ElementID, mode AlignMode) *Align {
	return &Align{
		layout: layout{target: target{doc: doc, pageIndex: page}, ids: copyIDs(ids)},
		mode:   mode,
	}
}

// Execute implements history.Command.
func (c *Align) Execute() (string, error) {
	n, err := c.run(2, c.place)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Aligned %d elements %s", n, c.mode), nil
}

func (c *Align) place(ls []located) []offset {
	rects := make([]document.Rect, len(ls))
	for i, l := range ls {
		rects[i] = l.element.Bounds()
	}

	var ref float64
	switch c.mode {
	case AlignLeft:
		ref = math.Inf(1)
		for _, r := range rects {
			ref = math.Min(ref, r.Origin.X)
		}
	case AlignRight:
		ref = math.Inf(-1)
		for _, r := range rects {
			ref = math.Max(ref, r.Right())
		}
	case AlignTop:
		ref = math.Inf(1)
		for _, r := range rects {
			ref = math.Min(ref, r.Origin.Y)
		}
	case AlignBottom:
		ref = math.Inf(-1)
		for _, r := range rects {
			ref = math.Max(ref, r.Bottom())
		}
	case AlignCenterH:
		for _, r := range rects {
			ref += r.Center().X
		}
		ref /= float64(len(rects))
	case AlignMiddle:
		for _, r := range rects {
			ref += r.Center().Y
		}
		ref /= float64(len(rects))
	}

	offs := make([]offset, len(ls))
	for i, r := range rects {
		o := offset{id: ls[i].element.ID()}
		switch c.mode {
		case AlignLeft:
			o.dx = ref - r.Origin.X
		case AlignRight:
			o.dx = ref - r.Right()
		case AlignCenterH:
			o.dx = ref - r.Center().X
		case AlignTop:
			o.dy = ref - r.Origin.Y
		case AlignBottom:
			o.dy = ref - r.Bottom()
		case AlignMiddle:
			o.dy = ref - r.Center().Y
		}
		offs[i] = o
	}
	return offs
}

// Undo implements history.Command.
func (c *Align) Undo() (string, error) {
	if err := c.revert(); err != nil {
		return "", err
	}
	return "Undo: " + c.Description(), nil
}

// Description implements history.Command.
func (c *Align) Description() string {
	return "Align " + c.mode.String()
}

// Distribute spaces elements so the gaps between neighbors are equal. The
// first and last elements along the axis stay where they are.
type Distribute struct {
	layout
	axis Axis
}

// NewDistribute creates an even distribution of ids along axis.
func NewDistribute(doc *document.Document, page int, ids []document.ElementID, axis Axis) *Distribute {
	return &Distribute{
		layout: layout{target: target{doc: doc, pageIndex: page}, ids: copyIDs(ids)},
		axis:   axis,
	}
}

// Execute implements history.Command.
func (c *Distribute) Execute() (string, error) {
	n, err := c.run(3, c.place)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Distributed %d elements %s", n, c.axis), nil
}

func (c *Distribute) place(ls []located) []offset {
	pos := func(r document.Rect) float64 {
		if c.axis == Vertical {
			return r.Origin.Y
		}
		return r.Origin.X
	}
	extent := func(r document.Rect) float64 {
		if c.axis == Vertical {
			return r.Size.Height
		}
		return r.Size.Width
	}

	order := make([]int, len(ls))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pos(ls[order[a]].element.Bounds()) < pos(ls[order[b]].element.Bounds())
	})

	first := ls[order[0]].element.Bounds()
	last := ls[order[len(order)-1]].element.Bounds()
	span := pos(last) + extent(last) - pos(first)
	total := 0.0
	for _, l := range ls {
		total += extent(l.element.Bounds())
	}
	gap := (span - total) / float64(len(ls)-1)

	offs := make([]offset, len(ls))
	cursor := pos(first)
	for _, i := range order {
		r := ls[i].element.Bounds()
		o := offset{id: ls[i].element.ID()}
		if c.axis == Vertical {
			o.dy = cursor - r.Origin.Y
		} else {
			o.dx = cursor - r.Origin.X
		}
		offs[i] = o
		cursor += extent(r) + gap
	}
	return offs
}

// Undo implements history.Command.
func (c *Distribute) Undo() (string, error) {
	if err := c.revert(); err != nil {
		return "", err
	}
	return "Undo: " + c.Description(), nil
}

// Description implements history.Command.
func (c *Distribute) Description() string {
	return "Distribute " + c.axis.String()
}
