package document

// Kind identifies an element variant.
type Kind int

// Element kinds.
const (
	KindFrame Kind = iota
	KindText
	KindImage
	KindShape
	KindGroup
)

// String returns the kind name used in JSON and descriptions.
func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindShape:
		return "shape"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Element is a node of the document tree.
// The set of implementations is closed to this package.
type Element interface {
	// ID returns the element's stable identifier.
	ID() ElementID

	// Kind returns the variant tag.
	Kind() Kind

	// Bounds returns the element rectangle in document coordinates.
	Bounds() Rect

	// SetBounds replaces the element rectangle.
	SetBounds(r Rect)

	// Common returns the fields shared by every variant.
	Common() *Base

	// Clone returns a deep copy that shares no mutable state with the original.
	Clone() Element

	sealed()
}

// Base holds the fields every element carries.
type Base struct {
	ElementID ElementID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Rect      Rect      `json:"bounds"`
	Visible   bool      `json:"visible"`
	Locked    bool      `json:"locked"`
}

// NewBase returns a visible, unlocked Base with a fresh id.
func NewBase(bounds Rect) Base {
	return Base{
		ElementID: NewElementID(),
		Rect:      bounds,
		Visible:   true,
	}
}

// ID implements Element.
func (b *Base) ID() ElementID { return b.ElementID }

// Bounds implements Element.
func (b *Base) Bounds() Rect { return b.Rect }

// SetBounds implements Element.
func (b *Base) SetBounds(r Rect) { b.Rect = r }

// Common implements Element.
func (b *Base) Common() *Base { return b }

func (b *Base) sealed() {}

// FrameElement is a layout container that owns its children.
type FrameElement struct {
	Base
	Children Elements `json:"children"`
}

// Kind implements Element.
func (*FrameElement) Kind() Kind { return KindFrame }

// Clone implements Element.
func (f *FrameElement) Clone() Element {
	c := *f
	c.Children = f.Children.Clone()
	return &c
}

// TextElement is a block of styled text.
type TextElement struct {
	Base
	Content          string    `json:"content"`
	Style            TextStyle `json:"style"`
	AutoResizeHeight bool      `json:"auto_resize_height,omitempty"`
}

// Kind implements Element.
func (*TextElement) Kind() Kind { return KindText }

// Clone implements Element.
func (t *TextElement) Clone() Element {
	c := *t
	c.Style = t.Style.clone()
	return &c
}

// ImageElement displays an image asset.
type ImageElement struct {
	Base
	Source string `json:"source"`
}

// Kind implements Element.
func (*ImageElement) Kind() Kind { return KindImage }

// Clone implements Element.
func (i *ImageElement) Clone() Element {
	c := *i
	return &c
}

// ShapeElement is a vector shape.
type ShapeElement struct {
	Base
	Shape       ShapeKind `json:"shape"`
	Stroke      *Color    `json:"stroke,omitempty"`
	Fill        *Color    `json:"fill,omitempty"`
	StrokeWidth float64   `json:"stroke_width"`
}

// Kind implements Element.
func (*ShapeElement) Kind() Kind { return KindShape }

// Clone implements Element.
func (s *ShapeElement) Clone() Element {
	c := *s
	if s.Stroke != nil {
		c.Stroke = ColorPtr(*s.Stroke)
	}
	if s.Fill != nil {
		c.Fill = ColorPtr(*s.Fill)
	}
	return &c
}

// GroupElement bundles elements so they can be manipulated as one.
type GroupElement struct {
	Base
	Children Elements `json:"children"`
}

// Kind implements Element.
func (*GroupElement) Kind() Kind { return KindGroup }

// Clone implements Element.
func (g *GroupElement) Clone() Element {
	c := *g
	c.Children = g.Children.Clone()
	return &c
}

// NewShape creates a visible shape with a fresh id and a 1pt black stroke.
func NewShape(kind ShapeKind, bounds Rect) *ShapeElement {
	black := RGB(0, 0, 0)
	return &ShapeElement{
		Base:        NewBase(bounds),
		Shape:       kind,
		Stroke:      &black,
		StrokeWidth: 1,
	}
}

// NewText creates a visible text element with the default style.
func NewText(content string, bounds Rect) *TextElement {
	return &TextElement{
		Base:    NewBase(bounds),
		Content: content,
		Style:   DefaultTextStyle(),
	}
}

// NewImage creates a visible image element.
func NewImage(source string, bounds Rect) *ImageElement {
	return &ImageElement{
		Base:   NewBase(bounds),
		Source: source,
	}
}

// NewFrame creates an empty frame.
func NewFrame(bounds Rect) *FrameElement {
	return &FrameElement{Base: NewBase(bounds)}
}

// NewGroup creates a group around children. The bounds are the union of
// the children's bounds.
func NewGroup(id ElementID, children []Element) *GroupElement {
	rects := make([]Rect, len(children))
	for i, c := range children {
		rects[i] = c.Bounds()
	}
	return &GroupElement{
		Base: Base{
			ElementID: id,
			Name:      "Group",
			Rect:      UnionAll(rects),
			Visible:   true,
		},
		Children: Elements(children),
	}
}

// Elements is an ordered element list. It encodes each entry with a type
// discriminator.
type Elements []Element

// Clone deep-copies every element.
func (es Elements) Clone() Elements {
	if es == nil {
		return nil
	}
	out := make(Elements, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	return out
}

// Children returns the children of a container element, or nil.
func Children(e Element) []Element {
	switch v := e.(type) {
	case *FrameElement:
		return v.Children
	case *GroupElement:
		return v.Children
	default:
		return nil
	}
}

// IsContainer reports whether e owns children.
func IsContainer(e Element) bool {
	switch e.(type) {
	case *FrameElement, *GroupElement:
		return true
	default:
		return false
	}
}

// Walk visits e and all of its descendants depth-first. Returning false from
// fn stops the walk.
func Walk(e Element, fn func(Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range Children(e) {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Translate moves e and, for containers, every descendant by (dx, dy).
func Translate(e Element, dx, dy float64) {
	Walk(e, func(n Element) bool {
		n.SetBounds(n.Bounds().Offset(dx, dy))
		return true
	})
}

// RegenerateIDs assigns fresh ids to e and all descendants.
func RegenerateIDs(e Element) {
	Walk(e, func(n Element) bool {
		n.Common().ElementID = NewElementID()
		return true
	})
}
