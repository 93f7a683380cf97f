package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Property names an editable element attribute.
type Property int

// Editable properties.
const (
	PropStrokeColor Property = iota
	PropFillColor
	PropStrokeWidth
	PropAutoResizeHeight
	PropTextContent
	PropTextColor
	PropFontSize
	PropVisible
	PropLocked
	PropName
)

var propertyNames = map[Property]string{
	PropStrokeColor:      "stroke_color",
	PropFillColor:        "fill_color",
	PropStrokeWidth:      "stroke_width",
	PropAutoResizeHeight: "auto_resize_height",
	PropTextContent:      "text",
	PropTextColor:        "text_color",
	PropFontSize:         "font_size",
	PropVisible:          "visible",
	PropLocked:           "locked",
	PropName:             "name",
}

var propertyLabels = map[Property]string{
	PropStrokeColor:      "Change Stroke Color",
	PropFillColor:        "Change Fill Color",
	PropStrokeWidth:      "Change Stroke Width",
	PropAutoResizeHeight: "Toggle Auto Resize Height",
	PropTextContent:      "Edit Text",
	PropTextColor:        "Change Text Color",
	PropFontSize:         "Change Font Size",
	PropVisible:          "Change Visibility",
	PropLocked:           "Change Lock",
	PropName:             "Rename",
}

// String returns the property name used by scripts.
func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// ParseProperty looks up a property by name.
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedProperty, name)
}

// Value is a property together with its new or previous value.
// Only the field matching the property kind is meaningful.
type Value struct {
	Property Property
	Color    *document.Color
	Number   float64
	Flag     bool
	Text     string
}

// StrokeColor sets a shape's stroke. nil removes it.
func StrokeColor(c *document.Color) Value { return Value{Property: PropStrokeColor, Color: c} }

// FillColor sets a shape's fill. nil removes it.
func FillColor(c *document.Color) Value { return Value{Property: PropFillColor, Color: c} }

// StrokeWidth sets a shape's stroke width.
func StrokeWidth(w float64) Value { return Value{Property: PropStrokeWidth, Number: w} }

// AutoResizeHeight toggles text auto height.
func AutoResizeHeight(on bool) Value { return Value{Property: PropAutoResizeHeight, Flag: on} }

// TextContent replaces text content.
func TextContent(s string) Value { return Value{Property: PropTextContent, Text: s} }

// TextColor sets the text color.
func TextColor(c document.Color) Value { return Value{Property: PropTextColor, Color: &c} }

// FontSize sets the text size.
func FontSize(size float64) Value { return Value{Property: PropFontSize, Number: size} }

// Visible sets element visibility.
func Visible(on bool) Value { return Value{Property: PropVisible, Flag: on} }

// Locked sets the element lock.
func Locked(on bool) Value { return Value{Property: PropLocked, Flag: on} }

// Name sets the element name.
func Name(s string) Value { return Value{Property: PropName, Text: s} }

func colorCopy(c *document.Color) *document.Color {
	if c == nil {
		return nil
	}
	return document.ColorPtr(*c)
}

// Read returns the current value of p on e. ok is false if e does not
// carry p.
func Read(e document.Element, p Property) (Value, bool) {
	v := Value{Property: p}
	switch p {
	case PropVisible:
		v.Flag = e.Common().Visible
		return v, true
	case PropLocked:
		v.Flag = e.Common().Locked
		return v, true
	case PropName:
		v.Text = e.Common().Name
		return v, true
	}

	switch el := e.(type) {
	case *document.ShapeElement:
		switch p {
		case PropStrokeColor:
			v.Color = colorCopy(el.Stroke)
			return v, true
		case PropFillColor:
			v.Color = colorCopy(el.Fill)
			return v, true
		case PropStrokeWidth:
			v.Number = el.StrokeWidth
			return v, true
		}
	case *document.TextElement:
		switch p {
		case PropAutoResizeHeight:
			v.Flag = el.AutoResizeHeight
			return v, true
		case PropTextContent:
			v.Text = el.Content
			return v, true
		case PropTextColor:
			v.Color = colorCopy(&el.Style.Color)
			return v, true
		case PropFontSize:
			v.Number = el.Style.FontSize
			return v, true
		}
	}
	return Value{}, false
}

// Apply writes v to e and reports whether e carries the property.
func Apply(e document.Element, v Value) bool {
	switch v.Property {
	case PropVisible:
		e.Common().Visible = v.Flag
		return true
	case PropLocked:
		e.Common().Locked = v.Flag
		return true
	case PropName:
		e.Common().Name = v.Text
		return true
	}

	switch el := e.(type) {
	case *document.ShapeElement:
		switch v.Property {
		case PropStrokeColor:
			el.Stroke = colorCopy(v.Color)
			return true
		case PropFillColor:
			el.Fill = colorCopy(v.Color)
			return true
		case PropStrokeWidth:
			el.StrokeWidth = v.Number
			return true
		}
	case *document.TextElement:
		switch v.Property {
		case PropAutoResizeHeight:
			el.AutoResizeHeight = v.Flag
			return true
		case PropTextContent:
			el.Content = v.Text
			return true
		case PropTextColor:
			if v.Color == nil {
				return false
			}
			el.Style.Color = *v.Color
			return true
		case PropFontSize:
			el.Style.FontSize = v.Number
			return true
		}
	}
	return false
}

// oldValue is one element's value before the change.
type oldValue struct {
	id    document.ElementID
	value Value
}

// PropertyChange sets one property on many elements.
//
// The previous value is recorded per element, so a mixed selection gets its
// own values back on undo. The old values are captured on the first Execute
// only; a redo never records the already changed value as "old". Elements
// that do not carry the property are left alone. Targets may be nested
// inside groups and frames.
type PropertyChange struct {
	target
	ids      []document.ElementID
	value    Value
	old      []oldValue
	captured bool
}

// NewPropertyChange creates a change of value on ids.
func NewPropertyChange(doc *document.Document, page int, ids []document.ElementID, value Value) *PropertyChange {
	return &PropertyChange{
		target: target{doc: doc, pageIndex: page},
		ids:    copyIDs(ids),
		value:  value,
	}
}

// NewAppliedPropertyChange records a change whose new value is already on
// the page, for edits applied live while dragging a control. old holds each
// element's value from before the edit.
func NewAppliedPropertyChange(doc *document.Document, page int, old map[document.ElementID]Value, value Value) *PropertyChange {
	c := &PropertyChange{
		target:   target{doc: doc, pageIndex: page},
		value:    value,
		captured: true,
	}
	for id, v := range old {
		c.ids = append(c.ids, id)
		c.old = append(c.old, oldValue{id: id, value: v})
	}
	return c
}

// Value returns the value applied by Execute.
func (c *PropertyChange) Value() Value {
	return c.value
}

func (c *PropertyChange) capture(p *document.Page) {
	for _, id := range c.ids {
		e, ok := p.FindDeep(id)
		if !ok {
			continue
		}
		if v, ok := Read(e, c.value.Property); ok {
			c.old = append(c.old, oldValue{id: id, value: v})
		}
	}
	c.captured = true
}

// Execute implements history.Command.
func (c *PropertyChange) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	if !c.captured {
		c.capture(p)
	}

	changed := 0
	for _, id := range c.ids {
		if e, ok := p.FindDeep(id); ok && Apply(e, c.value) {
			changed++
		}
	}
	if changed == 0 {
		if len(c.old) == 0 {
			c.captured = false
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProperty, c.value.Property)
	}
	return c.Description(), nil
}

// Undo implements history.Command.
func (c *PropertyChange) Undo() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	restored := 0
	for _, o := range c.old {
		if e, ok := p.FindDeep(o.id); ok && Apply(e, o.value) {
			restored++
		}
	}
	if restored == 0 {
		return "", fmt.Errorf("%w: nothing to restore", document.ErrElementNotFound)
	}
	return "Undo: " + c.Description(), nil
}

// Description implements history.Command.
func (c *PropertyChange) Description() string {
	label, ok := propertyLabels[c.value.Property]
	if !ok {
		label = "Change " + c.value.Property.String()
	}
	if c.value.Property == PropTextContent {
		return label + " " + quote(c.value.Text)
	}
	return label
}
