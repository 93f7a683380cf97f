package document

import (
	"encoding/json"
	"fmt"
)

// FontWeight is the weight of a text run.
type FontWeight string

// Font weights.
const (
	WeightThin    FontWeight = "thin"
	WeightLight   FontWeight = "light"
	WeightRegular FontWeight = "regular"
	WeightMedium  FontWeight = "medium"
	WeightBold    FontWeight = "bold"
	WeightBlack   FontWeight = "black"
)

// TextAlignment is the horizontal alignment of text inside its bounds.
type TextAlignment string

// Text alignments.
const (
	AlignStart     TextAlignment = "start"
	AlignCenter    TextAlignment = "center"
	AlignEnd       TextAlignment = "end"
	AlignJustified TextAlignment = "justified"
)

// TextStyle describes how a text element is rendered.
type TextStyle struct {
	FontFamily    string        `json:"font_family"`
	FontSize      float64       `json:"font_size"`
	Weight        FontWeight    `json:"weight"`
	Alignment     TextAlignment `json:"alignment"`
	Color         Color         `json:"color"`
	Italic        bool          `json:"italic,omitempty"`
	Underline     bool          `json:"underline,omitempty"`
	Strikethrough bool          `json:"strikethrough,omitempty"`
	Background    *Color        `json:"background,omitempty"`
	LineHeight    float64       `json:"line_height"`
}

// DefaultTextStyle returns the style applied to new text elements.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontFamily: "Inter",
		FontSize:   14,
		Weight:     WeightRegular,
		Alignment:  AlignStart,
		Color:      RGB(0.1, 0.1, 0.1),
		LineHeight: 1,
	}
}

func (s TextStyle) clone() TextStyle {
	if s.Background != nil {
		bg := *s.Background
		s.Background = &bg
	}
	return s
}

// ShapeKind is the geometric form of a shape element.
type ShapeKind int

// Shape kinds.
const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapeLine
	ShapeArrow
	ShapePolygon
)

var shapeKindNames = map[ShapeKind]string{
	ShapeRectangle: "rectangle",
	ShapeEllipse:   "ellipse",
	ShapeLine:      "line",
	ShapeArrow:     "arrow",
	ShapePolygon:   "polygon",
}

// String returns the shape kind name.
func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseShapeKind parses a shape kind name.
func ParseShapeKind(s string) (ShapeKind, error) {
	for k, name := range shapeKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// MarshalJSON encodes the kind by name.
func (k ShapeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *ShapeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseShapeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
