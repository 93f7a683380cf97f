// Package export renders documents to PDF.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/dshills/canvasedit/internal/document"
)

// WritePDF renders doc to w, one PDF page per document page. Coordinates
// are in points, so page sizes map one to one. Hidden elements are skipped.
func WritePDF(w io.Writer, doc *document.Document) error {
	if doc == nil || doc.PageCount() == 0 {
		return document.ErrEmptyDocument
	}

	first := doc.Pages[0].Size
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	pdf.SetTitle(doc.Metadata.Title, true)
	if doc.Metadata.Author != "" {
		pdf.SetAuthor(doc.Metadata.Author, true)
	}
	pdf.SetAutoPageBreak(false, 0)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, p := range doc.Pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: p.Size.Width, Ht: p.Size.Height})
		for _, el := range p.Elements() {
			r.element(el)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

type renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) element(el document.Element) {
	if !el.Common().Visible {
		return
	}

	switch v := el.(type) {
	case *document.ShapeElement:
		r.shape(v)
	case *document.TextElement:
		r.text(v)
	case *document.ImageElement:
		r.image(v)
	}

	for _, child := range document.Children(el) {
		r.element(child)
	}
}

// style sets the stroke and fill state for a shape and returns the gofpdf
// draw style, or "" when there is nothing to paint.
func (r *renderer) style(stroke, fill *document.Color, width float64) string {
	style := ""
	if fill != nil {
		cr, cg, cb := fill.RGB255()
		r.pdf.SetFillColor(int(cr), int(cg), int(cb))
		style += "F"
	}
	if stroke != nil && width > 0 {
		cr, cg, cb := stroke.RGB255()
		r.pdf.SetDrawColor(int(cr), int(cg), int(cb))
		r.pdf.SetLineWidth(width)
		style = "D" + style
	}
	return style
}

func (r *renderer) shape(s *document.ShapeElement) {
	style := r.style(s.Stroke, s.Fill, s.StrokeWidth)
	if style == "" {
		return
	}

	if s.Fill != nil && s.Fill.A < 1 {
		r.pdf.SetAlpha(s.Fill.A, "Normal")
		defer r.pdf.SetAlpha(1, "Normal")
	}

	b := s.Bounds()
	x, y, w, h := b.Origin.X, b.Origin.Y, b.Size.Width, b.Size.Height

	switch s.Shape {
	case document.ShapeEllipse:
		r.pdf.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, style)
	case document.ShapeLine:
		r.pdf.Line(x, y, x+w, y+h)
	case document.ShapeArrow:
		r.pdf.Line(x, y+h/2, x+w, y+h/2)
		head := h / 2
		if head > w/3 {
			head = w / 3
		}
		r.pdf.Polygon([]gofpdf.PointType{
			{X: x + w, Y: y + h/2},
			{X: x + w - head, Y: y + h/2 - head/2},
			{X: x + w - head, Y: y + h/2 + head/2},
		}, style)
	case document.ShapePolygon:
		r.pdf.Polygon([]gofpdf.PointType{
			{X: x + w/2, Y: y},
			{X: x + w, Y: y + h/2},
			{X: x + w/2, Y: y + h},
			{X: x, Y: y + h/2},
		}, style)
	default:
		r.pdf.Rect(x, y, w, h, style)
	}
}

var textAlign = map[document.TextAlignment]string{
	document.AlignStart:     "L",
	document.AlignCenter:    "C",
	document.AlignEnd:       "R",
	document.AlignJustified: "J",
}

func (r *renderer) text(t *document.TextElement) {
	b := t.Bounds()
	st := t.Style

	if st.Background != nil {
		cr, cg, cb := st.Background.RGB255()
		r.pdf.SetFillColor(int(cr), int(cg), int(cb))
		r.pdf.Rect(b.Origin.X, b.Origin.Y, b.Size.Width, b.Size.Height, "F")
	}

	fontStyle := ""
	if st.Weight == document.WeightBold || st.Weight == document.WeightBlack {
		fontStyle += "B"
	}
	if st.Italic {
		fontStyle += "I"
	}
	if st.Underline {
		fontStyle += "U"
	}
	size := st.FontSize
	if size <= 0 {
		size = document.DefaultTextStyle().FontSize
	}
	r.pdf.SetFont("Helvetica", fontStyle, size)

	cr, cg, cb := st.Color.RGB255()
	r.pdf.SetTextColor(int(cr), int(cg), int(cb))

	lineHeight := st.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}

	align, ok := textAlign[st.Alignment]
	if !ok {
		align = "L"
	}

	r.pdf.SetXY(b.Origin.X, b.Origin.Y)
	r.pdf.MultiCell(b.Size.Width, size*lineHeight, r.tr(t.Content), "", align, false)
}

// image draws a labelled placeholder; image assets are not embedded.
func (r *renderer) image(i *document.ImageElement) {
	b := i.Bounds()
	r.pdf.SetFillColor(230, 230, 230)
	r.pdf.SetDrawColor(160, 160, 160)
	r.pdf.SetLineWidth(0.5)
	r.pdf.Rect(b.Origin.X, b.Origin.Y, b.Size.Width, b.Size.Height, "DF")

	r.pdf.SetFont("Helvetica", "I", 8)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.SetXY(b.Origin.X, b.Origin.Y)
	r.pdf.CellFormat(b.Size.Width, b.Size.Height, r.tr(i.Source), "", 0, "C", false, 0, "")
}
