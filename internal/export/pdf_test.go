package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/canvasedit/internal/document"
)

func samplePage(t *testing.T) *document.Page {
	t.Helper()
	p := document.NewPage()

	rect := document.NewShape(document.ShapeRectangle, document.NewRect(10, 10, 100, 50))
	rect.Fill = document.ColorPtr(document.MustParseColor("#3366cc"))
	p.Add(rect)

	p.Add(document.NewShape(document.ShapeEllipse, document.NewRect(200, 10, 40, 40)))
	p.Add(document.NewShape(document.ShapeArrow, document.NewRect(10, 100, 80, 20)))
	p.Add(document.NewShape(document.ShapePolygon, document.NewRect(100, 100, 40, 40)))
	p.Add(document.NewText("Grüße", document.NewRect(10, 200, 200, 20)))
	p.Add(document.NewImage("logo.png", document.NewRect(10, 300, 80, 80)))

	hidden := document.NewShape(document.ShapeLine, document.NewRect(0, 0, 10, 10))
	hidden.Visible = false
	p.Add(hidden)

	inner := document.NewShape(document.ShapeRectangle, document.NewRect(300, 300, 10, 10))
	p.Add(document.NewGroup(document.NewElementID(), []document.Element{inner}))
	return p
}

func TestWritePDF(t *testing.T) {
	letter := document.NewPage()
	letter.Size = document.PageLetter

	doc, err := document.NewBuilder().
		WithTitle("Export").
		WithAuthor("tester").
		AddPage(samplePage(t)).
		AddPage(letter).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, doc))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Count 2")
	assert.Contains(t, string(out), "%%EOF")
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WritePDF(&buf, nil), document.ErrEmptyDocument)
	assert.ErrorIs(t, WritePDF(&buf, &document.Document{}), document.ErrEmptyDocument)
	assert.Zero(t, buf.Len())
}
