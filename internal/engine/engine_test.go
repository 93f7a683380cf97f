package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/canvasedit/internal/config"
	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine/command"
	"github.com/dshills/canvasedit/internal/engine/history"
)

func rect(x, y, w, h float64) document.Rect {
	return document.NewRect(x, y, w, h)
}

func addShape(t *testing.T, e *Engine, r document.Rect) ElementID {
	t.Helper()
	id, err := e.Create(document.NewShape(document.ShapeRectangle, r))
	require.NoError(t, err)
	return id
}

func bounds(t *testing.T, e *Engine, id ElementID) document.Rect {
	t.Helper()
	el, ok := e.Element(id)
	require.True(t, ok, "element %s not found", id)
	return el.Bounds()
}

func ids(e *Engine) []ElementID {
	var out []ElementID
	for _, el := range e.Elements() {
		out = append(out, el.ID())
	}
	return out
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e.Document())
	assert.Equal(t, 1, e.Document().PageCount())
	assert.Equal(t, DefaultTitle, e.Document().Metadata.Title)
	assert.Equal(t, 0, e.ActivePage())
	assert.Equal(t, DefaultMaxUndoEntries, e.MaxUndoEntries())
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestNew_WithOptions(t *testing.T) {
	doc := document.NewDocument("Poster")
	e := New(
		WithDocument(doc),
		WithMaxUndoEntries(3),
		WithDuplicateOffset(document.Point{X: 1, Y: 2}),
	)

	assert.Same(t, doc, e.Document())
	assert.Equal(t, 3, e.MaxUndoEntries())

	id := addShape(t, e, rect(0, 0, 10, 10))
	dups, err := e.Duplicate([]ElementID{id})
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, rect(1, 2, 10, 10), bounds(t, e, dups[0]))
}

func TestEngine_MoveResizeBatch(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	b := addShape(t, e, rect(50, 50, 10, 10))

	require.NoError(t, e.Move([]ElementID{a}, 5, 5))
	assert.Equal(t, rect(5, 5, 10, 10), bounds(t, e, a))

	require.NoError(t, e.Resize(b, rect(50, 50, 30, 40)))
	assert.Equal(t, rect(50, 50, 30, 40), bounds(t, e, b))

	e.BeginBatch("Nudge both")
	require.NoError(t, e.Move([]ElementID{a, b}, 1, 0))
	require.NoError(t, e.Move([]ElementID{a, b}, 0, 1))
	require.NoError(t, e.EndBatch())

	desc, ok := e.UndoDescription()
	require.True(t, ok)
	assert.Equal(t, "Nudge both", desc)

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, rect(5, 5, 10, 10), bounds(t, e, a))
	assert.Equal(t, rect(50, 50, 30, 40), bounds(t, e, b))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, rect(50, 50, 10, 10), bounds(t, e, b))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, rect(0, 0, 10, 10), bounds(t, e, a))

	for e.CanRedo() {
		_, err := e.Redo()
		require.NoError(t, err)
	}
	assert.Equal(t, rect(6, 6, 10, 10), bounds(t, e, a))
	assert.Equal(t, rect(51, 51, 30, 40), bounds(t, e, b))
}

func TestEngine_ResizeMissing(t *testing.T) {
	e := New()
	err := e.Resize(document.NewElementID(), rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, document.ErrElementNotFound)
	assert.Equal(t, 0, e.UndoCount())
}

func TestEngine_EmptySelection(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Move(nil, 1, 1), ErrNoSelection)
	assert.ErrorIs(t, e.Delete(nil), ErrNoSelection)
	_, err := e.Duplicate(nil)
	assert.ErrorIs(t, err, ErrNoSelection)
	_, err = e.Copy(nil)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestEngine_DeleteRestoresOrder(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 1, 1))
	b := addShape(t, e, rect(0, 0, 1, 1))
	c := addShape(t, e, rect(0, 0, 1, 1))

	require.NoError(t, e.Delete([]ElementID{a, c}))
	assert.Equal(t, []ElementID{b}, ids(e))

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []ElementID{a, b, c}, ids(e))
}

func TestEngine_GroupUngroup(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	b := addShape(t, e, rect(20, 20, 10, 10))
	before := ids(e)

	g, err := e.Group([]ElementID{a, b})
	require.NoError(t, err)
	assert.Equal(t, []ElementID{g}, ids(e))
	assert.Equal(t, rect(0, 0, 30, 30), bounds(t, e, g))

	children, err := e.Ungroup(g)
	require.NoError(t, err)
	assert.Equal(t, []ElementID{a, b}, children)
	assert.Equal(t, before, ids(e))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []ElementID{g}, ids(e))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, ids(e))
}

func TestEngine_SetProperty(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	red := document.MustParseColor("#ff0000")

	require.NoError(t, e.SetProperty([]ElementID{a}, command.FillColor(&red)))
	el, _ := e.Element(a)
	require.NotNil(t, el.(*document.ShapeElement).Fill)
	assert.Equal(t, red, *el.(*document.ShapeElement).Fill)

	_, err := e.Undo()
	require.NoError(t, err)
	el, _ = e.Element(a)
	assert.Nil(t, el.(*document.ShapeElement).Fill)
}

func TestEngine_Reorder(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 1, 1))
	b := addShape(t, e, rect(0, 0, 1, 1))

	require.NoError(t, e.Reorder(a, command.BringToFront))
	assert.Equal(t, []ElementID{b, a}, ids(e))

	err := e.Reorder(a, command.BringForward)
	assert.ErrorIs(t, err, command.ErrNoChange)
	assert.Equal(t, 3, e.UndoCount(), "boundary move is not recorded")

	z, ok := e.ZOrder(a)
	require.True(t, ok)
	assert.Equal(t, 1, z)
}

func TestEngine_AlignDistribute(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(10, 0, 10, 10))
	b := addShape(t, e, rect(30, 20, 10, 10))
	c := addShape(t, e, rect(0, 100, 10, 10))
	sel := []ElementID{a, b, c}

	require.NoError(t, e.Align(sel, command.AlignLeft))
	for _, id := range sel {
		assert.Equal(t, 0.0, bounds(t, e, id).Origin.X)
	}

	require.NoError(t, e.Distribute(sel, command.Vertical))
	assert.Equal(t, 0.0, bounds(t, e, a).Origin.Y)
	assert.Equal(t, 50.0, bounds(t, e, b).Origin.Y)
	assert.Equal(t, 100.0, bounds(t, e, c).Origin.Y)

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, 20.0, bounds(t, e, b).Origin.Y)
}

func TestEngine_CopyPaste(t *testing.T) {
	e := New(WithPasteOffset(document.Point{X: 5, Y: 5}))
	a := addShape(t, e, rect(0, 0, 10, 10))

	n, err := e.Copy([]ElementID{a})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, e.HasClipboard())
	assert.Equal(t, 1, e.UndoCount(), "copy is not an edit")

	first, err := e.Paste()
	require.NoError(t, err)
	second, err := e.Paste()
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0], second[0])
	assert.NotEqual(t, a, first[0])
	assert.Equal(t, rect(5, 5, 10, 10), bounds(t, e, first[0]))
	assert.Equal(t, []ElementID{a, first[0], second[0]}, ids(e))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []ElementID{a, first[0]}, ids(e))
}

func TestEngine_Cut(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	b := addShape(t, e, rect(0, 0, 10, 10))

	require.NoError(t, e.Cut([]ElementID{a}))
	assert.Equal(t, []ElementID{b}, ids(e))

	desc, _ := e.UndoDescription()
	assert.Equal(t, "Cut 1 element", desc)

	pasted, err := e.Paste()
	require.NoError(t, err)
	assert.Equal(t, []ElementID{b, pasted[0]}, ids(e))

	_, err = e.Undo()
	require.NoError(t, err)
	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []ElementID{a, b}, ids(e))
}

func TestEngine_PasteEmpty(t *testing.T) {
	_, err := New().Paste()
	assert.Error(t, err)
}

func TestEngine_Transaction(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	boom := errors.New("boom")

	err := e.Transaction("Failing", func() error {
		if err := e.Move([]ElementID{a}, 10, 10); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, rect(0, 0, 10, 10), bounds(t, e, a))
	assert.Equal(t, 1, e.UndoCount())

	err = e.Transaction("Shift", func() error {
		return e.Move([]ElementID{a}, 1, 1)
	})
	require.NoError(t, err)
	desc, _ := e.UndoDescription()
	assert.Equal(t, "Shift", desc)
}

func TestEngine_Checkpoint(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	cp := e.Checkpoint()

	require.NoError(t, e.Move([]ElementID{a}, 10, 0))
	require.NoError(t, e.Move([]ElementID{a}, 0, 10))
	addShape(t, e, rect(40, 40, 5, 5))

	require.NoError(t, e.RevertTo(cp))
	assert.Equal(t, rect(0, 0, 10, 10), bounds(t, e, a))
	assert.Len(t, e.Elements(), 1)
	assert.Equal(t, 1, e.UndoCount())
	assert.Equal(t, 3, e.RedoCount())

	for e.CanRedo() {
		_, err := e.Redo()
		require.NoError(t, err)
	}
	end := e.Checkpoint()
	require.NoError(t, e.RevertTo(cp))

	require.NoError(t, e.ReplayTo(end))
	assert.Equal(t, rect(10, 10, 10, 10), bounds(t, e, a))
	assert.Len(t, e.Elements(), 2)
}

func TestEngine_CheckpointAtCapacity(t *testing.T) {
	e := New(WithMaxUndoEntries(3))
	a := addShape(t, e, rect(0, 0, 1, 1))
	require.NoError(t, e.Move([]ElementID{a}, 1, 0))
	require.NoError(t, e.Move([]ElementID{a}, 1, 0))
	cp := e.Checkpoint()

	require.NoError(t, e.Move([]ElementID{a}, 100, 0))
	require.NoError(t, e.RevertTo(cp))
	assert.Equal(t, rect(2, 0, 1, 1), bounds(t, e, a))
}

func TestEngine_CheckpointLost(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 1, 1))
	require.NoError(t, e.Move([]ElementID{a}, 1, 0))
	cp := e.Checkpoint()

	_, err := e.Undo()
	require.NoError(t, err)
	require.NoError(t, e.Move([]ElementID{a}, 50, 0))

	assert.ErrorIs(t, e.RevertTo(cp), ErrCheckpointLost)
	assert.Equal(t, rect(50, 0, 1, 1), bounds(t, e, a))
	assert.Equal(t, 2, e.UndoCount())
}

func TestEngine_TransactionPanic(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))

	assert.Panics(t, func() {
		_ = e.Transaction("Explodes", func() error {
			_ = e.Move([]ElementID{a}, 10, 10)
			panic("boom")
		})
	})

	assert.Equal(t, rect(0, 0, 10, 10), bounds(t, e, a))
	assert.Equal(t, 1, e.UndoCount())

	_, err := e.Undo()
	require.NoError(t, err, "no batch left open")
	assert.Empty(t, e.Elements())
}

func TestEngine_UndoRefusedDuringBatch(t *testing.T) {
	e := New()
	addShape(t, e, rect(0, 0, 1, 1))

	e.BeginBatch("open")
	_, err := e.Undo()
	assert.ErrorIs(t, err, ErrBatchOpen)
	assert.False(t, e.CanUndo())
	e.CancelBatch()
	assert.True(t, e.CanUndo())
}

func TestEngine_NothingToUndo(t *testing.T) {
	e := New()
	_, err := e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = e.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestEngine_BoundedHistory(t *testing.T) {
	e := New(WithMaxUndoEntries(2))
	a := addShape(t, e, rect(0, 0, 1, 1))
	require.NoError(t, e.Move([]ElementID{a}, 1, 0))
	require.NoError(t, e.Move([]ElementID{a}, 1, 0))

	assert.Equal(t, 2, e.UndoCount())
	info := e.UndoHistory()
	require.Len(t, info, 2)
	assert.Equal(t, "Move", info[0].Description)
}

func TestEngine_Open(t *testing.T) {
	e := New()
	addShape(t, e, rect(0, 0, 1, 1))
	require.True(t, e.CanUndo())

	doc := document.NewDocument("Other")
	doc.AddPage(document.NewPage())
	require.NoError(t, e.SetActivePage(0))
	e.Open(doc)

	assert.Same(t, doc, e.Document())
	assert.False(t, e.CanUndo())
	assert.Empty(t, e.Elements())

	require.NoError(t, e.SetActivePage(1))
	assert.Equal(t, 1, e.ActivePage())
	assert.ErrorIs(t, e.SetActivePage(2), document.ErrPageOutOfRange)
}

func TestEngine_AddPage(t *testing.T) {
	e := New()
	i := e.AddPage(document.CustomPageSize(100, 200))
	assert.Equal(t, 1, i)
	require.NoError(t, e.SetActivePage(i))

	addShape(t, e, rect(0, 0, 1, 1))
	assert.Len(t, e.Elements(), 1)

	p, err := e.Document().Page(0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestEngine_ReadOnly(t *testing.T) {
	e := New(WithReadOnly(true))
	_, err := e.Create(document.NewShape(document.ShapeEllipse, rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Empty(t, e.Elements())

	e.SetReadOnly(false)
	assert.False(t, e.IsReadOnly())
	addShape(t, e, rect(0, 0, 1, 1))
}

func TestEngine_ReadOnlyHistory(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	cp := e.Checkpoint()
	require.NoError(t, e.Move([]ElementID{a}, 5, 5))
	_, err := e.Undo()
	require.NoError(t, err)

	e.SetReadOnly(true)

	_, err = e.Redo()
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, e.RevertTo(cp), ErrReadOnly)

	e.SetReadOnly(false)
	_, err = e.Redo()
	require.NoError(t, err)
	end := e.Checkpoint()
	require.NoError(t, e.RevertTo(cp))
	e.SetReadOnly(true)
	assert.ErrorIs(t, e.ReplayTo(end), ErrReadOnly)

	called := false
	err = e.Transaction("Refused", func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.False(t, called)

	assert.Equal(t, rect(0, 0, 10, 10), bounds(t, e, a))
	assert.Len(t, e.Elements(), 1)
	assert.Equal(t, 1, e.UndoCount())
	assert.Equal(t, 1, e.RedoCount())
}

func TestEngine_ReadOnlyCutKeepsClipboard(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 10, 10))
	b := addShape(t, e, rect(20, 20, 10, 10))

	_, err := e.Copy([]ElementID{a})
	require.NoError(t, err)

	e.SetReadOnly(true)
	assert.ErrorIs(t, e.Cut([]ElementID{b}), ErrReadOnly)
	assert.Equal(t, []ElementID{a, b}, ids(e))

	e.SetReadOnly(false)
	pasted, err := e.Paste()
	require.NoError(t, err)
	require.Len(t, pasted, 1)
	assert.Equal(t, rect(20, 20, 10, 10), bounds(t, e, pasted[0]), "copy of a, not b")
}

func TestEngine_ApplyConfig(t *testing.T) {
	e := New()
	a := addShape(t, e, rect(0, 0, 1, 1))
	for i := 0; i < 4; i++ {
		require.NoError(t, e.Move([]ElementID{a}, 1, 0))
	}

	cfg := config.Default()
	cfg.History.MaxEntries = 2
	cfg.Edit.DuplicateOffset = config.Offset{X: 0, Y: 7}
	e.ApplyConfig(cfg)

	assert.Equal(t, 2, e.UndoCount())
	assert.Equal(t, 2, e.MaxUndoEntries())

	dups, err := e.Duplicate([]ElementID{a})
	require.NoError(t, err)
	assert.Equal(t, rect(4, 7, 1, 1), bounds(t, e, dups[0]))

	e.ApplyConfig(nil)
	assert.Equal(t, 2, e.MaxUndoEntries())
}

func TestEngine_Push(t *testing.T) {
	e := New()
	var ran bool
	cmd := &history.Func{
		Name:   "Custom",
		Do:     func() error { ran = true; return nil },
		Revert: func() error { ran = false; return nil },
	}

	require.NoError(t, e.Push(cmd))
	assert.True(t, ran)
	_, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestEngine_Concurrent(t *testing.T) {
	e := New(WithMaxUndoEntries(1000))
	a := addShape(t, e, rect(0, 0, 1, 1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = e.Move([]ElementID{a}, 1, 0)
				_ = e.Elements()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200.0, bounds(t, e, a).Origin.X)
	assert.Equal(t, 201, e.UndoCount())
}
