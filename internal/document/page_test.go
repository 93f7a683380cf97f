package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPage returns a page holding n rectangles stacked back to front.
func newTestPage(n int) (*Page, []ElementID) {
	p := NewPage()
	ids := make([]ElementID, n)
	for i := 0; i < n; i++ {
		s := NewShape(ShapeRectangle, NewRect(float64(i*10), 0, 10, 10))
		ids[i] = s.ID()
		p.Add(s)
	}
	return p, ids
}

func TestPageAddAndFind(t *testing.T) {
	p, ids := newTestPage(3)
	require.Equal(t, 3, p.Len())

	e, idx, ok := p.Find(ids[1])
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, ids[1], e.ID())

	_, _, ok = p.Find(NewElementID())
	assert.False(t, ok)
}

func TestPageInsertClamps(t *testing.T) {
	p, ids := newTestPage(2)
	back := NewShape(ShapeEllipse, NewRect(0, 0, 1, 1))
	front := NewShape(ShapeEllipse, NewRect(0, 0, 1, 1))

	p.Insert(-5, back)
	p.Insert(100, front)

	assert.Equal(t, []ElementID{back.ID(), ids[0], ids[1], front.ID()}, p.IDs())
}

func TestPageRemove(t *testing.T) {
	p, ids := newTestPage(3)

	e, idx, ok := p.Remove(ids[1])
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, ids[1], e.ID())
	assert.Equal(t, []ElementID{ids[0], ids[2]}, p.IDs())

	_, _, ok = p.Remove(ids[1])
	assert.False(t, ok)
}

func TestPageRemoveAll(t *testing.T) {
	p, ids := newTestPage(4)
	n := p.RemoveAll([]ElementID{ids[0], ids[2], NewElementID()})
	assert.Equal(t, 2, n)
	assert.Equal(t, []ElementID{ids[1], ids[3]}, p.IDs())
}

func TestPageZOrder(t *testing.T) {
	tests := []struct {
		name    string
		op      func(p *Page, id ElementID) bool
		target  int
		wantOK  bool
		wantIdx []int
	}{
		{"bring to front", (*Page).BringToFront, 0, true, []int{1, 2, 3, 0}},
		{"bring to front already front", (*Page).BringToFront, 3, true, []int{0, 1, 2, 3}},
		{"send to back", (*Page).SendToBack, 2, true, []int{2, 0, 1, 3}},
		{"bring forward", (*Page).BringForward, 1, true, []int{0, 2, 1, 3}},
		{"bring forward at front", (*Page).BringForward, 3, false, []int{0, 1, 2, 3}},
		{"send backward", (*Page).SendBackward, 2, true, []int{0, 2, 1, 3}},
		{"send backward at back", (*Page).SendBackward, 0, false, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ids := newTestPage(4)
			ok := tt.op(p, ids[tt.target])
			assert.Equal(t, tt.wantOK, ok)

			want := make([]ElementID, len(tt.wantIdx))
			for i, idx := range tt.wantIdx {
				want[i] = ids[idx]
			}
			assert.Equal(t, want, p.IDs())
		})
	}
}

func TestPageZOrderMissingID(t *testing.T) {
	p, ids := newTestPage(2)
	missing := NewElementID()

	assert.False(t, p.BringToFront(missing))
	assert.False(t, p.SendToBack(missing))
	assert.False(t, p.BringForward(missing))
	assert.False(t, p.SendBackward(missing))
	_, ok := p.ZOrder(missing)
	assert.False(t, ok)
	assert.Equal(t, ids, p.IDs())
}

func TestPageZOrderIndex(t *testing.T) {
	p, ids := newTestPage(3)
	idx, ok := p.ZOrder(ids[2])
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestPageMoveTo(t *testing.T) {
	p, ids := newTestPage(4)
	require.True(t, p.MoveTo(ids[3], 1))
	assert.Equal(t, []ElementID{ids[0], ids[3], ids[1], ids[2]}, p.IDs())
	assert.False(t, p.MoveTo(NewElementID(), 0))
}

func TestPageFindDeep(t *testing.T) {
	p := NewPage()
	child := NewShape(ShapeRectangle, NewRect(0, 0, 5, 5))
	g := NewGroup(NewElementID(), []Element{child})
	p.Add(g)

	found, ok := p.FindDeep(child.ID())
	require.True(t, ok)
	assert.Same(t, child, found)
	assert.False(t, p.Contains(child.ID()))
}

func TestPageElementsIsCopy(t *testing.T) {
	p, _ := newTestPage(2)
	es := p.Elements()
	es[0] = nil
	assert.NotNil(t, p.At(0))
}
