package document

// PageMetadata holds descriptive page fields.
type PageMetadata struct {
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Page is an ordered sequence of top-level elements.
// The slice index is the z-order: 0 is the back, Len()-1 the front.
type Page struct {
	ID       PageID
	Metadata PageMetadata
	Size     PageSize

	elements []Element
}

// NewPage returns an empty A4 page with a fresh id.
func NewPage() *Page {
	return &Page{
		ID:   NewPageID(),
		Size: PageA4,
	}
}

// Len returns the number of top-level elements.
func (p *Page) Len() int {
	return len(p.elements)
}

// Elements returns the top-level elements in z-order.
// The returned slice is a copy; the elements themselves are shared.
func (p *Page) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// IDs returns the top-level element ids in z-order.
func (p *Page) IDs() []ElementID {
	out := make([]ElementID, len(p.elements))
	for i, e := range p.elements {
		out[i] = e.ID()
	}
	return out
}

// At returns the element at index i, or nil if out of range.
func (p *Page) At(i int) Element {
	if i < 0 || i >= len(p.elements) {
		return nil
	}
	return p.elements[i]
}

// Add appends e at the front of the z-order.
func (p *Page) Add(e Element) {
	p.elements = append(p.elements, e)
}

// Insert places e at index i. Indices past the end append; negative indices
// insert at the back.
func (p *Page) Insert(i int, e Element) {
	if i < 0 {
		i = 0
	}
	if i >= len(p.elements) {
		p.elements = append(p.elements, e)
		return
	}
	p.elements = append(p.elements, nil)
	copy(p.elements[i+1:], p.elements[i:])
	p.elements[i] = e
}

// IndexOf returns the index of the element with the given id, or -1.
func (p *Page) IndexOf(id ElementID) int {
	for i, e := range p.elements {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// Find returns the top-level element with the given id and its index.
func (p *Page) Find(id ElementID) (Element, int, bool) {
	i := p.IndexOf(id)
	if i < 0 {
		return nil, -1, false
	}
	return p.elements[i], i, true
}

// Contains reports whether a top-level element has the given id.
func (p *Page) Contains(id ElementID) bool {
	return p.IndexOf(id) >= 0
}

// FindDeep searches the page and all containers for id.
func (p *Page) FindDeep(id ElementID) (Element, bool) {
	var found Element
	for _, e := range p.elements {
		Walk(e, func(n Element) bool {
			if n.ID() == id {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// RemoveAt removes and returns the element at index i, or nil if out of range.
func (p *Page) RemoveAt(i int) Element {
	if i < 0 || i >= len(p.elements) {
		return nil
	}
	e := p.elements[i]
	copy(p.elements[i:], p.elements[i+1:])
	p.elements[len(p.elements)-1] = nil
	p.elements = p.elements[:len(p.elements)-1]
	return e
}

// Remove removes the element with the given id and reports its former index.
func (p *Page) Remove(id ElementID) (Element, int, bool) {
	i := p.IndexOf(id)
	if i < 0 {
		return nil, -1, false
	}
	return p.RemoveAt(i), i, true
}

// RemoveAll removes every element whose id is in ids and returns how many
// were removed.
func (p *Page) RemoveAll(ids []ElementID) int {
	set := idSet(ids)
	kept := p.elements[:0]
	removed := 0
	for _, e := range p.elements {
		if _, ok := set[e.ID()]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(p.elements); i++ {
		p.elements[i] = nil
	}
	p.elements = kept
	return removed
}

// ZOrder returns the z-order index of id.
func (p *Page) ZOrder(id ElementID) (int, bool) {
	i := p.IndexOf(id)
	return i, i >= 0
}

// BringToFront moves id to the last index.
func (p *Page) BringToFront(id ElementID) bool {
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	e := p.RemoveAt(i)
	p.elements = append(p.elements, e)
	return true
}

// SendToBack moves id to index 0.
func (p *Page) SendToBack(id ElementID) bool {
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	e := p.RemoveAt(i)
	p.Insert(0, e)
	return true
}

// BringForward swaps id with its next neighbor.
// Returns false if id is absent or already at the front.
func (p *Page) BringForward(id ElementID) bool {
	i := p.IndexOf(id)
	if i < 0 || i == len(p.elements)-1 {
		return false
	}
	p.elements[i], p.elements[i+1] = p.elements[i+1], p.elements[i]
	return true
}

// SendBackward swaps id with its previous neighbor.
// Returns false if id is absent or already at the back.
func (p *Page) SendBackward(id ElementID) bool {
	i := p.IndexOf(id)
	if i <= 0 {
		return false
	}
	p.elements[i], p.elements[i-1] = p.elements[i-1], p.elements[i]
	return true
}

// MoveTo relocates id to index (clamped). Returns false if id is absent.
func (p *Page) MoveTo(id ElementID, index int) bool {
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	e := p.RemoveAt(i)
	p.Insert(index, e)
	return true
}

func idSet(ids []ElementID) map[ElementID]struct{} {
	set := make(map[ElementID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
