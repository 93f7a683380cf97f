package document

import (
	"fmt"
	"time"
)

// Metadata holds descriptive document fields.
type Metadata struct {
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch records a modification time.
func (m *Metadata) Touch() {
	m.UpdatedAt = time.Now().UTC()
}

// Document is an ordered sequence of pages plus metadata.
type Document struct {
	ID       DocumentID `json:"id"`
	Metadata Metadata   `json:"metadata"`
	Pages    []*Page    `json:"pages"`
}

// NewDocument returns a document with a single empty page.
func NewDocument(title string) *Document {
	doc, _ := NewBuilder().WithTitle(title).AddPage(NewPage()).Build()
	return doc
}

// Page returns the page at index i.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.Pages) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrPageOutOfRange, i, len(d.Pages))
	}
	return d.Pages[i], nil
}

// PageByID returns the page with the given id.
func (d *Document) PageByID(id PageID) (*Page, bool) {
	for _, p := range d.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// AddPage appends a page and returns its index.
func (d *Document) AddPage(p *Page) int {
	d.Pages = append(d.Pages, p)
	return len(d.Pages) - 1
}

// Builder assembles a Document.
type Builder struct {
	title  string
	author string
	tags   []string
	pages  []*Page
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithTitle sets the document title.
func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithAuthor sets the document author.
func (b *Builder) WithAuthor(author string) *Builder {
	b.author = author
	return b
}

// WithTags sets the document tags.
func (b *Builder) WithTags(tags ...string) *Builder {
	b.tags = append(b.tags[:0], tags...)
	return b
}

// AddPage appends a page.
func (b *Builder) AddPage(p *Page) *Builder {
	b.pages = append(b.pages, p)
	return b
}

// Build returns the document, or ErrEmptyDocument when no page was added.
func (b *Builder) Build() (*Document, error) {
	if len(b.pages) == 0 {
		return nil, ErrEmptyDocument
	}
	title := b.title
	if title == "" {
		title = "Untitled"
	}
	now := time.Now().UTC()
	return &Document{
		ID: NewDocumentID(),
		Metadata: Metadata{
			Title:     title,
			Author:    b.author,
			Tags:      b.tags,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Pages: b.pages,
	}, nil
}
