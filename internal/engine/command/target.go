package command

import (
	"sort"

	"github.com/dshills/canvasedit/internal/document"
)

// target binds a command to one page of a document.
type target struct {
	doc       *document.Document
	pageIndex int
}

// page resolves the bound page.
func (t target) page() (*document.Page, error) {
	return t.doc.Page(t.pageIndex)
}

// located is a top-level element and its z-order index.
type located struct {
	element document.Element
	index   int
}

// locate finds the top-level elements named by ids, sorted by index.
// Unknown and repeated ids are skipped.
func locate(p *document.Page, ids []document.ElementID) []located {
	seen := make(map[document.ElementID]struct{}, len(ids))
	out := make([]located, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if e, i, ok := p.Find(id); ok {
			out = append(out, located{element: e, index: i})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].index < out[b].index })
	return out
}

// removeLocated removes ls from p, highest index first so lower indices stay
// valid.
func removeLocated(p *document.Page, ls []located) {
	for i := len(ls) - 1; i >= 0; i-- {
		p.RemoveAt(ls[i].index)
	}
}

// restoreLocated reinserts ls at their recorded indices. ls must be sorted
// by ascending index.
func restoreLocated(p *document.Page, ls []located) {
	for _, l := range ls {
		p.Insert(l.index, l.element)
	}
}

func copyIDs(ids []document.ElementID) []document.ElementID {
	out := make([]document.ElementID, len(ids))
	copy(out, ids)
	return out
}
