package command

import (
	"fmt"

	"github.com/dshills/canvasedit/internal/document"
)

// Group wraps top-level elements in a new group element.
//
// Members keep their relative z-order inside the group. The group takes the
// z-order slot of its topmost member. Undo removes the group and puts every
// member back at its original index.
type Group struct {
	target
	ids     []document.ElementID
	groupID document.ElementID
	members []located
}

// NewGroup creates a grouping of ids. The group id is minted here so it is
// stable across undo/redo.
func NewGroup(doc *document.Document, page int, ids []document.ElementID) *Group {
	return &Group{
		target:  target{doc: doc, pageIndex: page},
		ids:     copyIDs(ids),
		groupID: document.NewElementID(),
	}
}

// GroupID returns the id of the group element.
func (c *Group) GroupID() document.ElementID {
	return c.groupID
}

// Execute implements history.Command.
func (c *Group) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	if p.Contains(c.groupID) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, c.groupID)
	}
	ls := locate(p, c.ids)
	if len(ls) < 2 {
		return "", fmt.Errorf("%w: grouping needs at least 2, found %d", ErrTooFewElements, len(ls))
	}

	children := make([]document.Element, len(ls))
	for i, l := range ls {
		children[i] = l.element
	}
	removeLocated(p, ls)

	// Slot of the topmost member once the others are gone.
	slot := ls[len(ls)-1].index - (len(ls) - 1)
	p.Insert(slot, document.NewGroup(c.groupID, children))

	c.members = ls
	return fmt.Sprintf("Grouped %d elements", len(ls)), nil
}

// Undo implements history.Command.
func (c *Group) Undo() (string, error) {
	if c.members == nil {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	if _, _, ok := p.Remove(c.groupID); !ok {
		return "", fmt.Errorf("%w: group %s", document.ErrElementNotFound, c.groupID)
	}
	restoreLocated(p, c.members)
	c.members = nil
	return "Ungrouped elements", nil
}

// Description implements history.Command.
func (c *Group) Description() string {
	return "Group"
}

// Ungroup dissolves a group or frame, placing its children on the page at
// the container's z-order slot. Undo removes the children and puts the
// container back.
type Ungroup struct {
	target
	groupID   document.ElementID
	container document.Element
	index     int
	childIDs  []document.ElementID
}

// NewUngroup creates an ungrouping of the container groupID.
func NewUngroup(doc *document.Document, page int, groupID document.ElementID) *Ungroup {
	return &Ungroup{
		target:  target{doc: doc, pageIndex: page},
		groupID: groupID,
		index:   -1,
	}
}

// ChildIDs returns the ids released by the last Execute.
func (c *Ungroup) ChildIDs() []document.ElementID {
	return copyIDs(c.childIDs)
}

// Execute implements history.Command.
func (c *Ungroup) Execute() (string, error) {
	p, err := c.page()
	if err != nil {
		return "", err
	}
	e, i, ok := p.Find(c.groupID)
	if !ok {
		return "", fmt.Errorf("%w: %s", document.ErrElementNotFound, c.groupID)
	}
	if !document.IsContainer(e) {
		return "", fmt.Errorf("%w: %s is a %s", ErrNotContainer, c.groupID, e.Kind())
	}

	children := document.Children(e)
	p.RemoveAt(i)
	ids := make([]document.ElementID, len(children))
	for j, child := range children {
		p.Insert(i+j, child)
		ids[j] = child.ID()
	}

	c.container = e
	c.index = i
	c.childIDs = ids
	return fmt.Sprintf("Ungrouped %d elements", len(ids)), nil
}

// Undo implements history.Command.
func (c *Ungroup) Undo() (string, error) {
	if c.container == nil {
		return "", ErrNotExecuted
	}
	p, err := c.page()
	if err != nil {
		return "", err
	}
	p.RemoveAll(c.childIDs)
	p.Insert(c.index, c.container)
	c.container = nil
	return "Re-grouped elements", nil
}

// Description implements history.Command.
func (c *Ungroup) Description() string {
	return "Ungroup"
}
