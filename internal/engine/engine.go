package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/canvasedit/internal/clipboard"
	"github.com/dshills/canvasedit/internal/config"
	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/engine/command"
	"github.com/dshills/canvasedit/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Command is an undoable document edit.
	Command = history.Command

	// ElementID identifies an element.
	ElementID = document.ElementID

	// EntryInfo describes one history entry.
	EntryInfo = history.EntryInfo

	// Checkpoint marks a point in the undo history.
	Checkpoint = history.Checkpoint
)

// Engine is the main facade for editing a document.
// It combines the active document, undo/redo history and the clipboard
// into a unified, thread-safe API. Every edit is built as a command and
// recorded in history, so it can be undone.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	doc       *document.Document
	page      int
	history   *history.History
	clipboard *clipboard.Clipboard
	logger    *zap.Logger

	// Configuration
	maxUndoEntries  int
	duplicateOffset document.Point
	pasteOffset     document.Point
	readOnly        bool
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	dup, paste := defaultOffsets()
	e := &Engine{
		maxUndoEntries:  DefaultMaxUndoEntries,
		duplicateOffset: dup,
		pasteOffset:     paste,
		logger:          zap.NewNop(),
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}

	if e.doc == nil {
		e.doc = document.NewDocument(DefaultTitle)
	}

	e.history = history.NewHistory(
		history.WithMaxEntries(e.maxUndoEntries),
		history.WithLogger(e.logger),
	)

	e.clipboard = clipboard.New()
	e.clipboard.SetOffset(e.pasteOffset)

	return e
}

// ApplyConfig updates the engine from a reloaded configuration. Shrinking
// the history capacity discards the oldest entries.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.maxUndoEntries = cfg.History.MaxEntries
	e.history.SetMaxEntries(cfg.History.MaxEntries)
	e.duplicateOffset = document.Point(cfg.Edit.DuplicateOffset)
	e.pasteOffset = document.Point(cfg.Edit.PasteOffset)
	e.clipboard.SetOffset(e.pasteOffset)

	e.logger.Debug("config applied",
		zap.Int("max_entries", cfg.History.MaxEntries))
}

// ============================================================================
// Document
// ============================================================================

// Open makes doc the active document. History is cleared because its
// commands refer to the previous document.
func (e *Engine) Open(doc *document.Document) {
	if doc == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.doc = doc
	e.page = 0
	e.history.Clear()
	e.logger.Info("document opened",
		zap.String("title", doc.Metadata.Title),
		zap.Int("pages", doc.PageCount()))
}

// Document returns the active document. Callers must not mutate it while
// other goroutines use the engine.
func (e *Engine) Document() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// SetActivePage selects the page edits apply to.
func (e *Engine) SetActivePage(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.doc.Page(i); err != nil {
		return err
	}
	e.page = i
	return nil
}

// ActivePage returns the index of the active page.
func (e *Engine) ActivePage() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.page
}

// AddPage appends an empty page to the document and returns its index.
// Adding a page is not recorded in history.
func (e *Engine) AddPage(size document.PageSize) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := document.NewPage()
	p.Size = size
	return e.doc.AddPage(p)
}

// Elements returns copies of the active page's top-level elements in
// z-order, bottom first.
func (e *Engine) Elements() []document.Element {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, err := e.doc.Page(e.page)
	if err != nil {
		return nil
	}
	return document.Elements(p.Elements()).Clone()
}

// Element returns a copy of the element with id, searching inside groups
// and frames.
func (e *Engine) Element(id ElementID) (document.Element, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, err := e.doc.Page(e.page)
	if err != nil {
		return nil, false
	}
	el, ok := p.FindDeep(id)
	if !ok {
		return nil, false
	}
	return el.Clone(), true
}

// ZOrder returns the position of id on the active page.
func (e *Engine) ZOrder(id ElementID) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, err := e.doc.Page(e.page)
	if err != nil {
		return 0, false
	}
	return p.ZOrder(id)
}

// ============================================================================
// Edit Operations
// ============================================================================

// Push executes cmd and records it in history.
func (e *Engine) Push(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(cmd)
}

func (e *Engine) pushLocked(cmd Command) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.history.Push(cmd); err != nil {
		return err
	}
	e.doc.Metadata.Touch()
	return nil
}

// Create adds el on top of the active page.
func (e *Engine) Create(el document.Element) (ElementID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.NewCreate(e.doc, e.page, el)
	if err := e.pushLocked(cmd); err != nil {
		return ElementID{}, err
	}
	return cmd.ElementID(), nil
}

// Move translates ids by (dx, dy).
func (e *Engine) Move(ids []ElementID, dx, dy float64) error {
	if len(ids) == 0 {
		return ErrNoSelection
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewMove(e.doc, e.page, ids, dx, dy))
}

// Resize changes the bounds of id. The current bounds are captured for
// undo.
func (e *Engine) Resize(id ElementID, bounds document.Rect) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.doc.Page(e.page)
	if err != nil {
		return err
	}
	el, _, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", document.ErrElementNotFound, id)
	}
	return e.pushLocked(command.NewResize(e.doc, e.page, id, el.Bounds(), bounds))
}

// Delete removes ids from the active page.
func (e *Engine) Delete(ids []ElementID) error {
	if len(ids) == 0 {
		return ErrNoSelection
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewDelete(e.doc, e.page, ids))
}

// Duplicate copies ids and returns the ids of the copies.
func (e *Engine) Duplicate(ids []ElementID) ([]ElementID, error) {
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.NewDuplicateWithOffset(e.doc, e.page, ids, e.duplicateOffset)
	if err := e.pushLocked(cmd); err != nil {
		return nil, err
	}
	return cmd.DuplicateIDs(), nil
}

// Group wraps ids in a new group and returns the group's id.
func (e *Engine) Group(ids []ElementID) (ElementID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.NewGroup(e.doc, e.page, ids)
	if err := e.pushLocked(cmd); err != nil {
		return ElementID{}, err
	}
	return cmd.GroupID(), nil
}

// Ungroup dissolves a group and returns the ids of its children.
func (e *Engine) Ungroup(id ElementID) ([]ElementID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.NewUngroup(e.doc, e.page, id)
	if err := e.pushLocked(cmd); err != nil {
		return nil, err
	}
	return cmd.ChildIDs(), nil
}

// SetProperty applies value to ids.
func (e *Engine) SetProperty(ids []ElementID, value command.Value) error {
	if len(ids) == 0 {
		return ErrNoSelection
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewPropertyChange(e.doc, e.page, ids, value))
}

// Reorder changes the z-order of id. A move past either end of the page
// returns command.ErrNoChange and records nothing.
func (e *Engine) Reorder(id ElementID, op command.ReorderOp) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewReorder(e.doc, e.page, id, op))
}

// Align lines up ids along mode.
func (e *Engine) Align(ids []ElementID, mode command.AlignMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewAlign(e.doc, e.page, ids, mode))
}

// Distribute spaces ids evenly along axis.
func (e *Engine) Distribute(ids []ElementID, axis command.Axis) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushLocked(command.NewDistribute(e.doc, e.page, ids, axis))
}

// ============================================================================
// Clipboard
// ============================================================================

// Copy places copies of ids on the clipboard in z-order. It returns the
// number of elements copied.
func (e *Engine) Copy(ids []ElementID) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.copyLocked(ids)
}

func (e *Engine) copyLocked(ids []ElementID) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}

	p, err := e.doc.Page(e.page)
	if err != nil {
		return 0, err
	}

	want := make(map[ElementID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var picked []document.Element
	for _, el := range p.Elements() {
		if want[el.ID()] {
			picked = append(picked, el)
		}
	}
	if len(picked) == 0 {
		return 0, fmt.Errorf("%w: %v", document.ErrElementNotFound, ids)
	}

	e.clipboard.Copy(picked)
	return len(picked), nil
}

// Cut copies ids to the clipboard and deletes them as one undo step.
func (e *Engine) Cut(ids []ElementID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	n, err := e.copyLocked(ids)
	if err != nil {
		return err
	}

	name := "Cut " + pluralize(n, "element", "elements")
	return e.pushLocked(history.NewBatch(name, command.NewDelete(e.doc, e.page, ids)))
}

// Paste inserts the clipboard contents on top of the active page and
// returns the new ids.
func (e *Engine) Paste() ([]ElementID, error) {
	els, err := e.clipboard.Paste()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := command.NewPaste(e.doc, e.page, els)
	if err := e.pushLocked(cmd); err != nil {
		return nil, err
	}
	return cmd.PastedIDs(), nil
}

// HasClipboard reports whether Paste has anything to insert.
func (e *Engine) HasClipboard() bool {
	return e.clipboard.HasContent()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last edit and returns its description.
func (e *Engine) Undo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return "", ErrReadOnly
	}
	return e.history.Undo()
}

// Redo re-applies the last undone edit and returns its description.
func (e *Engine) Redo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return "", ErrReadOnly
	}
	return e.history.Redo()
}

// CanUndo returns true if there are operations to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoDescription returns the label of the next undo, e.g. for a menu.
func (e *Engine) UndoDescription() (string, bool) {
	return e.history.UndoDescription()
}

// RedoDescription returns the label of the next redo.
func (e *Engine) RedoDescription() (string, bool) {
	return e.history.RedoDescription()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redo entries.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoHistory returns the undo entries, oldest first.
func (e *Engine) UndoHistory() []EntryInfo {
	return e.history.UndoInfo()
}

// BeginBatch starts grouping edits into one undo step.
func (e *Engine) BeginBatch(name string) {
	e.history.BeginBatch(name)
}

// EndBatch finishes the innermost batch.
func (e *Engine) EndBatch() error {
	return e.history.EndBatch()
}

// CancelBatch closes the innermost batch without recording it. Its edits
// stay applied.
func (e *Engine) CancelBatch() {
	e.history.CancelBatch()
}

// Transaction runs fn as one undo step. If fn fails, its edits are undone
// and fn's error is returned. A panic in fn undoes its edits and is then
// re-raised.
func (e *Engine) Transaction(name string, fn func() error) error {
	if e.IsReadOnly() {
		return ErrReadOnly
	}

	e.history.BeginBatch(name)

	returned := false
	defer func() {
		if returned {
			return
		}
		if err := e.rollback(); err != nil {
			e.logger.Error("rollback after panic failed",
				zap.String("batch", name),
				zap.Error(err))
		}
	}()

	err := fn()
	returned = true
	if err != nil {
		if rbErr := e.rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return e.history.EndBatch()
}

func (e *Engine) rollback() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.RollbackBatch()
}

// Checkpoint records the current position in the undo history.
func (e *Engine) Checkpoint() Checkpoint {
	return e.history.CreateCheckpoint()
}

// RevertTo undoes every edit made since cp. The reverted edits stay
// available for redo. ErrCheckpointLost is returned, and nothing is undone,
// when the edit cp was taken after has been evicted or discarded.
func (e *Engine) RevertTo(cp Checkpoint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.UndoToCheckpoint(cp)
}

// ReplayTo redoes reverted edits until the history is back at cp.
func (e *Engine) ReplayTo(cp Checkpoint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.RedoToCheckpoint(cp)
}

// ClearHistory drops all undo and redo entries.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// State
// ============================================================================

// IsReadOnly reports whether edits are refused.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// SetReadOnly enables or disables edits.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readOnly = readOnly
}

// MaxUndoEntries returns the history capacity.
func (e *Engine) MaxUndoEntries() int {
	return e.history.MaxEntries()
}
