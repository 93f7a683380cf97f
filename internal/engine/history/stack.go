package history

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
	seq       uint64
}

// EntryInfo provides read-only info about a history entry.
// Used for displaying undo/redo lists to users.
type EntryInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the entry was recorded
}

// batchFrame collects the commands of one open batch.
type batchFrame struct {
	name string
	cmds []Command
}

// History manages the undo and redo stacks of a document.
//
// Both stacks are bounded by MaxEntries. Commands run outside the lock, so a
// command may not call back into the History that is executing it.
type History struct {
	mu sync.Mutex

	undoStack deque[*undoEntry]
	redoStack deque[*undoEntry]

	// Open batches, innermost last.
	batches []*batchFrame

	// seq numbers recorded entries, starting at 1.
	seq uint64
	// dropped counts entries removed from the bottom of the undo stack.
	dropped uint64

	maxEntries int
	logger     *zap.Logger
	now        func() time.Time
}

// NewHistory creates a new history manager.
func NewHistory(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push executes cmd and records it.
//
// If Execute fails the history is unchanged and a *CommandError is returned.
// While a batch is open the command joins the innermost batch. Otherwise the
// redo stack is cleared and the command becomes the newest undo entry,
// evicting the oldest entry when the stack is over capacity.
func (h *History) Push(cmd Command) error {
	if _, err := cmd.Execute(); err != nil {
		h.logger.Warn("command failed",
			zap.String("op", OpExecute),
			zap.String("command", cmd.Description()),
			zap.Error(err))
		return newCommandError(OpExecute, cmd, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.batches); n > 0 {
		frame := h.batches[n-1]
		frame.cmds = append(frame.cmds, cmd)
		return nil
	}

	h.recordLocked(cmd)
	return nil
}

// recordLocked adds an already executed command to the undo stack.
func (h *History) recordLocked(cmd Command) {
	h.seq++
	h.undoStack.pushBack(&undoEntry{
		command:   cmd,
		timestamp: h.now(),
		seq:       h.seq,
	})

	h.redoStack.clear()
	h.trimLocked()
}

// trimLocked evicts the oldest entries of both stacks beyond capacity.
func (h *History) trimLocked() {
	for h.undoStack.len() > h.maxEntries {
		e, _ := h.undoStack.popFront()
		h.dropped++
		h.logger.Debug("evicted undo entry",
			zap.String("command", e.command.Description()),
			zap.Int("max_entries", h.maxEntries))
	}
	for h.redoStack.len() > h.maxEntries {
		h.redoStack.popFront()
	}
}

// Undo reverts the newest undo entry, moves it to the redo stack and
// returns its description.
//
// If the command fails it stays on the undo stack and a *CommandError is
// returned. Undo is refused while a batch is open.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	if len(h.batches) > 0 {
		h.mu.Unlock()
		return "", ErrBatchOpen
	}
	entry, ok := h.undoStack.popBack()
	h.mu.Unlock()
	if !ok {
		return "", ErrNothingToUndo
	}

	if _, err := entry.command.Undo(); err != nil {
		h.mu.Lock()
		h.undoStack.pushBack(entry)
		h.mu.Unlock()
		h.logger.Warn("command failed",
			zap.String("op", OpUndo),
			zap.String("command", entry.command.Description()),
			zap.Error(err))
		return "", newCommandError(OpUndo, entry.command, err)
	}

	h.mu.Lock()
	h.redoStack.pushBack(entry)
	h.trimLocked()
	h.mu.Unlock()
	return entry.command.Description(), nil
}

// Redo re-executes the newest redo entry, moves it back to the undo stack
// and returns its description.
//
// If the command fails it stays on the redo stack and a *CommandError is
// returned. Redo is refused while a batch is open.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	if len(h.batches) > 0 {
		h.mu.Unlock()
		return "", ErrBatchOpen
	}
	entry, ok := h.redoStack.popBack()
	h.mu.Unlock()
	if !ok {
		return "", ErrNothingToRedo
	}

	if _, err := entry.command.Execute(); err != nil {
		h.mu.Lock()
		h.redoStack.pushBack(entry)
		h.mu.Unlock()
		h.logger.Warn("command failed",
			zap.String("op", OpRedo),
			zap.String("command", entry.command.Description()),
			zap.Error(err))
		return "", newCommandError(OpRedo, entry.command, err)
	}

	h.mu.Lock()
	h.undoStack.pushBack(entry)
	h.trimLocked()
	h.mu.Unlock()
	return entry.command.Description(), nil
}

// CanUndo reports whether Undo would find an entry.
// It is false while a batch is open.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undoStack.len() > 0 && len(h.batches) == 0
}

// CanRedo reports whether Redo would find an entry.
// It is false while a batch is open.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redoStack.len() > 0 && len(h.batches) == 0
}

// UndoDescription returns the label of the next undo entry.
func (h *History) UndoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.undoStack.back()
	if !ok {
		return "", false
	}
	return e.command.Description(), true
}

// RedoDescription returns the label of the next redo entry.
func (h *History) RedoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.redoStack.back()
	if !ok {
		return "", false
	}
	return e.command.Description(), true
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undoStack.len()
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redoStack.len()
}

// BeginBatch opens a batch. Commands pushed until the matching EndBatch
// form one undo unit. Batches nest: an inner batch becomes a single member
// of the batch that encloses it.
func (h *History) BeginBatch(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.batches = append(h.batches, &batchFrame{name: name})
}

// EndBatch closes the innermost batch. A batch with members is recorded as
// one entry, or added to the enclosing batch when nested. An empty batch
// records nothing.
func (h *History) EndBatch() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	frame, ok := h.popFrameLocked()
	if !ok {
		return ErrNoBatch
	}
	if len(frame.cmds) == 0 {
		return nil
	}

	batch := NewBatch(frame.name, frame.cmds...)
	if n := len(h.batches); n > 0 {
		parent := h.batches[n-1]
		parent.cmds = append(parent.cmds, batch)
		return nil
	}

	h.recordLocked(batch)
	return nil
}

// CancelBatch closes the innermost batch without recording it.
// Commands already executed in the batch still affect the document.
func (h *History) CancelBatch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.popFrameLocked()
}

// RollbackBatch undoes the members of the innermost batch in reverse order
// and closes it without recording anything.
func (h *History) RollbackBatch() error {
	h.mu.Lock()
	frame, ok := h.popFrameLocked()
	h.mu.Unlock()
	if !ok {
		return ErrNoBatch
	}

	for i := len(frame.cmds) - 1; i >= 0; i-- {
		cmd := frame.cmds[i]
		if _, err := cmd.Undo(); err != nil {
			h.logger.Warn("command failed",
				zap.String("op", OpRollback),
				zap.String("command", cmd.Description()),
				zap.Error(err))
			return newCommandError(OpRollback, cmd, err)
		}
	}
	return nil
}

func (h *History) popFrameLocked() (*batchFrame, bool) {
	n := len(h.batches)
	if n == 0 {
		return nil, false
	}
	frame := h.batches[n-1]
	h.batches[n-1] = nil
	h.batches = h.batches[:n-1]
	return frame, true
}

// InBatch reports whether a batch is open.
func (h *History) InBatch() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches) > 0
}

// BatchDepth returns the number of open batches.
func (h *History) BatchDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches)
}

// Clear removes all undo/redo history and any open batches.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropped += uint64(h.undoStack.len())
	h.undoStack.clear()
	h.redoStack.clear()
	h.batches = nil
}

// UndoInfo returns the undo entries, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return entryInfo(&h.undoStack)
}

// RedoInfo returns the redo entries, oldest first.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return entryInfo(&h.redoStack)
}

func entryInfo(d *deque[*undoEntry]) []EntryInfo {
	result := make([]EntryInfo, d.len())
	for i := range result {
		e := d.at(i)
		result[i] = EntryInfo{
			Description: e.command.Description(),
			Timestamp:   e.timestamp,
		}
	}
	return result
}

// SetMaxEntries changes the capacity of both stacks.
// If a stack is larger, its oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the capacity of each stack.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
