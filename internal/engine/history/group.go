package history

import "go.uber.org/zap"

// Transaction runs fn inside a batch.
// If fn returns an error, every command it pushed is undone and the error is
// returned. Otherwise the batch is recorded as one entry. If fn panics the
// batch is rolled back before the panic continues.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginBatch(name)

	returned := false
	defer func() {
		if returned {
			return
		}
		if err := h.RollbackBatch(); err != nil {
			h.logger.Error("rollback after panic failed",
				zap.String("batch", name),
				zap.Error(err))
		}
	}()

	err := fn()
	returned = true
	if err != nil {
		if rbErr := h.RollbackBatch(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return h.EndBatch()
}

// Checkpoint marks a position in the undo history.
// The zero Checkpoint is the empty history.
type Checkpoint struct {
	top     uint64 // seq of the newest undo entry, 0 when there was none
	dropped uint64
}

// CreateCheckpoint records the current position in the history.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	cp := Checkpoint{dropped: h.dropped}
	if e, ok := h.undoStack.back(); ok {
		cp.top = e.seq
	}
	return cp
}

// UndoToCheckpoint undoes entries until the newest undo entry is the one that
// was newest when cp was created.
//
// It returns ErrCheckpointLost without changing anything when that entry was
// evicted or discarded by a new push after an undo. When cp lies ahead of the
// current position there is nothing to undo and nil is returned.
func (h *History) UndoToCheckpoint(cp Checkpoint) error {
	h.mu.Lock()
	n, err := h.undoDistanceLocked(cp)
	h.mu.Unlock()
	if err != nil {
		return err
	}

	for ; n > 0; n-- {
		if _, err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) undoDistanceLocked(cp Checkpoint) (int, error) {
	if len(h.batches) > 0 {
		return 0, ErrBatchOpen
	}

	size := h.undoStack.len()
	if cp.top == 0 {
		if h.dropped != cp.dropped {
			return 0, ErrCheckpointLost
		}
		return size, nil
	}
	for i := size - 1; i >= 0; i-- {
		if h.undoStack.at(i).seq == cp.top {
			return size - 1 - i, nil
		}
	}
	if h.redoIndexLocked(cp.top) >= 0 {
		return 0, nil
	}
	return 0, ErrCheckpointLost
}

// RedoToCheckpoint redoes entries until the newest undo entry is the one that
// was newest when cp was created.
//
// When cp lies behind the current position there is nothing to redo and nil
// is returned. ErrCheckpointLost is returned when cp is in neither stack.
func (h *History) RedoToCheckpoint(cp Checkpoint) error {
	h.mu.Lock()
	n, err := h.redoDistanceLocked(cp)
	h.mu.Unlock()
	if err != nil {
		return err
	}

	for ; n > 0; n-- {
		if _, err := h.Redo(); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) redoDistanceLocked(cp Checkpoint) (int, error) {
	if len(h.batches) > 0 {
		return 0, ErrBatchOpen
	}
	if cp.top == 0 {
		return 0, nil
	}
	if i := h.redoIndexLocked(cp.top); i >= 0 {
		return h.redoStack.len() - i, nil
	}
	for i := h.undoStack.len() - 1; i >= 0; i-- {
		if h.undoStack.at(i).seq == cp.top {
			return 0, nil
		}
	}
	return 0, ErrCheckpointLost
}

// redoIndexLocked returns the position of seq in the redo stack, or -1.
func (h *History) redoIndexLocked(seq uint64) int {
	for i := 0; i < h.redoStack.len(); i++ {
		if h.redoStack.at(i).seq == seq {
			return i
		}
	}
	return -1
}
