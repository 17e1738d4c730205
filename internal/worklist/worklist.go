// Package worklist holds the in-memory set of media items queued for
// transcription and tracks the single allowed active run.
package worklist

import (
	"errors"
	"sync"

	"video-to-transcript/internal/domain"
)

// ErrRunAlreadyActive is returned when starting a second active run.
var ErrRunAlreadyActive = errors.New("transcription run already active")

// ErrNoActiveRun is returned when cancel is requested while idle.
var ErrNoActiveRun = errors.New("no active transcription run")

// ErrNotInWorklist is returned when an operation names an unknown item.
var ErrNotInWorklist = errors.New("file not in worklist")

// Worklist is a path-keyed ordered index of items. One model instance is
// shared across runs, so at most one run may be active at a time; Begin and
// End guard that invariant and carry the run's cancel function.
type Worklist struct {
	mu     sync.RWMutex
	items  map[domain.Key]*domain.VideoItem
	order  []domain.Key
	cancel func()
}

// New creates an empty worklist.
func New() *Worklist {
	return &Worklist{
		items: make(map[domain.Key]*domain.VideoItem),
	}
}

// Add registers a path, preserving insertion order. Re-adding an existing
// path returns the item already held, transcript intact.
func (w *Worklist) Add(path string) *domain.VideoItem {
	key := domain.KeyFor(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if item, ok := w.items[key]; ok {
		return item
	}
	item := domain.NewVideoItem(string(key))
	w.items[key] = item
	w.order = append(w.order, key)
	return item
}

// Remove drops a path from the worklist.
func (w *Worklist) Remove(path string) error {
	key := domain.KeyFor(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.items[key]; !ok {
		return ErrNotInWorklist
	}
	delete(w.items, key)
	for i, k := range w.order {
		if k == key {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get looks up an item by path.
func (w *Worklist) Get(path string) (*domain.VideoItem, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	item, ok := w.items[domain.KeyFor(path)]
	return item, ok
}

// Items returns the items in insertion order.
func (w *Worklist) Items() []*domain.VideoItem {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*domain.VideoItem, 0, len(w.order))
	for _, key := range w.order {
		out = append(out, w.items[key])
	}
	return out
}

// Len reports the number of items held.
func (w *Worklist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

// Begin claims the single active-run slot, storing the run's cancel
// function for a later Cancel call.
func (w *Worklist) Begin(cancel func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrRunAlreadyActive
	}
	w.cancel = cancel
	return nil
}

// End releases the active-run slot. Safe to call when idle.
func (w *Worklist) End() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancel = nil
}

// Cancel requests cancellation of the active run. The slot stays claimed
// until the run observes the request and calls End.
func (w *Worklist) Cancel() error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.cancel == nil {
		return ErrNoActiveRun
	}
	w.cancel()
	return nil
}

// IsRunning reports whether a run currently holds the active slot.
func (w *Worklist) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cancel != nil
}
