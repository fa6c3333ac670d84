package clipboard

import (
	"sync"
)

// History is the live, ordered sequence of captured entries. The
// monitor appends to it; the paste stack and persistence layers
// observe it through subscriptions and snapshots.
//
// Subscriber callbacks run synchronously on the goroutine that
// mutated the history, so a single producer gives subscribers a
// single consistent execution context.
type History struct {
	mu      sync.RWMutex
	entries []*Entry

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

func NewHistory() *History {
	return &History{
		subs: make(map[int]func()),
	}
}

// Append adds an entry to the end of the sequence and notifies subscribers.
func (h *History) Append(entry *Entry) {
	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()

	h.notify()
}

// Replace swaps the whole sequence, used when seeding from a loaded
// snapshot at startup. Subscribers are notified once.
func (h *History) Replace(entries []*Entry) {
	h.mu.Lock()
	h.entries = append([]*Entry(nil), entries...)
	h.mu.Unlock()

	h.notify()
}

// Remove deletes the entry with the given in-memory ID, if present.
func (h *History) Remove(id string) bool {
	h.mu.Lock()
	removed := false
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			removed = true
			break
		}
	}
	h.mu.Unlock()

	if removed {
		h.notify()
	}
	return removed
}

// Clear empties the sequence and notifies subscribers.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()

	h.notify()
}

// Len returns the current length of the sequence.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Latest returns the most recently appended entry, or nil when empty.
func (h *History) Latest() *Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[len(h.entries)-1]
}

// Snapshot returns a copy of the sequence, safe to hand to the
// persistence or search layers without further locking.
func (h *History) Snapshot() []*Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Subscribe registers a callback invoked after every mutation. The
// returned cancel function deterministically unregisters it: once
// cancel returns, the callback will not be invoked again, and any
// in-flight invocation has completed. Callbacks must not call
// Subscribe or cancel from within themselves.
func (h *History) Subscribe(fn func()) (cancel func()) {
	h.subMu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		delete(h.subs, id)
		h.subMu.Unlock()
	}
}

// notify invokes subscribers while holding subMu, so a concurrent
// cancel cannot return while its callback is still running.
func (h *History) notify() {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	for _, fn := range h.subs {
		fn()
	}
}
