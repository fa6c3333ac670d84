// Package pastestack implements the paste stack: an ephemeral FIFO
// queue of clipboard captures staged for sequential pasting. A session
// watches the live history sequence while active and accumulates each
// newly captured entry exactly once.
package pastestack

import (
	"log/slog"
	"sync"

	"github.com/MisterMaroki/Superclip-sub001/internal/clipboard"
)

// LiveHistory is the session's view of the history source's live,
// ordered sequence.
type LiveHistory interface {
	Len() int
	Latest() *clipboard.Entry
	Subscribe(fn func()) (cancel func())
}

// Committer writes an entry back to the system clipboard.
type Committer interface {
	CommitToClipboard(entry *clipboard.Entry) error
}

// Session is the paste-stack state machine: Idle until Start, Active
// until End. Queue mutations from the history subscription and from
// user operations are serialized by a single mutex.
type Session struct {
	history   LiveHistory
	committer Committer
	logger    *slog.Logger

	mu      sync.Mutex
	active  bool
	lastLen int
	queue   []*clipboard.Entry
	cancel  func()
}

func NewSession(history LiveHistory, committer Committer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		history:   history,
		committer: committer,
		logger:    logger.With("component", "pastestack"),
	}
}

// Start activates the session: the queue is cleared, the current live
// history length is recorded as the baseline, and subsequent captures
// start accumulating. Starting an already-active session restarts it.
func (s *Session) Start() {
	s.End()

	baseline := s.history.Len()

	s.mu.Lock()
	s.queue = nil
	s.lastLen = baseline
	s.active = true
	s.mu.Unlock()

	cancel := s.history.Subscribe(s.onHistoryUpdate)

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Debug("paste stack session started", "baseline", baseline)
}

// End deactivates the session. After End returns no further queue
// mutation can come from the history subscription. Queue contents are
// left as-is; callers clear explicitly if they want an empty stack.
func (s *Session) End() {
	s.mu.Lock()
	wasActive := s.active
	cancel := s.cancel
	s.cancel = nil
	s.active = false
	s.mu.Unlock()

	// Cancel outside the mutex: the subscription callback takes it.
	if cancel != nil {
		cancel()
	}
	if wasActive {
		s.logger.Debug("paste stack session ended")
	}
}

// Active reports whether the session is currently observing captures.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// onHistoryUpdate runs on the history source's notification context.
// Only growth relative to the last observed length appends, and only
// when the newest entry's unique identifier is not already queued, so
// duplicate delivery and external shrinking cannot corrupt the queue.
func (s *Session) onHistoryUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	n := s.history.Len()
	if n > s.lastLen {
		if entry := s.history.Latest(); entry != nil && !s.containsLocked(entry.UniqueID) {
			s.queue = append(s.queue, entry)
		}
	}
	s.lastLen = n
}

func (s *Session) containsLocked(uniqueID string) bool {
	for _, e := range s.queue {
		if e.UniqueID == uniqueID {
			return true
		}
	}
	return false
}

// Remove deletes the queued entry with the given in-memory ID. No-op
// if the entry is not queued.
func (s *Session) Remove(entry *clipboard.Entry) {
	if entry == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.queue {
		if e.ID == entry.ID {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Clear empties the queue unconditionally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
}

// PopNext removes and returns the head of the queue, or nil when the
// queue is empty.
func (s *Session) PopNext() *clipboard.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	return head
}

// Items returns a copy of the queue in paste order.
func (s *Session) Items() []*clipboard.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*clipboard.Entry, len(s.queue))
	copy(out, s.queue)
	return out
}

// CopyToClipboard forwards entry to the history source's clipboard
// commit. The queue is not touched.
func (s *Session) CopyToClipboard(entry *clipboard.Entry) error {
	return s.committer.CommitToClipboard(entry)
}

// AdvanceAfterPaste drops the head (the item just pasted) and, if
// another item now leads the queue, commits it to the system clipboard
// so the next paste gesture finds it staged. No-op on an empty queue.
func (s *Session) AdvanceAfterPaste() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}
	s.queue = s.queue[1:]
	var next *clipboard.Entry
	if len(s.queue) > 0 {
		next = s.queue[0]
	}
	s.mu.Unlock()

	if next == nil {
		return
	}
	if err := s.committer.CommitToClipboard(next); err != nil {
		s.logger.Error("failed to stage next paste stack item", "error", err)
	}
}
