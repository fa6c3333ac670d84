package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MisterMaroki/Superclip-sub001/internal/clipboard"
)

// DefaultDebounce is the quiet period a burst of ScheduleSave calls
// must outlast before the pending snapshot is flushed to disk.
const DefaultDebounce = 1500 * time.Millisecond

const snapshotVersion = 1

// snapshot is the on-disk envelope for the persisted history document.
type snapshot struct {
	Version int                `json:"version"`
	SavedAt time.Time          `json:"saved_at"`
	Entries []*clipboard.Entry `json:"entries"`
}

// Store persists the clipboard history as a single JSON document,
// coalescing bursts of save requests into one write per quiet period.
//
// The pending slot is a single-slot mailbox: a newer snapshot always
// replaces an unflushed older one, so only the latest state ever
// reaches disk.
type Store struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending []byte
	gen     uint64
	timer   *time.Timer
}

// New creates a store writing to path. A non-positive debounce falls
// back to DefaultDebounce.
func New(path string, debounce time.Duration, logger *slog.Logger) *Store {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:     path,
		debounce: debounce,
		logger:   logger.With("component", "store"),
	}
}

// Load reads the persisted history document. A missing document is not
// an error and yields an empty sequence. A document that fails to
// decode is logged, copied aside to <path>.corrupt, and an empty
// sequence is returned; the original file is left untouched.
func (s *Store) Load() []*clipboard.Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("failed to read history file", "path", s.path, "error", err)
		}
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Error("failed to decode history file, starting empty", "path", s.path, "error", err)
		s.backupCorrupt(data)
		return nil
	}

	return snap.Entries
}

// backupCorrupt copies unreadable document bytes aside so a corrupt
// file is recoverable by hand. Best effort only.
func (s *Store) backupCorrupt(data []byte) {
	backup := s.path + ".corrupt"
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		s.logger.Warn("failed to back up corrupt history file", "path", backup, "error", err)
		return
	}
	s.logger.Info("backed up corrupt history file", "path", backup)
}

// ScheduleSave captures an encoded copy of entries, replaces any
// pending unflushed snapshot with it, and restarts the debounce timer.
// It never blocks on I/O; encode failures are logged and dropped.
func (s *Store) ScheduleSave(entries []*clipboard.Entry) {
	data, err := s.encode(entries)
	if err != nil {
		s.logger.Error("failed to encode history snapshot", "error", err)
		return
	}

	s.mu.Lock()
	s.pending = data
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.flush(gen) })
	s.mu.Unlock()
}

// flush runs on the timer goroutine once the quiet period elapses. A
// fired timer that lost the race with a newer ScheduleSave carries a
// stale generation and gives way to the newer timer, so the fresh
// snapshot still waits out its full quiet period. The lock covers only
// the take-and-clear.
func (s *Store) flush(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	data := s.pending
	s.pending = nil
	s.mu.Unlock()

	if data == nil {
		return
	}

	if err := s.writeAtomic(data); err != nil {
		s.logger.Error("failed to write history file", "path", s.path, "error", err)
		return
	}
	s.logger.Debug("history flushed", "path", s.path, "bytes", len(data))
}

// SaveImmediately bypasses the debounce and writes entries
// synchronously. Any pending debounced snapshot is discarded so an
// older state cannot overwrite this one after we return. Reserved for
// shutdown.
func (s *Store) SaveImmediately(entries []*clipboard.Entry) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.gen++
	s.mu.Unlock()

	data, err := s.encode(entries)
	if err != nil {
		s.logger.Error("failed to encode history snapshot", "error", err)
		return
	}
	if err := s.writeAtomic(data); err != nil {
		s.logger.Error("failed to write history file", "path", s.path, "error", err)
	}
}

// DeleteHistoryFile removes the persisted document. A missing document
// is not an error. Any pending in-memory snapshot is unaffected.
func (s *Store) DeleteHistoryFile() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete history file: %w", err)
	}
	return nil
}

func (s *Store) encode(entries []*clipboard.Entry) ([]byte, error) {
	if entries == nil {
		entries = []*clipboard.Entry{}
	}
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now(),
		Entries: entries,
	})
}

// writeAtomic replaces the document via temp file + rename so a reader
// never observes a half-written document.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
