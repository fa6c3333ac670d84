package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.design/x/clipboard"

	"github.com/MisterMaroki/Superclip-sub001/internal/config"
	"github.com/MisterMaroki/Superclip-sub001/internal/util"
)

// Monitor is the history source: it polls the system clipboard and
// appends each new capture to the live History sequence. It also
// provides the commit side effect that writes an entry back to the
// system clipboard.
type Monitor struct {
	history   *History
	config    *config.Config
	logger    *slog.Logger
	lastHash  string
	eventChan chan MonitorEvent

	// isRunning is read by the poll goroutine and written by
	// Start/Stop on the caller's goroutine.
	isRunning atomic.Bool
}

func NewMonitor(history *History, cfg *config.Config, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		history:   history,
		config:    cfg,
		logger:    logger.With("component", "monitor"),
		eventChan: make(chan MonitorEvent, 100),
	}
}

func (m *Monitor) Start(ctx context.Context) error {
	if m.isRunning.Load() {
		return fmt.Errorf("monitor is already running")
	}

	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	m.isRunning.Store(true)
	m.logger.Info("clipboard monitor started", "interval_ms", m.config.MonitorInterval)

	go m.monitorLoop(ctx)

	return nil
}

func (m *Monitor) Stop() {
	if !m.isRunning.Swap(false) {
		return
	}
	m.logger.Info("clipboard monitor stopped")
}

func (m *Monitor) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(m.config.MonitorInterval) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkClipboard()
		}
	}
}

func (m *Monitor) checkClipboard() {
	if !m.isRunning.Load() {
		return
	}

	textData := clipboard.Read(clipboard.FmtText)
	if len(textData) == 0 {
		return
	}

	m.processCapture(string(textData))
}

func (m *Monitor) processCapture(content string) {
	if len(content) > m.config.MaxItemSize {
		m.logger.Warn("clipboard item too large", "size", len(content), "max", m.config.MaxItemSize)
		return
	}

	typeLabel, fileURLs := classify(content)
	hash := util.ContentHash(content, fileURLs)

	// Skip if same as the last capture.
	if hash == m.lastHash {
		return
	}
	m.lastHash = hash

	entry := &Entry{
		ID:        uuid.NewString(),
		UniqueID:  hash,
		Timestamp: time.Now(),
		Content:   content,
		TypeLabel: typeLabel,
		FileURLs:  fileURLs,
	}

	m.history.Append(entry)

	select {
	case m.eventChan <- MonitorEvent{Type: "new_item", Entry: entry}:
	default:
	}

	m.logger.Debug("captured clipboard item", "type", typeLabel, "size", len(content))
}

// classify derives a human-readable type label for the payload, plus
// file paths when the payload is a list of file references.
func classify(content string) (string, []string) {
	trimmed := strings.TrimSpace(content)

	if isFileList(trimmed) {
		var urls []string
		for _, line := range strings.Split(trimmed, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				urls = append(urls, strings.TrimPrefix(line, "file://"))
			}
		}
		return "File", urls
	}

	if isURL(trimmed) {
		return "Link", nil
	}

	return "Text", nil
}

func isURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isFileList(s string) bool {
	if s == "" {
		return false
	}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "file://") && !strings.HasPrefix(line, "/") {
			return false
		}
	}
	return strings.HasPrefix(s, "file://") || strings.HasPrefix(s, "/")
}

// CommitToClipboard writes an entry's content back to the system
// clipboard, e.g. when the user picks an item from history or the
// paste stack advances. The capture hash is updated so the committed
// content is not re-captured as a new item.
func (m *Monitor) CommitToClipboard(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cannot commit nil entry")
	}

	clipboard.Write(clipboard.FmtText, []byte(entry.Content))
	m.lastHash = entry.UniqueID

	m.logger.Debug("committed entry to clipboard", "type", entry.TypeLabel)
	return nil
}

func (m *Monitor) EventChannel() <-chan MonitorEvent {
	return m.eventChan
}
