package clipboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyEntry(content string) *Entry {
	return &Entry{
		ID:        "id-" + content,
		UniqueID:  "uid-" + content,
		Timestamp: time.Now(),
		Content:   content,
		TypeLabel: "Text",
	}
}

func TestHistoryAppendAndLatest(t *testing.T) {
	h := NewHistory()
	require.Equal(t, 0, h.Len())
	require.Nil(t, h.Latest())

	a := historyEntry("alpha")
	b := historyEntry("bravo")
	h.Append(a)
	h.Append(b)

	assert.Equal(t, 2, h.Len())
	assert.Same(t, b, h.Latest())
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory()
	h.Append(historyEntry("alpha"))

	snap := h.Snapshot()
	h.Append(historyEntry("bravo"))

	require.Len(t, snap, 1)
	require.Equal(t, 2, h.Len())
}

func TestHistorySubscribeNotifiesOnEveryMutation(t *testing.T) {
	h := NewHistory()

	var calls int
	cancel := h.Subscribe(func() { calls++ })
	defer cancel()

	h.Append(historyEntry("alpha"))
	h.Append(historyEntry("bravo"))
	h.Remove("id-alpha")
	h.Clear()

	assert.Equal(t, 4, calls)
}

func TestHistorySubscribeCancelStopsNotifications(t *testing.T) {
	h := NewHistory()

	var calls int
	cancel := h.Subscribe(func() { calls++ })

	h.Append(historyEntry("alpha"))
	cancel()
	h.Append(historyEntry("bravo"))

	assert.Equal(t, 1, calls)
}

func TestHistoryRemove(t *testing.T) {
	h := NewHistory()
	a := historyEntry("alpha")
	h.Append(a)

	require.True(t, h.Remove(a.ID))
	require.False(t, h.Remove(a.ID))
	assert.Equal(t, 0, h.Len())
}

func TestHistoryRemoveMissingDoesNotNotify(t *testing.T) {
	h := NewHistory()
	h.Append(historyEntry("alpha"))

	var calls int
	cancel := h.Subscribe(func() { calls++ })
	defer cancel()

	h.Remove("no-such-id")
	assert.Equal(t, 0, calls)
}

func TestHistoryReplaceSeedsSequence(t *testing.T) {
	h := NewHistory()

	seed := []*Entry{historyEntry("alpha"), historyEntry("bravo")}
	h.Replace(seed)

	require.Equal(t, 2, h.Len())

	// The history owns its own backing slice.
	seed[0] = historyEntry("mutated")
	assert.Equal(t, "alpha", h.Snapshot()[0].Content)
}
