package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MisterMaroki/Superclip-sub001/internal/clipboard"
)

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func entry(content string, opts ...func(*clipboard.Entry)) *clipboard.Entry {
	e := &clipboard.Entry{
		ID:        "id-" + content,
		UniqueID:  "uid-" + content,
		Timestamp: baseTime,
		Content:   content,
		TypeLabel: "Text",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func withApp(name, bundleID string) func(*clipboard.Entry) {
	return func(e *clipboard.Entry) {
		e.SourceApp = &clipboard.SourceApp{Name: name, BundleID: bundleID}
	}
}

func withTime(ts time.Time) func(*clipboard.Entry) {
	return func(e *clipboard.Entry) { e.Timestamp = ts }
}

func withFiles(urls ...string) func(*clipboard.Entry) {
	return func(e *clipboard.Entry) {
		e.FileURLs = urls
		e.TypeLabel = "File"
	}
}

func withLink(title string) func(*clipboard.Entry) {
	return func(e *clipboard.Entry) {
		e.Link = &clipboard.Link{Title: title}
		e.TypeLabel = "Link"
	}
}

func TestSearchEmptyQueryReturnsInputUnchanged(t *testing.T) {
	entries := []*clipboard.Entry{entry("bravo"), entry("alpha"), entry("charlie")}

	got := Search("", entries)
	require.Equal(t, entries, got)

	got = Search("   ", entries)
	require.Equal(t, entries, got)
}

func TestSearchDropsNonMatches(t *testing.T) {
	entries := []*clipboard.Entry{entry("hello world"), entry("zzz")}

	got := Search("hello", entries)
	require.Len(t, got, 1)
	assert.Equal(t, "hello world", got[0].Content)
}

func TestSearchExactContentBeatsAppNameMatch(t *testing.T) {
	contentMatch := entry("safari")
	appMatch := entry("some text", withApp("Safari", "com.apple.Safari"))

	got := Search("safari", []*clipboard.Entry{appMatch, contentMatch})
	require.Len(t, got, 2)
	assert.Same(t, contentMatch, got[0])
	assert.Same(t, appMatch, got[1])
}

func TestSearchSubstringBeatsFuzzy(t *testing.T) {
	substring := scoreField("clip", "Superclip", weightContent)
	fuzzy := scoreField("scl", "Superclip", weightContent)

	require.Greater(t, substring, 0)
	require.Greater(t, fuzzy, 0)
	assert.Greater(t, substring, fuzzy)
}

func TestScoreFieldTiers(t *testing.T) {
	w := weightContent

	assert.Equal(t, tierExact*w, scoreField("superclip", "Superclip", w))
	assert.Equal(t, tierPrefix*w, scoreField("super", "Superclip", w))
	assert.Equal(t, tierBoundary*w, scoreField("clip", "super clip", w))
	assert.Equal(t, tierBoundary*w, scoreField("clip", "super.clip", w))
	assert.Equal(t, tierBoundary*w, scoreField("clip", "super/clip", w))
	assert.Equal(t, tierSubstring*w, scoreField("clip", "superclipper", w))
	assert.Equal(t, 0, scoreField("xyz", "Superclip", w))
}

func TestScoreFieldBoundaryOnLaterOccurrence(t *testing.T) {
	w := weightContent

	// The first occurrence is mid-word, but a later one sits after a
	// boundary; the field still earns the boundary tier.
	assert.Equal(t, tierBoundary*w, scoreField("cab", "supercab cab", w))
	assert.Equal(t, tierBoundary*w, scoreField("cab", "supercab.cab", w))
	assert.Equal(t, tierBoundary*w, scoreField("cab", "supercab/cab extra", w))

	// No occurrence after a boundary stays at the substring tier.
	assert.Equal(t, tierSubstring*w, scoreField("cab", "supercab vocabulary", w))
}

func TestScoreFieldFuzzyCompactness(t *testing.T) {
	w := weightContent

	// "scl" matches S..c.l in "superclip": span 7, compactness 3/7.
	want := int(float64(tierFuzzy*w) * 3.0 / 7.0)
	assert.Equal(t, want, scoreField("scl", "superclip", w))

	// A single-character query is maximally compact.
	c, ok := subsequenceCompactness("a", "xay")
	require.True(t, ok)
	assert.Equal(t, 1.0, c)

	// "ac" against "a c": span 3 from the greedy match, compactness 2/3.
	want = int(float64(tierFuzzy*w) * 2.0 / 3.0)
	assert.Equal(t, want, scoreField("ac", "a c", w))
}

func TestSearchFileNameMatch(t *testing.T) {
	fileEntry := entry("/tmp/report.pdf", withFiles("/tmp/report.pdf"))
	other := entry("unrelated")

	got := Search("report", []*clipboard.Entry{other, fileEntry})
	require.Len(t, got, 1)
	assert.Same(t, fileEntry, got[0])
}

func TestSearchLinkTitleOutweighsAppName(t *testing.T) {
	linkEntry := entry("https://example.com", withLink("Notes"))
	appEntry := entry("something", withApp("Notes", "com.apple.Notes"))

	got := Search("notes", []*clipboard.Entry{appEntry, linkEntry})
	require.Len(t, got, 2)
	// Both match exactly; link title (weight 8) outranks app name (weight 6).
	assert.Same(t, linkEntry, got[0])
}

func TestSearchBundleTailIsFallbackSignal(t *testing.T) {
	bundleOnly := entry("something", withApp("", "org.mozilla.firefox"))

	got := Search("firefox", []*clipboard.Entry{bundleOnly})
	require.Len(t, got, 1)

	// Exact match on the bundle tail, at bundle weight.
	assert.Equal(t, tierExact*weightBundleName, scoreEntry("firefox", bundleOnly))
}

func TestSearchTimestampBreaksTies(t *testing.T) {
	older := entry("golang", withTime(baseTime))
	newer := entry("golang", withTime(baseTime.Add(time.Hour)))
	newer.ID = "id-newer"
	newer.UniqueID = "uid-newer"

	got := Search("golang", []*clipboard.Entry{older, newer})
	require.Len(t, got, 2)
	assert.Same(t, newer, got[0])
	assert.Same(t, older, got[1])
}

func TestSearchQueryIsNormalized(t *testing.T) {
	e := entry("Hello World")

	got := Search("  HELLO  ", []*clipboard.Entry{e})
	require.Len(t, got, 1)
}

func TestBundleTail(t *testing.T) {
	assert.Equal(t, "Safari", bundleTail("com.apple.Safari"))
	assert.Equal(t, "standalone", bundleTail("standalone"))
	assert.Equal(t, "", bundleTail(""))
}
