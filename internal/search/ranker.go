// Package search ranks clipboard history entries against a free-text
// query. Ranking is pure: it takes a snapshot, returns an ordering,
// and keeps no state between calls.
package search

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/MisterMaroki/Superclip-sub001/internal/clipboard"
)

// Field weights. Content dominates because it is the primary payload;
// file names and link titles rank above app identity because they are
// more specific finds. The bundle identifier's trailing component is a
// weaker fallback for the app name.
const (
	weightContent    = 10
	weightLinkTitle  = 8
	weightFileName   = 7
	weightAppName    = 6
	weightBundleName = 5
	weightTypeLabel  = 4
)

// Match-tier multipliers, applied to the field weight.
const (
	tierExact     = 100
	tierPrefix    = 80
	tierBoundary  = 70
	tierSubstring = 60
	tierFuzzy     = 40
)

type rankedResult struct {
	entry *clipboard.Entry
	score int
}

// Search returns the entries matching query, ordered by descending
// relevance with ties broken by most recent timestamp. An empty (or
// whitespace-only) query returns the input unchanged, preserving its
// original order.
func Search(query string, entries []*clipboard.Entry) []*clipboard.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	ranked := make([]rankedResult, 0, len(entries))
	for _, entry := range entries {
		if score := scoreEntry(q, entry); score > 0 {
			ranked = append(ranked, rankedResult{entry: entry, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.Timestamp.After(ranked[j].entry.Timestamp)
	})

	out := make([]*clipboard.Entry, len(ranked))
	for i, r := range ranked {
		out[i] = r.entry
	}
	return out
}

// scoreEntry takes the best score across all scorable fields of entry.
func scoreEntry(query string, entry *clipboard.Entry) int {
	best := scoreField(query, entry.Content, weightContent)

	if entry.SourceApp != nil {
		if s := scoreField(query, entry.SourceApp.Name, weightAppName); s > best {
			best = s
		}
		if name := bundleTail(entry.SourceApp.BundleID); name != "" {
			if s := scoreField(query, name, weightBundleName); s > best {
				best = s
			}
		}
	}

	if s := scoreField(query, entry.TypeLabel, weightTypeLabel); s > best {
		best = s
	}

	for _, url := range entry.FileURLs {
		if s := scoreField(query, filepath.Base(url), weightFileName); s > best {
			best = s
		}
	}

	if entry.Link != nil {
		if s := scoreField(query, entry.Link.Title, weightLinkTitle); s > best {
			best = s
		}
	}

	return best
}

// bundleTail extracts the last dot-separated component of a bundle
// identifier, e.g. "com.apple.Safari" -> "safari".
func bundleTail(bundleID string) string {
	if bundleID == "" {
		return ""
	}
	parts := strings.Split(bundleID, ".")
	return parts[len(parts)-1]
}

// scoreField scores one field against an already-normalized query.
// Tiers, strongest first: exact match, prefix, word/path boundary,
// any-position substring, then in-order subsequence scaled by how
// compact the matched span is.
func scoreField(query, field string, weight int) int {
	f := strings.ToLower(field)
	if f == "" {
		return 0
	}

	if f == query {
		return tierExact * weight
	}

	if idx := strings.Index(f, query); idx >= 0 {
		if idx == 0 {
			return tierPrefix * weight
		}
		// The boundary tier applies if any occurrence follows a
		// boundary byte, not just the first one.
		for idx > 0 {
			if isBoundary(f[idx-1]) {
				return tierBoundary * weight
			}
			off := strings.Index(f[idx+1:], query)
			if off < 0 {
				break
			}
			idx += 1 + off
		}
		return tierSubstring * weight
	}

	compactness, ok := subsequenceCompactness(query, f)
	if !ok {
		return 0
	}
	return int(float64(tierFuzzy*weight) * compactness)
}

func isBoundary(c byte) bool {
	return c == ' ' || c == '.' || c == '/'
}

// subsequenceCompactness reports whether every query character appears
// in field in order, and how tightly packed the first greedy
// left-to-right match is: queryLen / max(span, queryLen), where span
// is the inclusive distance from the first to the last matched
// character. Single-character queries are maximally compact.
func subsequenceCompactness(query, field string) (float64, bool) {
	qr := []rune(query)
	fr := []rune(field)

	first, last := -1, -1
	qi := 0
	for fi := 0; fi < len(fr) && qi < len(qr); fi++ {
		if fr[fi] == qr[qi] {
			if first == -1 {
				first = fi
			}
			last = fi
			qi++
		}
	}
	if qi < len(qr) {
		return 0, false
	}

	if len(qr) <= 1 {
		return 1.0, true
	}

	span := last - first + 1
	if span < len(qr) {
		span = len(qr)
	}
	return float64(len(qr)) / float64(span), true
}
