package clipboard

import (
	"time"
)

// SourceApp describes the application a clipboard entry was captured from.
type SourceApp struct {
	Name     string `json:"name"`
	BundleID string `json:"bundle_id,omitempty"`
}

// Link holds metadata for entries that represent a link preview.
type Link struct {
	Title string `json:"title,omitempty"`
}

// Entry is a single captured clipboard event.
//
// ID identifies this in-memory instance and may differ after a
// save/load cycle. UniqueID is derived from the content and is the
// only valid basis for "same entry" comparisons.
type Entry struct {
	ID        string     `json:"id"`
	UniqueID  string     `json:"unique_id"`
	Timestamp time.Time  `json:"timestamp"`
	Content   string     `json:"content"`
	SourceApp *SourceApp `json:"source_app,omitempty"`
	TypeLabel string     `json:"type_label"`
	FileURLs  []string   `json:"file_urls,omitempty"`
	Link      *Link      `json:"link,omitempty"`
}

// MonitorEvent is emitted by the Monitor for each capture or error.
type MonitorEvent struct {
	Type  string
	Entry *Entry
	Error error
}
