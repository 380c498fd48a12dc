package domain

import (
	"encoding/json"
	"time"
)

// MaxRecentFiles caps the recent-files list.
const MaxRecentFiles = 20

// RecentFile is one entry in the recently-opened list, newest first.
type RecentFile struct {
	// Path is the file location and the deduplication key.
	Path string `json:"path"`

	// Name is the display name.
	Name string `json:"name"`

	// OpenedAt is when the file was last opened.
	OpenedAt time.Time `json:"openedAt"`
}

// FileTreeSnapshot is an opaque serialized view of the case file tree,
// kept so navigation UI can restore its expansion state. The core
// never interprets Tree beyond round-tripping it.
type FileTreeSnapshot struct {
	// Tree is the serialized tree, JSON produced by the navigation UI.
	Tree json.RawMessage `json:"tree"`

	// CapturedAt is when the snapshot was taken.
	CapturedAt time.Time `json:"capturedAt"`
}
