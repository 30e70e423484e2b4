package engine

import "github.com/danieljhkim/propmerge/internal/props"

// MergeResult is the result of a merge operation.
type MergeResult struct {
	Source      string `json:"source"`
	Override    string `json:"override"`
	Destination string `json:"destination"`

	// Entries is the number of entries in the merged output
	Entries int `json:"entries"`

	// Bytes is the size of the merged output
	Bytes int `json:"bytes"`

	// Checksum is the SHA-256 of the merged output
	Checksum string `json:"checksum"`

	// Unchanged is true when the destination already held the merged output
	Unchanged bool `json:"unchanged"`

	// Written is true when the destination was written
	Written bool `json:"written"`

	// Changes describes how the override affected the source
	Changes props.Changes `json:"changes"`

	// UnifiedDiff contains the diff from the current destination (if ShowContent is true)
	UnifiedDiff string `json:"unifiedDiff,omitempty"`

	// Additions is the number of added lines in the diff
	Additions int `json:"additions,omitempty"`

	// Deletions is the number of removed lines in the diff
	Deletions int `json:"deletions,omitempty"`
}

// InspectResult lists the entries parsed from a single file.
type InspectResult struct {
	Path    string        `json:"path"`
	Entries []props.Entry `json:"entries"`
}
