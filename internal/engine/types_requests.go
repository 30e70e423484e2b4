package engine

import "os"

// MergeRequest represents a request to merge an override file into a source file.
// It is passed by value and never modified by the engine.
type MergeRequest struct {
	// Source is the base properties file
	Source string

	// Override is the file whose values win on key collisions
	Override string

	// Destination is where the merged result is written
	Destination string

	// FileMode is the permission used when the destination is created
	FileMode os.FileMode

	// Atomic writes through a temp file + rename instead of truncating in place
	Atomic bool

	// CreateDirs creates missing parent directories of the destination
	CreateDirs bool

	// DryRun performs the merge without touching the destination
	DryRun bool

	// ShowContent populates the unified diff against the current destination
	ShowContent bool
}
