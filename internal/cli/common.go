package cli

import (
	"encoding/json"
	"io"

	"github.com/danieljhkim/propmerge/internal/engine"
	"github.com/danieljhkim/propmerge/internal/fsops"
	"github.com/danieljhkim/propmerge/internal/hash"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher())
}

// newMergeRequest builds a request for the three positional paths using the
// resolved configuration.
func newMergeRequest(args []string) engine.MergeRequest {
	return engine.MergeRequest{
		Source:      args[0],
		Override:    args[1],
		Destination: args[2],
		FileMode:    activeConfig.FileMode,
		Atomic:      activeConfig.Atomic,
		CreateDirs:  activeConfig.CreateDirs,
	}
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
