package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableInput indicates a source or override file cannot be read.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrParse indicates an input could not be decoded or read mid-parse.
	ErrParse = errors.New("parse failure")

	// ErrUnwritableDestination indicates the destination cannot be created or opened for writing.
	ErrUnwritableDestination = errors.New("unwritable destination")

	// ErrWrite indicates an I/O failure while writing the destination.
	ErrWrite = errors.New("write failure")
)

// MergeError labels a failure with its kind, the operation, and the path involved.
type MergeError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Op is the operation that failed, e.g. "read" or "write".
	Op string

	// Path is the file the operation was acting on.
	Path string

	Err error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%v: failed to %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *MergeError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newMergeError(kind error, op, path string, err error) *MergeError {
	return &MergeError{Kind: kind, Op: op, Path: path, Err: err}
}
