// Package engine runs propmerge operations on files.
//
// The engine is the glue between the CLI and the props package. It validates
// the three paths of a merge, reads and parses the inputs, merges them, and
// writes the result. It keeps no state between calls: every operation takes
// an immutable request and returns a result or a labeled *MergeError.
//
// Key components:
//   - Engine: holds the filesystem and hasher dependencies
//   - Merge: validate, parse, merge, serialize, write
//   - Inspect: parse a single file for display
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/danieljhkim/propmerge/internal/fsops"
	"github.com/danieljhkim/propmerge/internal/hash"
	"github.com/danieljhkim/propmerge/internal/logging"
	"github.com/danieljhkim/propmerge/internal/props"
)

// defaultFileMode applies when a request leaves FileMode unset.
const defaultFileMode os.FileMode = 0644

// Engine orchestrates all propmerge operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, hasher hash.Hasher) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
	}
}

// Merge merges req.Override into req.Source and writes the result to
// req.Destination.
//
// Nothing is parsed until all paths validate. A parse failure in either input
// aborts before the destination is written, and a destination that did not
// exist before the call is removed again. A failure while writing may
// leave a partially written destination unless req.Atomic is set.
func (e *Engine) Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	logger := logging.From(ctx).With(
		zap.String("source", req.Source),
		zap.String("override", req.Override),
		zap.String("destination", req.Destination),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A destination created during validation is removed again if the merge
	// stops before writing it.
	existed, err := e.fs.Exists(req.Destination)
	if err != nil {
		existed = true
	}

	if err := e.validate(req); err != nil {
		return nil, err
	}
	logger.Debug("validated paths", zap.Bool("dryRun", req.DryRun))

	base, override, err := e.loadInputs(ctx, req)
	if err != nil {
		if !existed && !req.DryRun {
			e.discardDestination(req.Destination, logger)
		}
		return nil, err
	}
	logger.Debug("parsed inputs", zap.Int("sourceEntries", base.Len()), zap.Int("overrideEntries", override.Len()))

	merged := props.Merge(base, override)
	data := merged.Encode()

	result := &MergeResult{
		Source:      req.Source,
		Override:    req.Override,
		Destination: req.Destination,
		Entries:     merged.Len(),
		Bytes:       len(data),
		Checksum:    e.hasher.HashBytes(data),
		Changes:     props.Diff(base, override),
	}

	current, exists, err := e.destinationChecksum(req.Destination)
	if err != nil {
		logger.Warn("could not read current destination", zap.Error(err))
	}
	result.Unchanged = exists && err == nil && current == result.Checksum

	if req.ShowContent {
		e.populateDiff(result, req.Destination, data, logger)
	}

	if req.DryRun {
		logger.Info("dry run complete", zap.Int("entries", result.Entries), zap.Bool("unchanged", result.Unchanged))
		return result, nil
	}

	if err := e.write(req, data); err != nil {
		return nil, err
	}
	result.Written = true

	logger.Info("merged properties",
		zap.Int("entries", result.Entries),
		zap.Int("overridden", len(result.Changes.Overridden)),
		zap.Int("added", len(result.Changes.Added)),
		zap.Int("bytes", result.Bytes),
	)

	return result, nil
}

// Inspect parses a single properties file.
func (e *Engine) Inspect(ctx context.Context, path string) (*InspectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fsops.CheckReadable(e.fs, path); err != nil {
		return nil, newMergeError(ErrUnreadableInput, "read", path, err)
	}

	p, err := e.load(path)
	if err != nil {
		return nil, err
	}
	logging.From(ctx).Debug("inspected file", zap.String("path", path), zap.Int("entries", p.Len()))

	return &InspectResult{
		Path:    path,
		Entries: p.Entries(),
	}, nil
}

// validate checks that both inputs are readable and the destination is
// writable or creatable. All failures are reported together. The destination
// is only created once both inputs are known to be readable.
func (e *Engine) validate(req MergeRequest) error {
	var result *multierror.Error

	for _, path := range []string{req.Source, req.Override} {
		if err := fsops.CheckReadable(e.fs, path); err != nil {
			result = multierror.Append(result, newMergeError(ErrUnreadableInput, "read", path, err))
		}
	}

	create := !req.DryRun && result == nil
	if err := fsops.CheckWritable(e.fs, req.Destination, fileMode(req), create, req.CreateDirs); err != nil {
		result = multierror.Append(result, newMergeError(ErrUnwritableDestination, "write", req.Destination, err))
	}

	if result == nil {
		return nil
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result
}

// loadInputs parses the source and then the override.
func (e *Engine) loadInputs(ctx context.Context, req MergeRequest) (*props.Properties, *props.Properties, error) {
	base, err := e.load(req.Source)
	if err != nil {
		return nil, nil, err
	}
	override, err := e.load(req.Override)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return base, override, nil
}

// discardDestination removes a destination that validation created empty.
func (e *Engine) discardDestination(path string, logger *zap.Logger) {
	if err := e.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove created destination", zap.Error(err))
	}
}

// load opens and parses one input. The file is closed before returning.
func (e *Engine) load(path string) (*props.Properties, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, newMergeError(ErrUnreadableInput, "read", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	p, err := props.Parse(f)
	if err != nil {
		return nil, newMergeError(ErrParse, "parse", path, err)
	}
	return p, nil
}

// destinationChecksum hashes the current destination, if there is one.
func (e *Engine) destinationChecksum(path string) (string, bool, error) {
	exists, err := e.fs.Exists(path)
	if err != nil || !exists {
		return "", false, err
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return "", true, err
	}
	defer func() {
		_ = f.Close()
	}()

	sum, err := e.hasher.HashReader(f)
	if err != nil {
		return "", true, err
	}
	return sum, true, nil
}

// write stores data at the destination.
func (e *Engine) write(req MergeRequest, data []byte) error {
	perm := fileMode(req)

	if req.Atomic {
		// Keep the mode of an existing destination across the rename
		if info, err := e.fs.Stat(req.Destination); err == nil {
			perm = info.Mode().Perm()
		}
		if err := e.fs.AtomicWrite(req.Destination, data, perm); err != nil {
			return newMergeError(ErrWrite, "write", req.Destination, err)
		}
		return nil
	}

	f, err := e.fs.OpenFile(req.Destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return newMergeError(ErrUnwritableDestination, "open", req.Destination, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return newMergeError(ErrWrite, "write", req.Destination, err)
	}
	if err := f.Close(); err != nil {
		return newMergeError(ErrWrite, "write", req.Destination, fmt.Errorf("failed to close: %w", err))
	}
	return nil
}

func fileMode(req MergeRequest) os.FileMode {
	if req.FileMode == 0 {
		return defaultFileMode
	}
	return req.FileMode
}
