package format

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdstruct/pkg/fsutil"
)

// Pipeline error categories for errors.Is checks.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrFormatFailure indicates the engine could not format the content.
	ErrFormatFailure = errors.New("format failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult describes what happened to a single file.
type PipelineResult struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the file state at read time.
	Snapshot *fsutil.Snapshot

	// Changed is true when the formatted content differs from the
	// original.
	Changed bool

	// Formatted is the structured output (empty when unchanged).
	Formatted string

	// Diff is the unified diff in dry-run mode (nil otherwise).
	Diff *Diff

	// Skipped is true when the file was left alone, e.g. because it
	// changed on disk while being processed.
	Skipped bool

	// SkipReason explains a skip.
	SkipReason string

	// BackupCreated is true when a sidecar backup was written.
	BackupCreated bool

	// Written is true when the file was rewritten on disk.
	Written bool
}

// Summary returns a short human-readable outcome for the result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "formatted (backup created)"
	case pr.Written:
		return "formatted"
	case pr.Changed:
		return "changes pending"
	default:
		return "unchanged"
	}
}

// PipelineOptions controls write behavior around the engine.
type PipelineOptions struct {
	// Write rewrites changed files in place. When false the pipeline
	// only reports whether the file would change.
	Write bool

	// DryRun produces diffs instead of writing.
	DryRun bool

	// Backup creates a sidecar copy of the original before rewriting.
	Backup bool
}

// DefaultPipelineOptions returns the conservative defaults: report
// only, no writes.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Backup: true}
}

// Pipeline wraps an Engine with the per-file safety steps: snapshot
// read, modification detection, backup, and atomic write. A Pipeline is
// safe for concurrent use; each call operates on its own file.
type Pipeline struct {
	engine *Engine
}

// NewPipeline creates a pipeline around the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// Engine returns the wrapped engine.
func (p *Pipeline) Engine() *Engine {
	return p.engine
}

// ProcessFile runs one file through the pipeline:
//
//  1. Read the file and snapshot its state.
//  2. Format the content.
//  3. If unchanged, stop.
//  4. In dry-run mode, emit a diff and stop.
//  5. Before writing, verify the file was not modified externally.
//  6. Optionally create a backup, then write atomically.
//
// Errors are returned to the caller but carry enough category context
// that a batch runner can record the failure and move on to the next
// file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	original, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.Snapshot = snap

	formatted, err := p.engine.Format(ctx, string(original))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}

	if formatted == string(original) {
		return result, nil
	}
	result.Changed = true
	result.Formatted = formatted

	if opts.DryRun {
		result.Diff = NewDiff(path, string(original), formatted)
		return result, nil
	}

	if !opts.Write {
		return result, nil
	}

	modified, err := fsutil.Modified(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.Backup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(formatted), snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent formats in-memory content without touching the file
// system. Useful for stdin mode and tests.
func (p *Pipeline) ProcessContent(ctx context.Context, path, content string, opts PipelineOptions) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	formatted, err := p.engine.Format(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}

	if formatted == content {
		return result, nil
	}
	result.Changed = true
	result.Formatted = formatted

	if opts.DryRun {
		result.Diff = NewDiff(path, content, formatted)
	}
	return result, nil
}

// categorizeError wraps read errors with the pipeline sentinels so
// callers can branch with errors.Is.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError reports whether err is one of the pipeline's
// categorized errors.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrFormatFailure) ||
		errors.Is(err, ErrWriteFailure)
}
