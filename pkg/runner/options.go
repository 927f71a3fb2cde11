// Package runner provides multi-file formatting orchestration: file
// discovery, a worker pool around the format pipeline, and aggregate
// run statistics.
package runner

import "github.com/yaklabco/gomdstruct/pkg/format"

// Options controls multi-file formatting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to
	// process. If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) considered input. Defaults via DefaultExtensions().
	Extensions []string

	// IncludeGlobs are glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Pipeline holds the per-file write options for this run.
	Pipeline format.PipelineOptions
}

// DefaultExtensions returns the file extensions processed by default.
// Plain-text extensions are included since unstructured notes are the
// primary input.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
