// Package format provides the orchestrator that sequences the
// structuring passes over a document, and the per-file safety pipeline
// around it.
package format

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdstruct/pkg/config"
	"github.com/yaklabco/gomdstruct/pkg/nlp"
	"github.com/yaklabco/gomdstruct/pkg/structure"
)

// Engine sequences the passes over one document: structure detection,
// language cleanup, then multi-line normalization. The rule registry is
// built once at construction (built-ins first, then the supplied sets
// in order) and is read-only afterwards, so a single Engine is safe to
// share across concurrent per-file workers.
type Engine struct {
	opts       config.Options
	registry   *structure.Registry
	scanner    *structure.Scanner
	normalizer *structure.Normalizer
	cleaner    *nlp.Cleaner
}

// New creates an engine for the given options. Supplied rule sets are
// registered behind the built-ins; a malformed set fails construction
// with a *structure.ValidationError before any document is processed.
//
// The returned engine runs the basic (non-segmenting) cleanup path
// unless opts.NLP is set. Use NewWithNLP for the NLP-enabled variant
// rather than mutating options.
func New(opts config.Options, sets ...structure.Set) (*Engine, error) {
	opts = opts.Normalized()

	registry := structure.NewDefaultRegistry(opts)
	for _, set := range sets {
		if err := registry.Register(set); err != nil {
			return nil, fmt.Errorf("register rule set %q: %w", set.Name, err)
		}
	}

	return &Engine{
		opts:       opts,
		registry:   registry,
		scanner:    structure.NewScanner(opts, registry),
		normalizer: structure.NewNormalizer(opts, registry),
		cleaner:    nlp.New(opts),
	}, nil
}

// NewWithNLP creates an engine with the full NLP cleanup pass enabled,
// leaving the caller's options value untouched.
func NewWithNLP(opts config.Options, sets ...structure.Set) (*Engine, error) {
	return New(opts.WithNLP(), sets...)
}

// Options returns the engine's effective options.
func (e *Engine) Options() config.Options {
	return e.opts
}

// Registry exposes the engine's rule registry, mainly for rule
// listings.
func (e *Engine) Registry() *structure.Registry {
	return e.registry
}

// Format structures one document and returns the normalized markdown.
// Output always ends in exactly one newline with no trailing whitespace
// on any line. The only error is context cancellation; per-line cleanup
// failures are recovered internally and never surface.
func (e *Engine) Format(ctx context.Context, text string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("format cancelled: %w", ctx.Err())
	default:
	}

	out := e.scanner.Scan(text)

	if e.opts.NLP {
		cleaned, err := e.cleaner.CleanDocument(ctx, out)
		if err != nil {
			return "", err
		}
		out = cleaned
	} else {
		out = e.cleaner.CleanDocumentBasic(out)
	}

	if e.opts.DetectCodeLanguage {
		out = tagCodeFences(out)
	}

	return e.normalizer.Normalize(out), nil
}
