// Package wetext is a rule-driven text-normalization engine. A Processor
// pairs a tagger grammar, which classifies spans of raw text into semantic
// categories (dates, numbers, currency), with a verbalizer grammar, which
// rewrites the classified spans into their final written form.
package wetext

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
	"github.com/wetext/wetext-go/pkg/wetext/htmltext"
	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
	"github.com/wetext/wetext-go/pkg/wetext/pipeline"
	"github.com/wetext/wetext-go/pkg/wetext/tag"
	"github.com/wetext/wetext-go/pkg/wetext/verbalize"
)

// Options configures a Processor.
type Options struct {
	// TaggerPath and VerbalizerPath locate the grammar files, either YAML
	// rule files or compiled grammar databases.
	TaggerPath     string
	VerbalizerPath string

	// StripHTML extracts visible text from HTML input before tagging, for
	// callers normalizing scraped content.
	StripHTML bool
}

// Processor owns one tagger and one verbalizer for the lifetime of a
// session. Grammars are loaded once at creation and never mutated, so all
// per-call operations are safe to run concurrently on one Processor.
type Processor struct {
	pipeline  *pipeline.Pipeline
	stripHTML bool
	closed    atomic.Bool
}

// New loads both grammars and builds a processor. Any load, pattern, or
// template problem surfaces here; per-call operations never fail on
// well-formed input afterwards.
func New(ctx context.Context, opts Options) (*Processor, error) {
	tg, err := grammar.LoadFile(ctx, opts.TaggerPath)
	if err != nil {
		return nil, fmt.Errorf("load tagger grammar: %w", err)
	}
	vg, err := grammar.LoadFile(ctx, opts.VerbalizerPath)
	if err != nil {
		return nil, fmt.Errorf("load verbalizer grammar: %w", err)
	}

	tagger, err := tag.New(tg)
	if err != nil {
		return nil, fmt.Errorf("build tagger: %w", err)
	}
	verbalizer, err := verbalize.New(vg)
	if err != nil {
		return nil, fmt.Errorf("build verbalizer: %w", err)
	}

	return &Processor{
		pipeline:  pipeline.New(tagger, verbalizer),
		stripHTML: opts.StripHTML,
	}, nil
}

// Normalize runs the full pipeline: tag, then verbalize.
func (p *Processor) Normalize(text string) (string, error) {
	if p.closed.Load() {
		return "", internalerr.ErrSessionClosed
	}
	if p.stripHTML {
		text = htmltext.Strip(text)
	}
	return p.pipeline.Normalize(text), nil
}

// Tag runs only the tagging stage and returns the serialized tagged form.
func (p *Processor) Tag(text string) (string, error) {
	if p.closed.Load() {
		return "", internalerr.ErrSessionClosed
	}
	if p.stripHTML {
		text = htmltext.Strip(text)
	}
	return p.pipeline.Tag(text), nil
}

// Verbalize runs only the verbalization stage. The input is a serialized
// tagged form as produced by Tag, not raw text.
func (p *Processor) Verbalize(tagged string) (string, error) {
	if p.closed.Load() {
		return "", internalerr.ErrSessionClosed
	}
	return p.pipeline.Verbalize(tagged), nil
}

// Valid reports whether the processor can still be used.
func (p *Processor) Valid() bool { return !p.closed.Load() }

// Close marks the processor unusable. It is idempotent; grammar memory is
// reclaimed once all in-flight calls drain.
func (p *Processor) Close() error {
	p.closed.Store(true)
	return nil
}
