package pipeline

import (
	"github.com/wetext/wetext-go/pkg/wetext/tag"
	"github.com/wetext/wetext-go/pkg/wetext/verbalize"
)

// Pipeline composes the two normalization stages:
// raw text → tagger → tagged spans → verbalizer → normalized text
type Pipeline struct {
	tagger     *tag.Tagger
	verbalizer *verbalize.Verbalizer
}

// New creates a pipeline from a compiled tagger and verbalizer.
func New(tagger *tag.Tagger, verbalizer *verbalize.Verbalizer) *Pipeline {
	return &Pipeline{
		tagger:     tagger,
		verbalizer: verbalizer,
	}
}

// Normalize runs the full pipeline on raw text.
func (p *Pipeline) Normalize(text string) string {
	return p.verbalizer.Verbalize(p.tagger.Tag(text))
}

// Tag runs only the tagging stage and returns the serialized tagged form.
func (p *Pipeline) Tag(text string) string {
	return tag.Marshal(p.tagger.Tag(text))
}

// Verbalize runs only the verbalization stage on a serialized tagged form.
// Input that does not parse as a tagged form passes through unchanged, so
// the operation stays total.
func (p *Pipeline) Verbalize(tagged string) string {
	spans, err := tag.Parse(tagged)
	if err != nil {
		return tagged
	}
	return p.verbalizer.Verbalize(spans)
}
