package verbalize

import (
	"fmt"
	"strings"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
	"github.com/wetext/wetext-go/pkg/wetext/tag"
)

// Verbalizer rewrites tagged spans into their final written form using a
// verbalizer grammar. It holds only immutable compiled state and is safe
// for concurrent use.
type Verbalizer struct {
	templates map[string]template
}

// New compiles all rewrite templates. Malformed templates fail here, at
// creation time, keeping Verbalize itself total.
func New(g *grammar.Grammar) (*Verbalizer, error) {
	if g.Kind() != grammar.KindVerbalizer {
		return nil, fmt.Errorf("%w: got %q, want %q", internalerr.ErrWrongGrammarKind, g.Kind(), grammar.KindVerbalizer)
	}

	v := &Verbalizer{templates: make(map[string]template)}
	for _, r := range g.VerbalizeRules() {
		tpl, err := parseTemplate(r.Template)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Category, err)
		}
		v.templates[r.Category] = tpl
	}
	return v, nil
}

// Verbalize renders a span sequence in document order. Untagged spans and
// spans whose category has no rule pass through verbatim, so no text is
// ever dropped.
func (v *Verbalizer) Verbalize(spans []tag.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if !s.Tagged() {
			b.WriteString(s.Text)
			continue
		}
		tpl, ok := v.templates[s.Category]
		if !ok {
			b.WriteString(s.Text)
			continue
		}
		tpl.render(&b, s)
	}
	return b.String()
}

// template is a compiled rewrite rule: a sequence of literal chunks and
// field placeholders.
type template []step

type step struct {
	literal string // used when field is empty
	field   string
	filter  filterFunc
}

func (t template) render(b *strings.Builder, s tag.Span) {
	for _, st := range t {
		if st.field == "" {
			b.WriteString(st.literal)
			continue
		}
		value, _ := s.Field(st.field)
		if st.filter != nil {
			value = st.filter(value)
		}
		b.WriteString(value)
	}
}

// parseTemplate compiles "{field}" / "{field|filter}" placeholder syntax.
// "{{" and "}}" emit literal braces.
func parseTemplate(src string) (template, error) {
	var tpl template
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tpl = append(tpl, step{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		switch src[i] {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(src[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed placeholder in template %q", internalerr.ErrMalformedGrammar, src)
			}
			end += i
			name := src[i+1 : end]
			filterName := ""
			if pipe := strings.IndexByte(name, '|'); pipe >= 0 {
				name, filterName = name[:pipe], name[pipe+1:]
			}
			if name == "" {
				return nil, fmt.Errorf("%w: empty placeholder in template %q", internalerr.ErrMalformedGrammar, src)
			}
			fn, err := lookupFilter(filterName)
			if err != nil {
				return nil, err
			}
			flush()
			tpl = append(tpl, step{field: name, filter: fn})
			i = end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w: stray '}' in template %q", internalerr.ErrMalformedGrammar, src)
		default:
			lit.WriteByte(src[i])
			i++
		}
	}
	flush()
	return tpl, nil
}
