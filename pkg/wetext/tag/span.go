package tag

import (
	"fmt"
	"strings"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// reservedField is the key carrying a span's verbatim text in the
// serialized tagged form. Capture groups may not claim it; New rejects
// patterns that try.
const reservedField = "text"

// Field is one extracted value of a tagged span, named after the capture
// group that produced it.
type Field struct {
	Name  string
	Value string
}

// Span is a contiguous region of input text. Tagged spans carry a category
// and extracted fields; untagged spans carry only the verbatim text.
// Concatenating the Text of a span sequence reproduces the input exactly.
type Span struct {
	Category string // empty for untagged spans
	Text     string // verbatim source text
	Fields   []Field
}

// Tagged reports whether the span was classified by a grammar rule.
func (s Span) Tagged() bool { return s.Category != "" }

// Field returns the first field with the given name.
func (s Span) Field(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Marshal serializes spans into the tagged intermediate form consumed by
// the verbalizer:
//
//	token { text: "Meeting on " } date { year: "2024" month: "03" day: "15" text: "2024-03-15" }
//
// Untagged spans use the reserved category "token". The verbatim text is
// always the last field.
func Marshal(spans []Span) string {
	var b strings.Builder
	for i, s := range spans {
		if i > 0 {
			b.WriteByte(' ')
		}
		cat := s.Category
		if cat == "" {
			cat = grammar.ReservedCategory
		}
		b.WriteString(cat)
		b.WriteString(" {")
		if s.Tagged() {
			for _, f := range s.Fields {
				b.WriteByte(' ')
				b.WriteString(f.Name)
				b.WriteString(": ")
				writeQuoted(&b, f.Value)
			}
		}
		b.WriteString(" text: ")
		writeQuoted(&b, s.Text)
		b.WriteString(" }")
	}
	return b.String()
}

// Parse reconstructs a span sequence from its serialized tagged form.
func Parse(s string) ([]Span, error) {
	p := &parser{in: s}
	var spans []Span
	for {
		p.skipSpace()
		if p.done() {
			return spans, nil
		}
		span, err := p.span()
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
}

// Strip recovers the original text from a serialized tagged form.
func Strip(s string) (string, error) {
	spans, err := Parse(s)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String(), nil
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

type parser struct {
	in  string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.in) }

func (p *parser) skipSpace() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) span() (Span, error) {
	cat, err := p.ident()
	if err != nil {
		return Span{}, err
	}
	p.skipSpace()
	if err := p.expect('{'); err != nil {
		return Span{}, err
	}

	var span Span
	sawText := false
	for {
		p.skipSpace()
		if p.done() {
			return Span{}, fmt.Errorf("%w: unterminated span %q", internalerr.ErrInvalidInput, cat)
		}
		if p.in[p.pos] == '}' {
			p.pos++
			break
		}
		name, err := p.ident()
		if err != nil {
			return Span{}, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return Span{}, err
		}
		p.skipSpace()
		value, err := p.quoted()
		if err != nil {
			return Span{}, err
		}
		if name == reservedField {
			span.Text = value
			sawText = true
		} else {
			span.Fields = append(span.Fields, Field{Name: name, Value: value})
		}
	}

	if !sawText {
		return Span{}, fmt.Errorf("%w: span %q has no text field", internalerr.ErrInvalidInput, cat)
	}
	if cat != grammar.ReservedCategory {
		span.Category = cat
	}
	return span, nil
}

func (p *parser) ident() (string, error) {
	start := p.pos
	for p.pos < len(p.in) && isIdentByte(p.in[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("%w: expected identifier at offset %d", internalerr.ErrInvalidInput, p.pos)
	}
	return p.in[start:p.pos], nil
}

func (p *parser) expect(c byte) error {
	if p.done() || p.in[p.pos] != c {
		return fmt.Errorf("%w: expected %q at offset %d", internalerr.ErrInvalidInput, string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) quoted() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.done() {
				return "", fmt.Errorf("%w: dangling escape", internalerr.ErrInvalidInput)
			}
			switch p.in[p.pos] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("%w: unknown escape \\%s", internalerr.ErrInvalidInput, string(p.in[p.pos]))
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated string", internalerr.ErrInvalidInput)
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
