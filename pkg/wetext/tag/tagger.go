package tag

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// Tagger scans raw text left to right and classifies spans against a tagger
// grammar. It holds only immutable compiled state and is safe for
// concurrent use.
type Tagger struct {
	policy grammar.MatchPolicy
	rules  []compiledRule
}

type compiledRule struct {
	category string
	priority int
	order    int
	re       *regexp.Regexp
	names    []string // submatch names, indexed by group
}

// New compiles the tagger grammar's patterns. Patterns that do not compile
// fail here, keeping Tag itself total.
func New(g *grammar.Grammar) (*Tagger, error) {
	if g.Kind() != grammar.KindTagger {
		return nil, fmt.Errorf("%w: got %q, want %q", internalerr.ErrWrongGrammarKind, g.Kind(), grammar.KindTagger)
	}

	t := &Tagger{policy: g.Policy()}
	for i, r := range g.TagRules() {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Category, err)
		}
		for _, name := range re.SubexpNames() {
			if name == reservedField {
				return nil, fmt.Errorf("rule %q: %w: capture group %q is reserved for verbatim span text",
					r.Category, internalerr.ErrMalformedGrammar, reservedField)
			}
		}
		t.rules = append(t.rules, compiledRule{
			category: r.Category,
			priority: r.Priority,
			order:    i,
			re:       re,
			names:    re.SubexpNames(),
		})
	}
	return t, nil
}

// candidate is one rule's leftmost match at or after the scan position.
type candidate struct {
	rule *compiledRule
	loc  []int // absolute submatch indices
}

// Tag segments text into spans covering the whole input in document order.
// Unmatched regions become untagged pass-through spans; Tag never fails.
//
// The scan resumes after each consumed span, so ^ and \A in rule patterns
// anchor to every resumption point, not only to the start of the input.
// Patterns should not rely on them for input-start anchoring.
func (t *Tagger) Tag(text string) []Span {
	var spans []Span

	// Per-rule cache of the leftmost match at or after the scan position,
	// so each rule rescans only the part of the input it has not seen.
	cache := make([]candidate, len(t.rules))
	exhausted := make([]bool, len(t.rules))

	pos := 0
	for pos < len(text) {
		earliest := -1
		for i := range t.rules {
			if exhausted[i] {
				continue
			}
			if cache[i].loc == nil || cache[i].loc[0] < pos {
				m := t.rules[i].re.FindStringSubmatchIndex(text[pos:])
				if m == nil {
					exhausted[i] = true
					cache[i] = candidate{}
					continue
				}
				for j := range m {
					if m[j] >= 0 {
						m[j] += pos
					}
				}
				cache[i] = candidate{rule: &t.rules[i], loc: m}
			}
			if start := cache[i].loc[0]; earliest < 0 || start < earliest {
				earliest = start
			}
		}

		if earliest < 0 {
			spans = appendSpan(spans, Span{Text: text[pos:]})
			return spans
		}

		var best candidate
		for i := range t.rules {
			c := cache[i]
			if c.loc == nil || c.loc[0] != earliest {
				continue
			}
			if best.rule == nil || t.better(c, best) {
				best = c
			}
		}

		if earliest > pos {
			spans = appendSpan(spans, Span{Text: text[pos:earliest]})
		}

		start, end := best.loc[0], best.loc[1]
		if end == start {
			// Zero-width match: emit one rune as literal text so the
			// scan always advances.
			_, size := utf8.DecodeRuneInString(text[start:])
			if size == 0 {
				return spans
			}
			spans = appendSpan(spans, Span{Text: text[start : start+size]})
			pos = start + size
			continue
		}

		spans = appendSpan(spans, Span{
			Category: best.rule.category,
			Text:     text[start:end],
			Fields:   extractFields(text, best.rule, best.loc),
		})
		pos = end
	}

	return spans
}

// better reports whether candidate a beats candidate b under the grammar's
// match policy. Both candidates start at the same offset.
func (t *Tagger) better(a, b candidate) bool {
	switch t.policy {
	case grammar.PolicyFirst:
		return a.rule.order < b.rule.order
	case grammar.PolicyPriority:
		if a.rule.priority != b.rule.priority {
			return a.rule.priority > b.rule.priority
		}
		if la, lb := a.loc[1]-a.loc[0], b.loc[1]-b.loc[0]; la != lb {
			return la > lb
		}
		return a.rule.order < b.rule.order
	default: // PolicyLongest
		if la, lb := a.loc[1]-a.loc[0], b.loc[1]-b.loc[0]; la != lb {
			return la > lb
		}
		if a.rule.priority != b.rule.priority {
			return a.rule.priority > b.rule.priority
		}
		return a.rule.order < b.rule.order
	}
}

// extractFields pulls named capture groups out of a match, in group order.
// Groups that did not participate in the match are skipped.
func extractFields(text string, r *compiledRule, loc []int) []Field {
	var fields []Field
	for gi := 1; gi < len(r.names); gi++ {
		name := r.names[gi]
		if name == "" || 2*gi+1 >= len(loc) {
			continue
		}
		lo, hi := loc[2*gi], loc[2*gi+1]
		if lo < 0 || hi < 0 {
			continue
		}
		fields = append(fields, Field{Name: name, Value: text[lo:hi]})
	}
	return fields
}

// appendSpan merges adjacent untagged spans so pass-through text stays in
// one piece.
func appendSpan(spans []Span, s Span) []Span {
	if n := len(spans); n > 0 && !s.Tagged() && !spans[n-1].Tagged() {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
