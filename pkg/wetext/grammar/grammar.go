package grammar

import (
	"fmt"
	"regexp"

	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// Kind distinguishes the two grammar roles in the pipeline.
type Kind string

const (
	KindTagger     Kind = "tagger"
	KindVerbalizer Kind = "verbalizer"
)

// MatchPolicy selects the winning tag rule when several rules match at the
// same input position.
type MatchPolicy string

const (
	// PolicyLongest picks the longest match (maximal munch); ties go to
	// the higher priority, then to earlier rule order.
	PolicyLongest MatchPolicy = "longest"
	// PolicyFirst picks the earliest-declared matching rule.
	PolicyFirst MatchPolicy = "first"
	// PolicyPriority picks the highest declared priority; ties go to the
	// longer match, then to earlier rule order.
	PolicyPriority MatchPolicy = "priority"
)

// ReservedCategory is the category used for untagged pass-through spans in
// the serialized tagged form. Grammars may not claim it.
const ReservedCategory = "token"

// TagRule classifies spans of raw text. Pattern is a Go regular expression;
// named capture groups become the span's extracted fields.
type TagRule struct {
	Category string
	Pattern  string
	Priority int
}

// VerbalizeRule rewrites a tagged span. Template uses {field} placeholders,
// optionally {field|filter}; {{ and }} emit literal braces.
type VerbalizeRule struct {
	Category string
	Template string
}

// RuleSet is the declarative, storage-agnostic form of a grammar, produced
// by the YAML and SQLite loaders.
type RuleSet struct {
	Kind      Kind
	Policy    MatchPolicy
	Tag       []TagRule
	Verbalize []VerbalizeRule
}

// Grammar is an immutable, validated rule set. It is read-only after New
// and safe for concurrent use.
type Grammar struct {
	kind      Kind
	policy    MatchPolicy
	tag       []TagRule
	verbalize map[string]VerbalizeRule
}

var categoryName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New validates a rule set and returns an immutable grammar.
func New(rs RuleSet) (*Grammar, error) {
	switch rs.Kind {
	case KindTagger, KindVerbalizer:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", internalerr.ErrMalformedGrammar, rs.Kind)
	}

	policy := rs.Policy
	if policy == "" {
		policy = PolicyLongest
	}
	switch policy {
	case PolicyLongest, PolicyFirst, PolicyPriority:
	default:
		return nil, fmt.Errorf("%w: unknown match policy %q", internalerr.ErrMalformedGrammar, rs.Policy)
	}

	g := &Grammar{
		kind:      rs.Kind,
		policy:    policy,
		verbalize: make(map[string]VerbalizeRule, len(rs.Verbalize)),
	}

	if rs.Kind == KindTagger {
		if len(rs.Verbalize) > 0 {
			return nil, fmt.Errorf("%w: tagger grammar contains verbalize rules", internalerr.ErrMalformedGrammar)
		}
		for i, r := range rs.Tag {
			if err := checkCategory(r.Category); err != nil {
				return nil, fmt.Errorf("tag rule %d: %w", i, err)
			}
			if r.Pattern == "" {
				return nil, fmt.Errorf("tag rule %d (%s): %w: empty pattern", i, r.Category, internalerr.ErrMalformedGrammar)
			}
			g.tag = append(g.tag, r)
		}
		return g, nil
	}

	if len(rs.Tag) > 0 {
		return nil, fmt.Errorf("%w: verbalizer grammar contains tag rules", internalerr.ErrMalformedGrammar)
	}
	for i, r := range rs.Verbalize {
		if err := checkCategory(r.Category); err != nil {
			return nil, fmt.Errorf("verbalize rule %d: %w", i, err)
		}
		if _, dup := g.verbalize[r.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate verbalize rule for category %q", internalerr.ErrMalformedGrammar, r.Category)
		}
		g.verbalize[r.Category] = r
	}
	return g, nil
}

func checkCategory(cat string) error {
	if !categoryName.MatchString(cat) {
		return fmt.Errorf("%w: invalid category %q", internalerr.ErrMalformedGrammar, cat)
	}
	if cat == ReservedCategory {
		return fmt.Errorf("%w: category %q is reserved for untagged spans", internalerr.ErrMalformedGrammar, cat)
	}
	return nil
}

// Kind returns the grammar role.
func (g *Grammar) Kind() Kind { return g.kind }

// Policy returns the tag-rule selection policy.
func (g *Grammar) Policy() MatchPolicy { return g.policy }

// TagRules returns the tag rules in declaration order. The returned slice
// must not be mutated.
func (g *Grammar) TagRules() []TagRule { return g.tag }

// Rule looks up the verbalize rule for a category.
func (g *Grammar) Rule(category string) (VerbalizeRule, bool) {
	r, ok := g.verbalize[category]
	return r, ok
}

// VerbalizeRules returns all verbalize rules, in no particular order.
func (g *Grammar) VerbalizeRules() []VerbalizeRule {
	out := make([]VerbalizeRule, 0, len(g.verbalize))
	for _, r := range g.verbalize {
		out = append(out, r)
	}
	return out
}
