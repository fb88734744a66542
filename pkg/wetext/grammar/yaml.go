package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// yamlFile mirrors the on-disk YAML grammar format.
//
// Tagger example:
//
//	kind: tagger
//	policy: longest
//	rules:
//	  - category: date
//	    pattern: '(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})'
//	    priority: 10
//
// Verbalizer example:
//
//	kind: verbalizer
//	rules:
//	  - category: date
//	    template: '{month}/{day}/{year}'
type yamlFile struct {
	Kind   string     `yaml:"kind"`
	Policy string     `yaml:"policy"`
	Rules  []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
	Priority int    `yaml:"priority"`
	Template string `yaml:"template"`
}

// LoadYAML loads a grammar from a YAML rule file.
func LoadYAML(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedGrammar, err)
	}

	rs := RuleSet{
		Kind:   Kind(file.Kind),
		Policy: MatchPolicy(file.Policy),
	}
	for _, r := range file.Rules {
		switch rs.Kind {
		case KindVerbalizer:
			rs.Verbalize = append(rs.Verbalize, VerbalizeRule{
				Category: r.Category,
				Template: r.Template,
			})
		default:
			// Kind validation happens in New; collect as tag rules.
			rs.Tag = append(rs.Tag, TagRule{
				Category: r.Category,
				Pattern:  r.Pattern,
				Priority: r.Priority,
			})
		}
	}

	return New(rs)
}
