package verbalize

import (
	"fmt"
	"strings"

	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

// filterFunc transforms a field value during template rendering. Filters
// are total: values they cannot interpret come back unchanged.
type filterFunc func(string) string

func lookupFilter(name string) (filterFunc, error) {
	switch name {
	case "":
		return nil, nil
	case "spellout":
		return spellout, nil
	case "digits":
		return digits, nil
	case "upper":
		return strings.ToUpper, nil
	case "lower":
		return strings.ToLower, nil
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", internalerr.ErrMalformedGrammar, name)
	}
}

// digits reads a value digit by digit ("042" → "zero four two"). Runes that
// are not digits or spaces are kept as their own words.
func digits(s string) string {
	var words []string
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			words = append(words, ones[r-'0'])
		case r == ' ':
		default:
			words = append(words, string(r))
		}
	}
	return strings.Join(words, " ")
}
