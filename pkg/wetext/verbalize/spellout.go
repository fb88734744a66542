package verbalize

import (
	"strings"
)

// Cardinal number spell-out for the spellout template filter. Handles
// optional sign, grouping commas, and a decimal part read digit by digit
// ("2.5" → "two point five"). Values that are not numbers come back
// unchanged.

const maxSpellout = 999_999_999

var ones = [...]string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

var teens = [...]string{
	"ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty",
	"fifty", "sixty", "seventy", "eighty", "ninety",
}

func spellout(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return s
	}

	negative := false
	switch raw[0] {
	case '-':
		negative = true
		raw = raw[1:]
	case '+':
		raw = raw[1:]
	}

	intPart := raw
	fracPart := ""
	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		intPart, fracPart = raw[:dot], raw[dot+1:]
	}
	intPart = strings.ReplaceAll(intPart, ",", "")

	if intPart == "" || !allDigits(intPart) || (fracPart != "" && !allDigits(fracPart)) {
		return s
	}

	n := int64(0)
	tooLarge := false
	for _, c := range []byte(intPart) {
		n = n*10 + int64(c-'0')
		if n > maxSpellout {
			tooLarge = true
			break
		}
	}

	var out string
	if tooLarge {
		// Too large for cardinal form; read digit by digit instead,
		// without the grouping commas.
		out = digits(intPart)
	} else {
		out = spellInt(n)
	}
	if fracPart != "" {
		out += " point " + digits(fracPart)
	}
	return withSign(negative, out)
}

func withSign(negative bool, s string) string {
	if negative {
		return "minus " + s
	}
	return s
}

func spellInt(n int64) string {
	if n == 0 {
		return "zero"
	}

	var parts []string
	scales := []struct {
		value int64
		name  string
	}{
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
	for _, sc := range scales {
		if n >= sc.value {
			parts = append(parts, spellUnderThousand(n/sc.value), sc.name)
			n %= sc.value
		}
	}
	if n > 0 {
		parts = append(parts, spellUnderThousand(n))
	}
	return strings.Join(parts, " ")
}

func spellUnderThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 10:
		parts = append(parts, ones[n])
	case n < 20:
		parts = append(parts, teens[n-10])
	default:
		word := tens[n/10]
		if rest := n % 10; rest > 0 {
			word += "-" + ones[rest]
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}

func allDigits(s string) bool {
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
