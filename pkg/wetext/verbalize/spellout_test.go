package verbalize

import "testing"

func TestSpellout(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "zero"},
		{"5", "five"},
		{"13", "thirteen"},
		{"20", "twenty"},
		{"42", "forty-two"},
		{"100", "one hundred"},
		{"101", "one hundred one"},
		{"999", "nine hundred ninety-nine"},
		{"1000", "one thousand"},
		{"1234", "one thousand two hundred thirty-four"},
		{"1000000", "one million"},
		{"2500001", "two million five hundred thousand one"},
		{"03", "three"},
		{"1,234", "one thousand two hundred thirty-four"},
		{"2.5", "two point five"},
		{"3.05", "three point zero five"},
		{"-7", "minus seven"},
		{"+8", "eight"},
		{"", ""},
		{"abc", "abc"},
		{"12a", "12a"},
	}

	for _, tc := range cases {
		if got := spellout(tc.in); got != tc.want {
			t.Errorf("spellout(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSpelloutOverflowFallsBackToDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234567890", "one two three four five six seven eight nine zero"},
		{"1,234,567,890", "one two three four five six seven eight nine zero"},
		{"1234567890.5", "one two three four five six seven eight nine zero point five"},
		{"-9999999999", "minus nine nine nine nine nine nine nine nine nine nine"},
	}
	for _, tc := range cases {
		if got := spellout(tc.in); got != tc.want {
			t.Errorf("spellout(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"042", "zero four two"},
		{"555-1234", "five five five - one two three four"},
		{"1 2", "one two"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := digits(tc.in); got != tc.want {
			t.Errorf("digits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
