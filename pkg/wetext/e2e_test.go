package wetext

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
)

// End-to-end run over a small production-shaped grammar pair: dates,
// money, and plain cardinals, distributed as compiled grammar databases.

const e2eTagger = `
kind: tagger
policy: longest
rules:
  - category: date
    pattern: '(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})'
    priority: 10
  - category: money
    pattern: '\$(?P<amount>\d+(\.\d+)?)'
    priority: 5
  - category: cardinal
    pattern: '(?P<value>\d+)'
`

const e2eVerbalizer = `
kind: verbalizer
rules:
  - category: date
    template: '{month}/{day}/{year}'
  - category: money
    template: '{amount|spellout} dollars'
  - category: cardinal
    template: '{value|spellout}'
`

func compileGrammars(t *testing.T) (taggerPath, verbalizerPath string) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	tg, err := grammar.LoadYAML(writeGrammar(t, "tagger.yaml", e2eTagger))
	if err != nil {
		t.Fatal(err)
	}
	vg, err := grammar.LoadYAML(writeGrammar(t, "verbalizer.yaml", e2eVerbalizer))
	if err != nil {
		t.Fatal(err)
	}

	taggerPath = filepath.Join(dir, "tagger.db")
	verbalizerPath = filepath.Join(dir, "verbalizer.db")
	if err := grammar.WriteSQLite(ctx, taggerPath, tg); err != nil {
		t.Fatal(err)
	}
	if err := grammar.WriteSQLite(ctx, verbalizerPath, vg); err != nil {
		t.Fatal(err)
	}
	return taggerPath, verbalizerPath
}

func TestCompiledGrammarEndToEnd(t *testing.T) {
	taggerPath, verbalizerPath := compileGrammars(t)

	proc, err := New(context.Background(), Options{
		TaggerPath:     taggerPath,
		VerbalizerPath: verbalizerPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	cases := []struct {
		in   string
		want string
	}{
		{
			"Meeting on 2024-03-15 confirmed",
			"Meeting on 03/15/2024 confirmed",
		},
		{
			"Pay $25 before 2024-04-01",
			"Pay twenty-five dollars before 04/01/2024",
		},
		{
			"The cable is 2 meters",
			"The cable is two meters",
		},
		{
			"$3.50 total",
			"three point five zero dollars total",
		},
		{
			"nothing structured here",
			"nothing structured here",
		},
	}

	for _, tc := range cases {
		got, err := proc.Normalize(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	taggerPath, verbalizerPath := compileGrammars(t)

	proc, err := New(context.Background(), Options{
		TaggerPath:     taggerPath,
		VerbalizerPath: verbalizerPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	input := "Pay $25 and $100 on 2024-03-15, then 7 more"
	first, err := proc.Normalize(input)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		got, err := proc.Normalize(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("run %d differs: %q != %q", i, got, first)
		}
	}
}
