package wetext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wetext/wetext-go/pkg/wetext/internalerr"
)

func writeGrammar(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func dateProcessor(t *testing.T, opts Options) *Processor {
	t.Helper()
	opts.TaggerPath = writeGrammar(t, "tagger.yaml", `
kind: tagger
rules:
  - category: date
    pattern: '(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})'
`)
	opts.VerbalizerPath = writeGrammar(t, "verbalizer.yaml", `
kind: verbalizer
rules:
  - category: date
    template: '{month}/{day}/{year}'
`)

	proc, err := New(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { proc.Close() })
	return proc
}

func TestNormalizeDateEndToEnd(t *testing.T) {
	proc := dateProcessor(t, Options{})

	got, err := proc.Normalize("Meeting on 2024-03-15 confirmed")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Meeting on 03/15/2024 confirmed"; got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestTagThenVerbalizeMatchesNormalize(t *testing.T) {
	proc := dateProcessor(t, Options{})
	input := "due 2024-01-02, paid 2023-12-31"

	tagged, err := proc.Tag(input)
	if err != nil {
		t.Fatal(err)
	}
	stepwise, err := proc.Verbalize(tagged)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := proc.Normalize(input)
	if err != nil {
		t.Fatal(err)
	}
	if stepwise != direct {
		t.Errorf("composition law broken: %q != %q", stepwise, direct)
	}
}

func TestNewMissingTaggerPath(t *testing.T) {
	verbalizerPath := writeGrammar(t, "verbalizer.yaml", "kind: verbalizer\n")

	_, err := New(context.Background(), Options{
		TaggerPath:     filepath.Join(t.TempDir(), "missing.yaml"),
		VerbalizerPath: verbalizerPath,
	})
	if err == nil {
		t.Fatal("expected error for missing tagger grammar")
	}
}

func TestNewSwappedKinds(t *testing.T) {
	taggerPath := writeGrammar(t, "tagger.yaml", "kind: tagger\n")

	_, err := New(context.Background(), Options{
		TaggerPath:     taggerPath,
		VerbalizerPath: taggerPath, // a tagger grammar where a verbalizer is required
	})
	if !errors.Is(err, internalerr.ErrWrongGrammarKind) {
		t.Fatalf("expected ErrWrongGrammarKind, got %v", err)
	}
}

func TestClosedProcessor(t *testing.T) {
	proc := dateProcessor(t, Options{})

	if !proc.Valid() {
		t.Fatal("fresh processor should be valid")
	}
	if err := proc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := proc.Close(); err != nil {
		t.Fatal("Close must be idempotent")
	}
	if proc.Valid() {
		t.Error("closed processor should be invalid")
	}

	if _, err := proc.Normalize("2024-03-15"); !errors.Is(err, internalerr.ErrSessionClosed) {
		t.Errorf("Normalize: expected ErrSessionClosed, got %v", err)
	}
	if _, err := proc.Tag("2024-03-15"); !errors.Is(err, internalerr.ErrSessionClosed) {
		t.Errorf("Tag: expected ErrSessionClosed, got %v", err)
	}
	if _, err := proc.Verbalize("x"); !errors.Is(err, internalerr.ErrSessionClosed) {
		t.Errorf("Verbalize: expected ErrSessionClosed, got %v", err)
	}
}

func TestStripHTMLOption(t *testing.T) {
	proc := dateProcessor(t, Options{StripHTML: true})

	got, err := proc.Normalize("<p>Meeting on <b>2024-03-15</b></p>")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Meeting on 03/15/2024"; got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}
