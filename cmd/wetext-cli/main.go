// wetext-cli normalizes text from the command line or stdin.
//
// Usage:
//
//	wetext-cli -tagger date_tagger.yaml -verbalizer date_verbalizer.yaml -text "Meeting on 2024-03-15"
//	cat input.txt | wetext-cli -tagger rules.db -verbalizer verb.db -op tag
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wetext/wetext-go/pkg/wetext"
)

func main() {
	var (
		taggerPath     = flag.String("tagger", "", "Tagger grammar file (required)")
		verbalizerPath = flag.String("verbalizer", "", "Verbalizer grammar file (required)")
		op             = flag.String("op", "normalize", "Operation: normalize, tag, or verbalize")
		text           = flag.String("text", "", "Input text (reads stdin line by line if empty)")
		stripHTML      = flag.Bool("strip-html", false, "Strip HTML markup from input before tagging")
	)
	flag.Parse()

	if *taggerPath == "" {
		log.Fatal("-tagger required")
	}
	if *verbalizerPath == "" {
		log.Fatal("-verbalizer required")
	}

	ctx := context.Background()

	proc, err := wetext.New(ctx, wetext.Options{
		TaggerPath:     *taggerPath,
		VerbalizerPath: *verbalizerPath,
		StripHTML:      *stripHTML,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer proc.Close()

	run := func(input string) {
		out, err := apply(proc, *op, input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
	}

	if *text != "" {
		run(*text)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		run(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func apply(proc *wetext.Processor, op, input string) (string, error) {
	switch op {
	case "normalize":
		return proc.Normalize(input)
	case "tag":
		return proc.Tag(input)
	case "verbalize":
		return proc.Verbalize(input)
	default:
		return "", fmt.Errorf("unknown op %q (want normalize, tag, or verbalize)", op)
	}
}
