// wetext-compile turns a YAML grammar into a compiled grammar database,
// the single-file distribution format for production rule sets.
//
// Usage:
//
//	wetext-compile -in date_tagger.yaml -out date_tagger.db
package main

import (
	"context"
	"flag"
	"log"

	"github.com/wetext/wetext-go/pkg/wetext/grammar"
)

func main() {
	var (
		in  = flag.String("in", "", "YAML grammar file (required)")
		out = flag.String("out", "", "Output compiled grammar database (required)")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("-in required")
	}
	if *out == "" {
		log.Fatal("-out required")
	}

	ctx := context.Background()

	g, err := grammar.LoadYAML(*in)
	if err != nil {
		log.Fatal(err)
	}

	if err := grammar.WriteSQLite(ctx, *out, g); err != nil {
		log.Fatal(err)
	}

	log.Printf("compiled %s (%s) -> %s", *in, g.Kind(), *out)
}
