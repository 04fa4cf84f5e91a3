// dictgen runs the dictionary filter over one or more raw typo sources and
// writes the base-table artifact consumed at runtime.
//
//	dictgen -dialect british -out base.json typos.txt extra.txt
//
// Sources are processed in argument order; on duplicate typos the
// last-parsed source wins.
package main

import (
	"flag"
	"log"
	"os"

	"typofix/internal/dictionary"
)

func main() {
	dialect := flag.String("dialect", "british", "protected dialect: british or american")
	out := flag.String("out", "base.json", "artifact output path")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Println("usage: dictgen [-dialect british|american] [-out base.json] source...")
		os.Exit(2)
	}

	sets := dictionary.LoadWordSets(dictionary.Dialect(*dialect))
	filter := dictionary.NewFilter(sets)

	var table map[string]string
	var err error
	for _, path := range flag.Args() {
		table, err = filter.FilterFile(table, path)
		if err != nil {
			log.Fatalf("filter %s: %v", path, err)
		}
	}

	if err := dictionary.WriteArtifact(*out, table); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %d rules to %s", len(table), *out)
}
