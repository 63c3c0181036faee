// Command docoptgen is the CLI wrapper around package docoptgen: it reads a
// docopt-style usage description (from a file, or interactively from
// stdin) and emits the C scanner/grammar/header triple describing that
// grammar.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
