package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeflective/docoptgen"
	"github.com/reeflective/docoptgen/internal/config"
)

// runInteractive implements interactive mode (spec.md §6.2's `prog -i`):
// usage blocks are typed at a "> " prompt; each is independently validated
// and emitted straight to the terminal, after which the builder resets for
// the next block — the on_newline/on_parsed/on_error cycle of spec.md §6.1,
// where on_error means "reset and re-prompt" rather than abort.
func runInteractive(cmd *cobra.Command, basename, outDir string) error {
	var optFuncs []config.OptFunc

	if basename != "" {
		optFuncs = append(optFuncs, config.WithBasename(basename))
	}

	if outDir != "" {
		optFuncs = append(optFuncs, config.WithOutDir(outDir))
	}

	optFuncs = append(optFuncs, config.WithInteractive(true))

	opts, err := config.New(".", optFuncs...)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	ctx := docoptgen.NewCtx()

	for {
		fmt.Fprint(out, "> ")

		block, ok := readBlock(in)
		if !ok {
			return nil
		}

		ctx.Reset()

		if err := ctx.FromUsage(strings.NewReader(block)); err != nil {
			fmt.Fprintln(out, "error:", err)

			continue
		}

		driver := docoptgen.NewDriver(ctx, opts.Basename, opts.OutDir)
		if err := driver.EmitTo(out, out, out, nil); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

// readBlock accumulates lines until a blank line (on_parsed) or end of
// input, returning ok=false only once the scanner is exhausted with nothing
// left to parse.
func readBlock(in *bufio.Scanner) (string, bool) {
	var b strings.Builder

	for in.Scan() {
		line := in.Text()
		if strings.TrimSpace(line) == "" {
			if b.Len() == 0 {
				continue
			}

			return b.String(), true
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		return "", false
	}

	return b.String(), true
}
