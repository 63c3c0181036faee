package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeflective/docoptgen"
	"github.com/reeflective/docoptgen/internal/config"
)

// runFile implements file mode (spec.md §6.2's `prog <path>`): read usage
// from path, emit <basename>.y/.l/.h next to it.
func runFile(cmd *cobra.Command, path, basename, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var optFuncs []config.OptFunc
	if basename != "" {
		optFuncs = append(optFuncs, config.WithBasename(basename))
	} else {
		optFuncs = append(optFuncs, config.WithBasename(basenameFromPath(path)))
	}

	if outDir != "" {
		optFuncs = append(optFuncs, config.WithOutDir(outDir))
	}

	opts, err := config.New(dir, optFuncs...)
	if err != nil {
		return err
	}

	ctx := docoptgen.NewCtx()
	if err := ctx.FromUsage(f); err != nil {
		return err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	driver := docoptgen.NewDriver(ctx, opts.Basename, opts.OutDir)
	if err := driver.Emit(f); err != nil {
		return err
	}

	cmd.PrintErrf("wrote %s.{h,l,y} in %s\n", opts.Basename, opts.OutDir)

	return nil
}

// basenameFromPath derives a default basename from the input file name,
// stripping its extension, falling back to "cli" for an empty/dot-only name
// (config.New's own default).
func basenameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == "" {
		return "cli"
	}

	return base
}
