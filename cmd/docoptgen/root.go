package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newRootCmd builds the docoptgen command tree, in the teacher's
// cobra+pflag idiom (gen/flags/command.go builds a tree from reflection;
// ours is small enough to hand-build directly).
func newRootCmd() *cobra.Command {
	var (
		basename    string
		outDir      string
		interactive bool
	)

	root := &cobra.Command{
		Use:   "docoptgen [path]",
		Short: "Compile a docopt-style usage description into a C scanner, grammar and header",
		Args:  cobra.MaximumNArgs(1),
		// main.go reports RunE's error itself; cobra's own usage dump and
		// "Error: ..." line would otherwise double it (spec.md §7: one
		// diagnostic per failure).
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive || len(args) == 0 {
				return runInteractive(cmd, basename, outDir)
			}

			return runFile(cmd, args[0], basename, outDir)
		},
	}

	flags := root.Flags()
	flags.StringVar(&basename, "basename", "", "basename for emitted files (default: derived from input, or \"cli\")")
	flags.StringVar(&outDir, "out", "", "output directory (default: alongside the input file, or the current directory)")
	flags.BoolVarP(&interactive, "interactive", "i", false, "read usage blocks from stdin")

	// Accept "--output-dir" as an alias for "--out".
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "output-dir" {
			name = "out"
		}

		return pflag.NormalizedName(name)
	})

	root.CompletionOptions.DisableDefaultCmd = false

	registerCompletions(root)

	return root
}
