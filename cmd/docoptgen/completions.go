package main

import (
	carapace "github.com/rsteube/carapace"
	"github.com/spf13/cobra"
)

// registerCompletions wires the one dynamic completer this CLI surface
// actually needs: the optional [path] positional of file mode should
// complete to files on disk. SPEC_FULL.md §10.6 narrows the teacher's much
// larger carapace investment (gen/completions) to just this, since the rest
// of the command tree is static flags with nothing dynamic to complete.
func registerCompletions(cmd *cobra.Command) {
	carapace.Gen(cmd).PositionalCompletion(
		carapace.ActionFiles(),
	)
}
