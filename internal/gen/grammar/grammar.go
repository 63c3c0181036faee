// Package grammar implements the grammar emitter (spec.md §4.F, component
// F): the most intricate of the three, it reads an *ir.Ctx and produces a
// bison/yacc grammar source with the token list, the start production, the
// per-name auxiliary rules, the per-command and per-group rules, and the
// runtime footer (error callback, cli_free, cli_parse).
package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/reeflective/docoptgen/internal/identifier"
	"github.com/reeflective/docoptgen/internal/ir"
)

// Emit writes the grammar source for ctx to out.
func Emit(out io.Writer, ctx *ir.Ctx, basename string) error {
	var b strings.Builder

	writeHeader(&b, ctx, basename)
	fmt.Fprintf(&b, "%%%%\n\n")
	writeStart(&b, ctx)
	writeAuxRules(&b, ctx)
	writeCommandAndGroupRules(&b, ctx)
	fmt.Fprintf(&b, "%%%%\n")
	writeFooter(&b, ctx)

	_, err := io.WriteString(out, b.String())

	return err
}

// writeStart emits the `commands: cmd1 | cmd2 | ...` start production
// (spec.md §4.F "Start production").
func writeStart(b *strings.Builder, ctx *ir.Ctx) {
	for i := range ctx.Commands {
		if i == 0 {
			fmt.Fprintf(b, "commands: cmd%d\n", i+1)
		} else {
			fmt.Fprintf(b, "        | cmd%d\n", i+1)
		}
	}

	fmt.Fprintf(b, "\n")
}

// writeAuxRules emits the per-name auxiliary rules table of spec.md §4.F:
// one stanza per dedup entry that carries HasValue and/or Array.
func writeAuxRules(b *strings.Builder, ctx *ir.Ctx) {
	ctx.EachDedup(func(n *ir.NamedArg) {
		lower := identifier.Lower(n.Name)
		upper := identifier.Upper(n.Name)
		storeFn := "CLI_STRDUP"

		if n.Flags.Has(ir.Array) {
			storeFn = "CLI_STRDUP_ARR"
		}

		switch {
		case n.Flags.Has(ir.HasValue):
			pad := strings.Repeat(" ", len(lower))
			fmt.Fprintf(b, "%s: %s WORD { %s(cli, %s, $2); }\n", lower, upper, storeFn, lower)
			fmt.Fprintf(b, "%s| %s '=' WORD { %s(cli, %s, $3); }\n\n", pad, upper, storeFn, lower)
		case n.Flags.Has(ir.Array):
			pad := strings.Repeat(" ", len(lower))
			fmt.Fprintf(b, "%s: WORD { %s(cli, %s, $1); }\n", lower, storeFn, lower)
			fmt.Fprintf(b, "%s| %s WORD { %s(cli, %s, $2); }\n\n", pad, lower, storeFn, lower)
		}

		if n.Flags.Has(ir.HasValue) && n.Flags.Has(ir.Array) {
			pad := strings.Repeat(" ", len(lower)+4)
			fmt.Fprintf(b, "%s-arr: %s\n", lower, lower)
			fmt.Fprintf(b, "%s| %s-arr %s\n\n", pad, lower, lower)
		}
	})
}

// dumpArg emits one child of a command/group rule's right-hand side,
// matching original_source's yacc_dumparg. refs is the per-command counter
// of fresh $-back-references used for inline WORD actions; it is returned
// incremented by however many references this call consumed.
func dumpArg(b *strings.Builder, ctx *ir.Ctx, arg *ir.Arg, refs int) int {
	lower := identifier.Lower(arg.Name)

	switch {
	case arg.Kind.IsGroup():
		b.WriteString(arg.Name)

		return refs
	case arg.Kind == ir.Str:
		arr := ctx.IsArrayShaped(arg.Name)

		switch {
		case arr && arg.Flags.Has(ir.HasValue):
			// Intermediate rule with '-arr' suffix covers repeating
			// strings with values.
			fmt.Fprintf(b, "%s-arr", lower)
		case arr || arg.Flags.Has(ir.HasValue):
			b.WriteString(lower)
		default:
			refs++

			storeFn := "CLI_STRDUP"
			if arr {
				storeFn = "CLI_STRDUP_ARR"
			}

			fmt.Fprintf(b, "WORD[ref%d] { %s(cli, %s, $<str>ref%d); }", refs, storeFn, lower, refs)
		}

		return refs
	default: // ir.Flag
		upper := identifier.Upper(arg.Name)
		fmt.Fprintf(b, "%s { cli->%s = 1; }", upper, lower)

		return refs
	}
}

// writeCommandAndGroupRules emits, for every command, its top-level rule
// followed by its optional-group rules and its required-group rules, in
// that order — matching original_source's yacc_dump loop structure.
func writeCommandAndGroupRules(b *strings.Builder, ctx *ir.Ctx) {
	for icmd, cmd := range ctx.Commands {
		writeCommandRule(b, ctx, icmd+1, cmd)

		for _, grp := range cmd.OptGroups {
			writeOptGroupRule(b, ctx, grp)
		}

		for _, grp := range cmd.ReqGroups {
			writeReqGroupRule(b, ctx, grp)
		}
	}
}

// writeCommandRule emits `cmd<I>: child1 child2 ...`, splitting into a new
// `|`-prefixed alternative at every Separator-flagged child (and at the
// final child, to terminate the last alternative), aligned under the rule
// name the way original_source's yacc_dump does via cmdlen-2 padding.
func writeCommandRule(b *strings.Builder, ctx *ir.Ctx, index int, cmd *ir.Cmd) {
	refs := 0
	sep := false
	cmdLen := 0

	for i, arg := range cmd.TopLevel {
		switch {
		case i == 0:
			n, _ := fmt.Fprintf(b, "cmd%d: ", index)
			cmdLen = n
		case sep:
			sep = false
			fmt.Fprintf(b, "%s| ", strings.Repeat(" ", cmdLen-2))
		}

		refs = dumpArg(b, ctx, arg, refs)

		if arg.Flags.Has(ir.Separator) || i == len(cmd.TopLevel)-1 {
			sep = true
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	b.WriteString("\n")
}

// writeOptGroupRule emits an optional-group rule. Its first alternative is
// always empty. If any child carries Separator, each child becomes its own
// independent `| grp child` alternative (set of independent optionals);
// otherwise the whole child sequence is one optional alternative.
func writeOptGroupRule(b *strings.Builder, ctx *ir.Ctx, grp *ir.Arg) {
	asIndependent := false

	for _, child := range grp.Children {
		if child.Flags.Has(ir.Separator) {
			asIndependent = true

			break
		}
	}

	refs := 0
	sep := false
	pad := strings.Repeat(" ", len(grp.Name)-1)

	for i, child := range grp.Children {
		switch {
		case i == 0:
			fmt.Fprintf(b, "%s:\n%s | ", grp.Name, pad)

			if asIndependent {
				fmt.Fprintf(b, "%s ", grp.Name)
			}
		case sep:
			sep = false
			fmt.Fprintf(b, "%s | %s ", pad, grp.Name)
		}

		refs = dumpArg(b, ctx, child, refs)

		if asIndependent || i == len(grp.Children)-1 {
			sep = true
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	b.WriteString("\n")
}

// writeReqGroupRule emits a required-group rule: `grp: child1 child2 ...`,
// with Separator-flagged children introducing `|` alternatives. Every
// alternative is a complete sequence.
func writeReqGroupRule(b *strings.Builder, ctx *ir.Ctx, grp *ir.Arg) {
	refs := 0
	sep := false
	pad := strings.Repeat(" ", len(grp.Name))

	for i, child := range grp.Children {
		switch {
		case i == 0:
			fmt.Fprintf(b, "%s: ", grp.Name)
		case sep:
			sep = false
			fmt.Fprintf(b, "%s| ", pad)
		}

		refs = dumpArg(b, ctx, child, refs)

		if child.Flags.Has(ir.Separator) || i == len(grp.Children)-1 {
			sep = true
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	b.WriteString("\n")
}
