// Package header implements the header emitter (spec.md §4.D, component D):
// it reads an *ir.Ctx and produces the C header declaring the `cli` result
// struct, the `cli_usage` string literal, and the parse/free entry points.
package header

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/reeflective/docoptgen/internal/identifier"
	"github.com/reeflective/docoptgen/internal/ir"
)

const tmplText = `/*
 * This is common header for command line interface parser
 * generated by docoptgen.
 */

#ifndef __{{.Guard}}_H__
#define __{{.Guard}}_H__

struct cli {
{{- range .StrFields}}
{{.}}
{{- end}}
{{- range .FlagFields}}
{{.}}
{{- end}}
};

{{.Usage}}

int cli_parse(int argc, char **argv, struct cli *cli);
void cli_free(struct cli *cli);

#endif /* __{{.Guard}}_H__ */
`

var tmpl = template.Must(template.New("header").Parse(tmplText))

type view struct {
	Guard      string
	StrFields  []string
	FlagFields []string
	Usage      string
}

// Emit writes the header for ctx to out. basename seeds the include guard
// and, in file mode, usage is re-read verbatim from in (nil in interactive
// mode, in which case a placeholder literal is emitted — original_source's
// hdr_dumpusage behavior).
func Emit(out io.Writer, ctx *ir.Ctx, basename string, in io.Reader) error {
	v := view{Guard: identifier.Upper(basename)}

	// First pass: every Str entry (spec.md §4.D.3).
	ctx.EachDedup(func(n *ir.NamedArg) {
		if n.Kind != ir.Str {
			return
		}

		lower := identifier.Lower(n.Name)
		if n.Flags.Has(ir.Array) {
			v.StrFields = append(v.StrFields,
				fmt.Sprintf("\tchar **%s_arr;\n\tunsigned %s_num;", lower, lower))
		} else {
			v.StrFields = append(v.StrFields, fmt.Sprintf("\tchar *%s;", lower))
		}
	})

	// Second pass: every Flag entry.
	ctx.EachDedup(func(n *ir.NamedArg) {
		if n.Kind != ir.Flag {
			return
		}

		v.FlagFields = append(v.FlagFields, fmt.Sprintf("\tunsigned %s;", identifier.Lower(n.Name)))
	})

	usage, err := dumpUsage(in)
	if err != nil {
		return err
	}

	v.Usage = usage

	return tmpl.Execute(out, v)
}

// dumpUsage reads the original usage text line by line and builds the
// cli_usage string literal, or emits the interactive-mode placeholder if in
// is nil, matching original_source's hdr_dumpusage.
func dumpUsage(in io.Reader) (string, error) {
	if in == nil {
		return "/* TODO: extract interactive input from lex */\nstatic const char * const cli_usage = \"Usage: CMD\";", nil
	}

	var b strings.Builder

	b.WriteString("static const char * const cli_usage =")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fmt.Fprintf(&b, "\n\t\"%s\\n\"", scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	b.WriteString(";")

	return b.String(), nil
}
