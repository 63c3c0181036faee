// Package scanner implements the scanner emitter (spec.md §4.E, component
// E): it reads an *ir.Ctx and produces the flex scanner source matching
// every literal flag/option token, plus the WORD catch-all and the
// argv-advancing end-of-input handler.
package scanner

import (
	"fmt"
	"io"
	"text/template"

	"github.com/reeflective/docoptgen/internal/identifier"
	"github.com/reeflective/docoptgen/internal/ir"
)

const tmplText = `/*
 * This is lex scanner for command line interface parser
 * generated by docoptgen.
 */

%{
#include "{{.Basename}}.tab.h"

extern int yycurarg;
extern int yyargc;
extern char **yyargv;

%}

%option nounput
%option noinput
%option nodefault

%%

 /* single character ops */
"=" { return yytext[0]; }

{{range .Patterns}}{{.}}
{{end}}
[^ \t\n=]+  { yylval.str = yytext; return WORD; }
[ \t]       { /* ignore whitespace */ }
\n          { yyterminate(); }

<<EOF>> {
	YY_BUFFER_STATE buf;

	/* Just take another string from an argument array */

	if (++yycurarg == yyargc)
		yyterminate();

	yy_delete_buffer(YY_CURRENT_BUFFER);
	buf = yy_scan_string(yyargv[yycurarg]);
	if (buf == NULL)
		yyterminate();
	yy_switch_to_buffer(buf);
}
%%

int yywrap(void)
{
	/*
	 * With '%option noyywrap' flex can generate code which
	 * gcc does not like and complains with '"yywrap" redefined'.
	 */
	return 1;
}
`

var tmpl = template.Must(template.New("scanner").Parse(tmplText))

type view struct {
	Basename string
	Patterns []string
}

// Emit writes the scanner source for ctx to out. Token pattern order is
// dedup iteration order (spec.md §4.E).
func Emit(out io.Writer, ctx *ir.Ctx, basename string) error {
	v := view{Basename: basename}

	ctx.EachDedup(func(n *ir.NamedArg) {
		if n.Kind == ir.Flag || n.Flags.Has(ir.HasValue) {
			v.Patterns = append(v.Patterns,
				fmt.Sprintf("%q { return %s; }", n.Name, identifier.Upper(n.Name)))
		}
	})

	return tmpl.Execute(out, v)
}
