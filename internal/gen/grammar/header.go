package grammar

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/reeflective/docoptgen/internal/identifier"
	"github.com/reeflective/docoptgen/internal/ir"
)

const headerTmplText = `/*
 * This is bison grammar for command line interface parser
 * generated by docoptgen.
 */

%{
#include <stdio.h>
#include <string.h>
#include <errno.h>

static int error;

int yyargc;
int yycurarg;
char **yyargv;

struct cli;

int yylex(struct cli *cli);
void yyerror(struct cli *cli, const char *err);
int yylex_destroy(void);

typedef struct yy_buffer_state* YY_BUFFER_STATE;
void yy_switch_to_buffer(YY_BUFFER_STATE buf);
YY_BUFFER_STATE yy_scan_string(const char *yy_str);

#define CLI_STRDUP(ptr, member, str) ({		\
	(ptr)->member = strdup(str);		\
	if (!(ptr)->member)			\
		return -ENOMEM;			\
});

#define CLI_STRDUP_ARR(ptr, member, str) ({			\
	char **newarr;						\
	size_t oldsz, num;					\
								\
	num = (ptr)->member ## _num;				\
	oldsz = sizeof(*newarr) * num;				\
	newarr = malloc(sizeof(*newarr) + oldsz);		\
	if (!newarr)						\
		return -ENOMEM;					\
	if (oldsz)						\
		memcpy(newarr, (ptr)->member ## _arr, oldsz);	\
	free((ptr)->member ## _arr);				\
	(ptr)->member ## _arr = newarr;				\
	(ptr)->member ## _arr[num] = strdup(str);		\
	if (!(ptr)->member ## _arr[num])			\
		return -ENOMEM;					\
	(ptr)->member ## _num += 1;				\
});

%}
#include "{{.Basename}}.h"
%code requires {
}
%parse-param { struct cli *cli }
%lex-param { struct cli *cli }
%union {
	const char *str;
}
%define parse.error verbose

%start commands

%token <str> WORD{{range .Tokens}} {{.}}{{end}}
`

var headerTmpl = template.Must(template.New("grammar-header").Parse(headerTmplText))

// writeHeader emits the %{...%} prologue, %code requires, %union and token
// declarations (spec.md §4.F "Tokens"; original_source's yacc_dumpheader +
// yacc_dumptokens).
func writeHeader(b *strings.Builder, ctx *ir.Ctx, basename string) {
	var tokens []string

	ctx.EachDedup(func(n *ir.NamedArg) {
		if n.Kind == ir.Flag || n.Flags.Has(ir.HasValue) {
			tokens = append(tokens, identifier.Upper(n.Name))
		}
	})

	if err := headerTmpl.Execute(b, struct {
		Basename string
		Tokens   []string
	}{basename, tokens}); err != nil {
		// template execution against a strings.Builder cannot fail.
		panic(fmt.Sprintf("grammar: header template: %v", err))
	}
}
