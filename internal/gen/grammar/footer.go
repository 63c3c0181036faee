package grammar

import (
	"fmt"
	"strings"

	"github.com/reeflective/docoptgen/internal/identifier"
	"github.com/reeflective/docoptgen/internal/ir"
)

// writeFooter emits the error callback, cli_free, cli_parse, and the
// #ifdef MAIN_EXAMPLE demo main (spec.md §4.F "Footer"; original_source's
// yacc_dumpfooter, including the argc==1 bootstrap of SPEC_FULL.md §12.2).
func writeFooter(b *strings.Builder, ctx *ir.Ctx) {
	fmt.Fprintf(b, "\n")
	fmt.Fprintf(b, "void yyerror(struct cli *cli, const char *errstr)\n{\n")
	fmt.Fprintf(b, "\tif (yycurarg >= yyargc)\n")
	fmt.Fprintf(b, "\t\tfprintf(stderr, \"\\nError: required parameter is missing\\n\\n\");\n")
	fmt.Fprintf(b, "\telse\n")
	fmt.Fprintf(b, "\t\tfprintf(stderr, \"\\nError: %%d parameter '%%s' is incorrect\\n\\n\",\n")
	fmt.Fprintf(b, "\t\t\tyycurarg, yyargv[yycurarg]);\n")
	fmt.Fprintf(b, "\terror = -1;\n}\n\n")

	fmt.Fprintf(b, "void cli_free(struct cli *cli)\n{\n")

	if ctx.HaveArrays {
		fmt.Fprintf(b, "\tunsigned i;\n\n")
	}

	ctx.EachDedup(func(n *ir.NamedArg) {
		if n.Kind != ir.Str {
			return
		}

		lower := identifier.Lower(n.Name)

		if n.Flags.Has(ir.Array) {
			fmt.Fprintf(b, "\tfor (i = 0; i < cli->%s_num; i++)\n", lower)
			fmt.Fprintf(b, "\t\tfree(cli->%s_arr[i]);\n", lower)
			fmt.Fprintf(b, "\tfree(cli->%s_arr);\n", lower)
		} else {
			fmt.Fprintf(b, "\tfree(cli->%s);\n", lower)
		}
	})

	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "int cli_parse(int argc, char **argv, struct cli *cli)\n{\n")
	fmt.Fprintf(b, "\tstatic char *empty_argv[] = {\"\"};\n")
	fmt.Fprintf(b, "\tYY_BUFFER_STATE buf;\n")

	if ctx.HaveArrays {
		fmt.Fprintf(b, "\tint rc, i;\n")
	} else {
		fmt.Fprintf(b, "\tint rc;\n")
	}

	fmt.Fprintf(b, "\n\tmemset(cli, 0, sizeof(*cli));\n\n")
	fmt.Fprintf(b, "\tif (argc < 1)\n\t\treturn -1;\n")
	fmt.Fprintf(b, "\telse if (argc == 1) {\n")
	fmt.Fprintf(b, "\t\tyycurarg = 0;\n\t\tyyargc = 1;\n\t\tyyargv = empty_argv;\n")
	fmt.Fprintf(b, "\t} else {\n")
	fmt.Fprintf(b, "\t\tyycurarg = 1;\n\t\tyyargc = argc;\n\t\tyyargv = argv;\n\t}\n\n")
	fmt.Fprintf(b, "\tbuf = yy_scan_string(yyargv[yycurarg]);\n")
	fmt.Fprintf(b, "\tif (buf == NULL)\n\t\treturn -1;\n")
	fmt.Fprintf(b, "\tyy_switch_to_buffer(buf);\n")
	fmt.Fprintf(b, "\tyyparse(cli);\n")
	fmt.Fprintf(b, "\tyylex_destroy();\n\n")
	fmt.Fprintf(b, "\tif (error)\n\t\tcli_free(cli);\n\n")
	fmt.Fprintf(b, "\treturn error;\n}\n\n")

	fmt.Fprintf(b, "#ifdef MAIN_EXAMPLE\n")
	fmt.Fprintf(b, "int main(int argc, char **argv)\n{\n")
	fmt.Fprintf(b, "\tstruct cli cli;\n")

	if ctx.HaveArrays {
		fmt.Fprintf(b, "\tint rc, i;\n")
	} else {
		fmt.Fprintf(b, "\tint rc;\n")
	}

	fmt.Fprintf(b, "\n\trc = cli_parse(argc, argv, &cli);\n")
	fmt.Fprintf(b, "\tif (rc) {\n\t\tfprintf(stderr, \"%%s\\n\", cli_usage);\n\t\treturn -1;\n\t}\n\n")

	ctx.EachDedup(func(n *ir.NamedArg) {
		lower := identifier.Lower(n.Name)

		switch {
		case n.Kind == ir.Str && n.Flags.Has(ir.Array):
			fmt.Fprintf(b, "\tfor (i = 0; i < cli.%s_num; i++)\n", lower)
			fmt.Fprintf(b, "\t\tprintf(\"'%s_arr[%%d]' = '%%s'\\n\", i, cli.%s_arr[i]);\n", lower, lower)
		case n.Kind == ir.Str:
			fmt.Fprintf(b, "\tprintf(\"'%s' = '%%s'\\n\", cli.%s);\n", lower, lower)
		default:
			fmt.Fprintf(b, "\tprintf(\"'%s' = '%%d'\\n\", cli.%s);\n", lower, lower)
		}
	})

	fmt.Fprintf(b, "\n\tcli_free(&cli);\n\n\treturn 0;\n}\n#endif\n")
}
