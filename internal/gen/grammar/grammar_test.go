package grammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/docoptgen/internal/gen/grammar"
	"github.com/reeflective/docoptgen/internal/ir"
)

// TestSingleFlag is spec scenario 1.
func TestSingleFlag(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()
	ctx.NewCmd()
	_, err := ctx.PushArg(ir.Flag, 0, "--version")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, "commands: cmd1\n")
	assert.Contains(t, body, "cmd1: VERSION { cli->version = 1; }")
	assert.Contains(t, body, "%token <str> WORD VERSION")
}

// TestOptionWithValue is spec scenario 2.
func TestOptionWithValue(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()
	ctx.NewCmd()
	_, err := ctx.PushArg(ir.Str, ir.HasValue, "--out")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, "out: OUT WORD { CLI_STRDUP(cli, out, $2); }\n")
	assert.Contains(t, body, "   | OUT '=' WORD { CLI_STRDUP(cli, out, $3); }\n")
	assert.Contains(t, body, "cmd1: out")
}

// TestRepeatableString is spec scenario 3.
func TestRepeatableString(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()
	ctx.NewCmd()
	_, err := ctx.PushArg(ir.Str, ir.Array, "WORD")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, "word: WORD { CLI_STRDUP_ARR(cli, word, $1); }\n")
	assert.Contains(t, body, "    | word WORD { CLI_STRDUP_ARR(cli, word, $2); }\n")
	assert.Contains(t, body, "unsigned i;")
	assert.Contains(t, body, "for (i = 0; i < cli->word_num; i++)")
}

// TestTwoCommandsSharingName is spec scenario 4.
func TestTwoCommandsSharingName(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()

	ctx.NewCmd()
	_, err := ctx.PushArg(ir.Flag, 0, "add")
	require.NoError(t, err)
	_, err = ctx.PushArg(ir.Str, 0, "NAME")
	require.NoError(t, err)

	ctx.NewCmd()
	_, err = ctx.PushArg(ir.Flag, 0, "rm")
	require.NoError(t, err)
	_, err = ctx.PushArg(ir.Str, 0, "NAME")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, "commands: cmd1\n        | cmd2\n")
}

// TestOptionalGroupWithSeparator is spec scenario 6.
func TestOptionalGroupWithSeparator(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()
	ctx.NewCmd()

	grp, err := ctx.PushArg(ir.OptGroup, 0, "")
	require.NoError(t, err)

	_, err = ctx.PushArg(ir.Flag, 0, "-a")
	require.NoError(t, err)
	require.NoError(t, ctx.SetFlag(ir.Separator))

	_, err = ctx.PushArg(ir.Flag, 0, "-b")
	require.NoError(t, err)

	require.NoError(t, ctx.PopGroup())

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, grp.Name+":\n")
	assert.Contains(t, body, "A { cli->a = 1; }")
	assert.Contains(t, body, "| "+grp.Name+" B { cli->b = 1; }")
}

// TestArrayShapeSourceOfTruthIsDedupEntry resolves the Open Question of
// spec.md §9: a Str occurrence that is not itself Array-flagged, but whose
// dedup entry is (because another command's occurrence is), still gets the
// array-shaped aux rule rather than an inline STRDUP.
func TestArrayShapeSourceOfTruthIsDedupEntry(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()

	ctx.NewCmd()
	_, err := ctx.PushArg(ir.Str, ir.Array, "FILE")
	require.NoError(t, err)

	ctx.NewCmd()
	_, err = ctx.PushArg(ir.Str, 0, "FILE")
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, "cmd2: file\n")
	assert.NotContains(t, body, "WORD[ref1] { CLI_STRDUP(cli, file")
}

// TestRequiredGroupEmitsSequenceAlternatives checks a required group with
// two separator-delimited full sequences.
func TestRequiredGroupEmitsSequenceAlternatives(t *testing.T) {
	t.Parallel()

	ctx := ir.NewCtx()
	ctx.NewCmd()

	grp, err := ctx.PushArg(ir.ReqGroup, 0, "")
	require.NoError(t, err)

	_, err = ctx.PushArg(ir.Flag, 0, "-a")
	require.NoError(t, err)
	require.NoError(t, ctx.SetFlag(ir.Separator))

	_, err = ctx.PushArg(ir.Flag, 0, "-b")
	require.NoError(t, err)

	require.NoError(t, ctx.PopGroup())

	var out strings.Builder
	require.NoError(t, grammar.Emit(&out, ctx, "tool"))

	body := out.String()
	assert.Contains(t, body, grp.Name+": A { cli->a = 1; }\n")
	// The continuation "|" is right-justified in a field one wider than
	// grp.Name, i.e. padded by exactly len(grp.Name) spaces before it,
	// mirroring original_source's `"%*s "` with width strlen(grp->name)+1
	// applied to the 1-char string "|" (width includes the "|" itself).
	pad := strings.Repeat(" ", len(grp.Name))
	assert.Contains(t, body, pad+"| B { cli->b = 1; }\n")
	assert.NotContains(t, body, pad+" | B { cli->b = 1; }\n")
}
