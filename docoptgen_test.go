package docoptgen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/docoptgen"
)

func TestEndToEndSingleFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	usageText := "Usage: tool --version\n"

	ctx := docoptgen.NewCtx()
	require.NoError(t, ctx.FromUsage(strings.NewReader(usageText)))

	driver := docoptgen.NewDriver(ctx, "tool", dir)
	require.NoError(t, driver.Emit(strings.NewReader(usageText)))

	header, err := os.ReadFile(filepath.Join(dir, "tool.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "unsigned version;")

	scanner, err := os.ReadFile(filepath.Join(dir, "tool.l"))
	require.NoError(t, err)
	assert.Contains(t, string(scanner), `"--version" { return VERSION; }`)

	grammar, err := os.ReadFile(filepath.Join(dir, "tool.y"))
	require.NoError(t, err)
	assert.Contains(t, string(grammar), "cmd1: VERSION { cli->version = 1; }")
}

func TestEmitFailsOnEmptySpec(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := docoptgen.NewCtx()
	driver := docoptgen.NewDriver(ctx, "tool", dir)

	err := driver.Emit(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, docoptgen.ErrEmptySpec)
}

func TestEmitRejectsExistingOutputFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool.h"), []byte("existing"), 0o600))

	ctx := docoptgen.NewCtx()
	require.NoError(t, ctx.FromUsage(strings.NewReader("Usage: tool --version\n")))

	driver := docoptgen.NewDriver(ctx, "tool", dir)
	err := driver.Emit(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, docoptgen.ErrOutputConflict)

	// A pre-existing file must not be clobbered, and no sibling artifact
	// should be left behind either.
	content, readErr := os.ReadFile(filepath.Join(dir, "tool.h"))
	require.NoError(t, readErr)
	assert.Equal(t, "existing", string(content))

	_, err = os.Stat(filepath.Join(dir, "tool.l"))
	assert.True(t, os.IsNotExist(err))
}

func TestDirectBuildEventInterfaceResetIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := docoptgen.NewCtx()
	ctx.NewCmd()
	require.NoError(t, ctx.PushArg(docoptgen.Flag, 0, "--verbose"))

	ctx.Reset()
	ctx.Reset()

	ctx.NewCmd()
	require.NoError(t, ctx.PushArg(docoptgen.Flag, 0, "--verbose"))
}
