package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/docoptgen/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	opts, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "cli", opts.Basename)
	assert.Equal(t, dir, opts.OutDir)
	assert.False(t, opts.Interactive)
}

func TestOptFuncsOverrideDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	opts, err := config.New(dir,
		config.WithBasename("mytool"),
		config.WithInteractive(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "mytool", opts.Basename)
	assert.True(t, opts.Interactive)
}

func TestSidecarYAMLIsAppliedBeforeOptFuncs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".docoptgen.yaml"),
		[]byte("basename: fromyaml\n"),
		0o600,
	))

	opts, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "fromyaml", opts.Basename)

	opts, err = config.New(dir, config.WithBasename("override"))
	require.NoError(t, err)
	assert.Equal(t, "override", opts.Basename)
}

func TestInvalidBasenameFailsValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := config.New(dir, config.WithBasename("not valid!"))
	require.Error(t, err)
}
