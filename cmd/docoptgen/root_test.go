package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootHelpDoesNotPanic guards against flag shorthand conflicts the way
// the teacher's cmd/cmd_test.go does: building the tree and rendering help
// must never panic, regardless of how many flags get added later.
func TestRootHelpDoesNotPanic(t *testing.T) {
	root := newRootCmd()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("root command panicked: %v", r)
		}
	}()

	root.Flags()
	_ = root.UsageString()
}

func TestRootFileModeWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	usagePath := filepath.Join(dir, "tool.txt")

	require.NoError(t, os.WriteFile(usagePath, []byte("Usage: tool -a\n"), 0o644))

	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{usagePath})

	require.NoError(t, root.Execute())

	for _, ext := range []string{".h", ".l", ".y"} {
		_, err := os.Stat(filepath.Join(dir, "tool"+ext))
		assert.NoError(t, err, "expected tool%s to be written", ext)
	}
}

func TestRootFileModeRejectsExistingArtifact(t *testing.T) {
	dir := t.TempDir()
	usagePath := filepath.Join(dir, "tool.txt")

	require.NoError(t, os.WriteFile(usagePath, []byte("Usage: tool -a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool.h"), []byte("stale"), 0o644))

	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{usagePath})

	assert.Error(t, root.Execute())

	_, err := os.Stat(filepath.Join(dir, "tool.l"))
	assert.True(t, os.IsNotExist(err), "tool.l should not have been created once tool.h conflicted")
}

func TestRootInteractiveModeEmitsToStdout(t *testing.T) {
	dir := t.TempDir()

	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(bytes.NewBufferString("Usage: tool -a\n\n"))
	root.SetArgs([]string{"-i", "--basename", "tool", "--out", dir})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "cli_usage")
}
