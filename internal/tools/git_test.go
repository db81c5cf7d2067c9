package tools

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) *Git {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	return NewGit(dir)
}

func TestGitIsRepo(t *testing.T) {
	g := initRepo(t)
	assert.True(t, g.IsRepo(context.Background()))

	assert.False(t, NewGit(t.TempDir()).IsRepo(context.Background()))
}

func TestGitStatusAndCommit(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(g.dir, "a.txt"), []byte("hello\n"), 0o644))

	status, err := g.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Clean)
	assert.Contains(t, status.Untracked, "a.txt")

	out, err := g.ExecuteCommit(ctx, "add a.txt", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "add a.txt")

	status, err = g.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Clean)

	commits, err := g.Log(ctx, 5)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "add a.txt", commits[0].Message)
}

func TestGitProposeCommit(t *testing.T) {
	g := initRepo(t)
	ctx := context.Background()

	_, err := g.ProposeCommit(ctx, "nothing yet", nil)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(g.dir, "b.txt"), []byte("data\n"), 0o644))

	proposal, err := g.ProposeCommit(ctx, "add b.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "approval_required", proposal.Type)
	assert.Equal(t, ToolGit, proposal.Tool)
	assert.Equal(t, "commit", proposal.Action)
	assert.Equal(t, "add b.txt", proposal.Params["message"])
}
