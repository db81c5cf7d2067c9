package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const gitCommandTimeout = 10 * time.Second

// Commit is one entry of the git log.
type Commit struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Branch is one entry of the branch list.
type Branch struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

// RepoStatus is a parsed short status.
type RepoStatus struct {
	Modified  []string `json:"modified"`
	Added     []string `json:"added"`
	Deleted   []string `json:"deleted"`
	Untracked []string `json:"untracked"`
	Clean     bool     `json:"clean"`
}

// Git runs git commands in a repository. Read operations run directly;
// commits go through the proposal flow.
type Git struct {
	dir string
}

// NewGit creates a git tool for the given directory. An empty dir uses the
// process working directory.
func NewGit(dir string) *Git {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Git{dir: dir}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("git %s: command timed out", args[0])
	}
	if err != nil {
		return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the directory is inside a git work tree.
func (g *Git) IsRepo(ctx context.Context) bool {
	_, err := g.run(ctx, "rev-parse", "--show-toplevel")
	return err == nil
}

// Status returns a parsed short status.
func (g *Git) Status(ctx context.Context) (*RepoStatus, error) {
	out, err := g.run(ctx, "status", "--short")
	if err != nil {
		return nil, err
	}

	status := &RepoStatus{Clean: out == ""}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 3 {
			continue
		}
		name := strings.TrimSpace(line[2:])
		switch {
		case strings.HasPrefix(line, "??"):
			status.Untracked = append(status.Untracked, name)
		case strings.ContainsRune(line[:2], 'A'):
			status.Added = append(status.Added, name)
		case strings.ContainsRune(line[:2], 'D'):
			status.Deleted = append(status.Deleted, name)
		case strings.ContainsRune(line[:2], 'M'):
			status.Modified = append(status.Modified, name)
		}
	}
	return status, nil
}

// Diff returns the working tree diff, optionally limited to one file.
func (g *Git) Diff(ctx context.Context, file string) (string, error) {
	args := []string{"diff"}
	if file != "" {
		args = append(args, file)
	}
	return g.run(ctx, args...)
}

// Log returns the most recent commits.
func (g *Git) Log(ctx context.Context, count int) ([]Commit, error) {
	if count <= 0 {
		count = 5
	}
	out, err := g.run(ctx, "log", fmt.Sprintf("-%d", count), "--pretty=format:%h|%an|%ar|%s")
	if err != nil {
		return nil, err
	}

	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Time:    parts[2],
			Message: parts[3],
		})
	}
	return commits, nil
}

// Branches lists local and remote branches, marking the current one.
func (g *Git) Branches(ctx context.Context) ([]Branch, string, error) {
	out, err := g.run(ctx, "branch", "-a")
	if err != nil {
		return nil, "", err
	}

	var branches []Branch
	var current string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			current = strings.TrimSpace(line[1:])
			branches = append(branches, Branch{Name: current, Current: true})
		} else if name := strings.TrimSpace(line); name != "" {
			branches = append(branches, Branch{Name: name, Current: false})
		}
	}
	return branches, current, nil
}

// ProposeCommit builds an approval request for a commit without touching the
// repository. The preview carries counts and a diff snippet so the user can
// judge what they are approving.
func (g *Git) ProposeCommit(ctx context.Context, message string, files []string) (*Proposal, error) {
	status, err := g.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("not a git repository")
	}
	if status.Clean {
		return nil, fmt.Errorf("no changes to commit")
	}

	if len(files) == 0 {
		files = []string{"--all"}
	}

	diff, _ := g.Diff(ctx, "")
	if len(diff) > 500 {
		diff = diff[:500]
	}

	changed := append(append(append([]string{}, status.Modified...), status.Added...), status.Deleted...)
	return &Proposal{
		Type:   "approval_required",
		Tool:   ToolGit,
		Action: "commit",
		Params: map[string]any{
			"message": message,
			"files":   files,
		},
		Preview: map[string]any{
			"modified":     len(status.Modified),
			"added":        len(status.Added),
			"deleted":      len(status.Deleted),
			"files":        changed,
			"diff_snippet": diff,
		},
	}, nil
}

// ExecuteCommit stages the given files (or everything) and commits. Only
// called after the proposal has been approved.
func (g *Git) ExecuteCommit(ctx context.Context, message string, files []string) (string, error) {
	if len(files) == 0 || (len(files) == 1 && files[0] == "--all") {
		if _, err := g.run(ctx, "add", "--all"); err != nil {
			return "", err
		}
	} else {
		for _, f := range files {
			if _, err := g.run(ctx, "add", f); err != nil {
				return "", err
			}
		}
	}
	return g.run(ctx, "commit", "-m", message)
}
