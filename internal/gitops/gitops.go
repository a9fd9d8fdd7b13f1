// Package gitops commits ledger changes to the repo's git history.
package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author is the identity recorded on ledger commits.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Repo runs git inside one ledger directory.
type Repo struct {
	Dir    string
	Author Author
}

// Init initializes a new git repository at r.Dir.
func (r Repo) Init(ctx context.Context) error {
	if _, err := r.git(ctx, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// CommitAll stages every change and commits. Returns the short hash.
func (r Repo) CommitAll(ctx context.Context, message string) (string, error) {
	return r.Commit(ctx, message, "-A")
}

// Commit stages the given paths and commits. Returns the short hash.
func (r Repo) Commit(ctx context.Context, message string, paths ...string) (string, error) {
	args := append([]string{"add"}, paths...)
	if _, err := r.git(ctx, args...); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}
	if _, err := r.git(ctx, "commit", "--quiet", "-m", message, "--author", r.Author.String()); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	return r.Head(ctx)
}

// Head returns the short hash of HEAD.
func (r Repo) Head(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether r.Dir is the root of a git repository.
func (r Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

func (r Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	// The committer falls back to the author so commits work without a
	// global git identity.
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+r.Author.Name,
		"GIT_COMMITTER_EMAIL="+r.Author.Email,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(out.String()), err)
	}
	return out.String(), nil
}
