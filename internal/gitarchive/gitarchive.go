// Package gitarchive records export files in a local git repository so that
// successive exports of a collection are versioned.
package gitarchive

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author identifies who commits exported files.
type Author struct {
	Name  string
	Email string
}

// Commit stages the file at path and commits it with message. The repository
// enclosing the file is used, or one is initialised in the file's directory
// if there is none. It returns the new commit hash, or "" when the file is
// unchanged since the last commit.
func Commit(path, message string, author Author) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Info("initialising export repository", "path", dir)
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return "", fmt.Errorf("failed to open repo at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree for repo at %s: %w", dir, err)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("file %s is outside the repository worktree", abs)
	}
	if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", rel, err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		slog.Info("export unchanged, nothing to commit", "file", rel)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to commit %s: %w", rel, err)
	}

	slog.Info("committed export", "file", rel, "commit", hash.String())
	return hash.String(), nil
}
