package gitarchive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	author := Author{Name: "Tester", Email: "tester@example.com"}

	if err := os.WriteFile(path, []byte(`{"collections":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("initialises repository and commits", func(t *testing.T) {
		hash, err := Commit(path, "export all", author)
		if err != nil {
			t.Fatalf("Commit() returned an unexpected error: %v", err)
		}
		if hash == "" {
			t.Fatal("Expected a commit hash")
		}

		repo, err := git.PlainOpen(dir)
		if err != nil {
			t.Fatalf("Expected a repository at %s: %v", dir, err)
		}
		commit, err := repo.CommitObject(plumbing.NewHash(hash))
		if err != nil {
			t.Fatalf("Failed to read commit: %v", err)
		}
		if commit.Message != "export all" {
			t.Errorf("Expected message 'export all', got '%s'", commit.Message)
		}
		if commit.Author.Email != author.Email {
			t.Errorf("Expected author email '%s', got '%s'", author.Email, commit.Author.Email)
		}
	})

	t.Run("unchanged file is not committed again", func(t *testing.T) {
		hash, err := Commit(path, "export all", author)
		if err != nil {
			t.Fatalf("Commit() returned an unexpected error: %v", err)
		}
		if hash != "" {
			t.Errorf("Expected no commit for an unchanged file, got %s", hash)
		}
	})

	t.Run("changed file is committed", func(t *testing.T) {
		if err := os.WriteFile(path, []byte(`{"collections":[{"name":"Spanish"}]}`), 0o644); err != nil {
			t.Fatal(err)
		}
		hash, err := Commit(path, "export spanish", author)
		if err != nil {
			t.Fatalf("Commit() returned an unexpected error: %v", err)
		}
		if hash == "" {
			t.Error("Expected a commit for a changed file")
		}
	})
}
