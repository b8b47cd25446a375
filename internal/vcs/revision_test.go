package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()

	path := t.TempDir()
	repo, err := git.PlainInit(path, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	if err := os.WriteFile(filepath.Join(path, "README.md"), []byte("hello\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := w.Add("README.md"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	if _, err := w.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	}); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	return path
}

func TestRevision(t *testing.T) {
	path := initRepoWithCommit(t)

	rev, err := Revision(path)
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}
	if len(rev) != shortLen {
		t.Errorf("Revision() = %q, want %d hex chars", rev, shortLen)
	}

	// Nested paths resolve through parent detection.
	nested := filepath.Join(path, "sub", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}
	nestedRev, err := Revision(nested)
	if err != nil {
		t.Fatalf("Revision(nested) error = %v", err)
	}
	if nestedRev != rev {
		t.Errorf("Revision(nested) = %q, want %q", nestedRev, rev)
	}
}

func TestRevisionOrEmpty_NoRepository(t *testing.T) {
	if rev := RevisionOrEmpty(t.TempDir()); rev != "" {
		t.Errorf("RevisionOrEmpty() = %q, want empty", rev)
	}
}
