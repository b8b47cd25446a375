// Package vcs resolves the source revision an analysis ran against.
package vcs

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// shortLen matches the abbreviated hash length git itself displays.
const shortLen = 12

// Revision returns the abbreviated head commit hash for the repository
// containing path. The .git directory is detected in parent
// directories, so any path inside a checkout works.
func Revision(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve head: %w", err)
	}
	return head.Hash().String()[:shortLen], nil
}

// RevisionOrEmpty is Revision for callers that treat a missing
// repository as "no revision" rather than an error.
func RevisionOrEmpty(path string) string {
	rev, err := Revision(path)
	if err != nil {
		return ""
	}
	return rev
}
