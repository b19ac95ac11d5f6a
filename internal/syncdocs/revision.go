package syncdocs

import (
	"errors"
	"fmt"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// SourceRevision returns the HEAD commit hash of the git checkout that
// contains dir. A directory outside any repository yields "" and no error.
func SourceRevision(dir string) (string, error) {
	repo, err := ggit.PlainOpenWithOptions(dir, &ggit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, ggit.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("open repository for %s: %w", dir, err)
	}
	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Fresh repository without commits.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve HEAD for %s: %w", dir, err)
	}
	return ref.Hash().String(), nil
}
