// Package git locates the project work tree and reports the revision the
// build configuration was resolved from.
package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Info holds information about the repository containing the project.
type Info struct {
	// Root is the top-level directory of the work tree
	Root string
	// CommitHash is the current HEAD commit hash, empty before the first commit
	CommitHash string
	// Branch is the current branch name
	Branch string
	// IsDirty indicates if the working tree has uncommitted changes
	IsDirty bool
}

// ShortHash returns the first 7 characters of the commit hash.
func (i *Info) ShortHash() string {
	if len(i.CommitHash) < 7 {
		return i.CommitHash
	}
	return i.CommitHash[:7]
}

// FindProjectRoot returns the root of the work tree that path belongs to,
// seeking upwards for a .git directory.
func FindProjectRoot(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree for repository %q: %w", path, err)
	}
	return worktree.Filesystem.Root(), nil
}

// GetInfo reports root, HEAD and dirty state of the repository
// containing path.
func GetInfo(path string) (*Info, error) {
	repo, err := open(path)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree for repository %q: %w", path, err)
	}

	info := &Info{Root: worktree.Filesystem.Root()}

	// A fresh repository has no HEAD yet; report it as dirty-free and unnamed.
	if headRef, err := repo.Head(); err == nil {
		info.CommitHash = headRef.Hash().String()
		info.Branch = headRef.Name().Short()
	}

	// Check if there is any uncommitted change in the working tree
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status for repository %q: %w", path, err)
	}
	info.IsDirty = !status.IsClean()

	return info, nil
}

func open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to find a Git repository that path %q belongs to: %w", path, err)
	}
	return repo, nil
}
