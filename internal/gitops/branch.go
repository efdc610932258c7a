package gitops

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CurrentBranch returns the short name of the branch HEAD points at.
func CurrentBranch(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Name().Short(), nil
}

// CreateBranch creates a branch at the current HEAD. With checkout set the
// working tree moves to it as well.
func CreateBranch(path, name string, checkout bool) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if checkout {
		wt, err := repo.Worktree()
		if err != nil {
			return err
		}
		return wt.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(name),
			Create: true,
		})
	}

	head, err := repo.Head()
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	return repo.Storer.SetReference(ref)
}

// SwitchBranch checks out an existing branch. A dirty working tree refuses
// the switch so local edits are never clobbered.
func SwitchBranch(path, name string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	ws, err := wt.Status()
	if err != nil {
		return err
	}
	if !ws.IsClean() {
		return fmt.Errorf("working tree has uncommitted changes, commit or stash them first")
	}
	return wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
}
