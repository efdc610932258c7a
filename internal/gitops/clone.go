package gitops

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TokenAuth returns HTTPS basic auth for a personal access token, or nil
// when the token is empty. SSH URLs ignore it; go-git falls back to the
// ssh-agent for those.
func TokenAuth(username, token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	if username == "" {
		username = "git"
	}
	return &githttp.BasicAuth{Username: username, Password: token}
}

// Clone creates a working clone of url at dest.
func Clone(ctx context.Context, url, dest string, auth transport.AuthMethod) error {
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:  url,
		Auth: auth,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// MirrorClone creates a bare mirror clone of url at dest, carrying every
// ref. This is the backup format; RestoreClone turns it back into a working
// repository.
func MirrorClone(ctx context.Context, url, dest string, auth transport.AuthMethod) error {
	_, err := git.PlainCloneContext(ctx, dest, true, &git.CloneOptions{
		URL:    url,
		Auth:   auth,
		Mirror: true,
	})
	if err != nil {
		return fmt.Errorf("mirror clone %s: %w", url, err)
	}
	return nil
}

// RestoreClone produces a working clone at dest from a local mirror.
func RestoreClone(ctx context.Context, mirrorPath, dest string) error {
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL: mirrorPath,
	})
	if err != nil {
		return fmt.Errorf("restore from %s: %w", mirrorPath, err)
	}
	return nil
}

// Pull fetches and integrates changes from origin. Returns true when new
// commits arrived, false when the tree was already current.
func Pull(ctx context.Context, path string, auth transport.AuthMethod) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, err
	}
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin", Auth: auth})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pull %s: %w", path, err)
	}
	return true, nil
}
