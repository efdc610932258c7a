// Package gitops wraps go-git for local workspace operations. Everything
// here works on plain filesystem paths; no git binary is required.
package gitops

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// Status is a snapshot of a working tree.
type Status struct {
	Branch    string
	Clean     bool
	Staged    []string
	Modified  []string
	Untracked []string
	Remotes   map[string]string // remote name to first URL
}

// IsRepo reports whether path contains a git repository.
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// Inspect opens the repository at path and returns its current status.
func Inspect(path string) (*Status, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	st := &Status{Remotes: map[string]string{}}

	head, err := repo.Head()
	if err == nil {
		st.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	ws, err := wt.Status()
	if err != nil {
		return nil, err
	}
	st.Clean = ws.IsClean()
	for file, fs := range ws {
		switch {
		case fs.Staging == git.Untracked:
			st.Untracked = append(st.Untracked, file)
		case fs.Staging != git.Unmodified:
			st.Staged = append(st.Staged, file)
		case fs.Worktree != git.Unmodified:
			st.Modified = append(st.Modified, file)
		}
	}
	sort.Strings(st.Staged)
	sort.Strings(st.Modified)
	sort.Strings(st.Untracked)

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, err
	}
	for _, r := range remotes {
		urls := r.Config().URLs
		if len(urls) > 0 {
			st.Remotes[r.Config().Name] = urls[0]
		}
	}
	return st, nil
}

// HasRemote reports whether the repository at path has at least one remote.
func HasRemote(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, err
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return false, err
	}
	return len(remotes) > 0, nil
}
