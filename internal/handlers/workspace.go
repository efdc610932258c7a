package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/gitops"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerWorkspaceTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_workspace_repos",
		Summary: "List all repositories in the workspace",
		Handler: d.listWorkspaceRepos,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "clone_repository",
		Summary: "Clone a repository to the workspace",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "use_ssh", Type: tool.TypeBool, Default: true, Description: "Use SSH URL (default) or HTTPS"},
			{Name: "destination", Type: tool.TypeString, Description: "Optional custom destination path"},
		},
		Handler: d.cloneRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "pull_repository",
		Summary: "Pull latest changes from remote",
		Params: []tool.Param{
			{Name: "repo_path", Type: tool.TypeString, Required: true, Description: "Path to repository, relative to workspace or absolute"},
		},
		Handler: d.pullRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "get_repository_status",
		Summary: "Get git status for a repository",
		Params: []tool.Param{
			{Name: "repo_path", Type: tool.TypeString, Required: true, Description: "Path to repository, relative to workspace or absolute"},
		},
		Handler: d.getRepositoryStatus,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "sync_all_repositories",
		Summary: "Pull latest changes for all workspace repositories",
		Handler: d.syncAllRepositories,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "delete_workspace_repo",
		Summary: "Delete a repository from the workspace",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository directory name"},
			{Name: "confirm", Type: tool.TypeBool, Default: false, Description: "Must be true to actually delete"},
		},
		Handler: d.deleteWorkspaceRepo,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_branch",
		Summary: "Create a new branch in a repository",
		Params: []tool.Param{
			{Name: "repo_path", Type: tool.TypeString, Required: true, Description: "Path to repository, relative to workspace or absolute"},
			{Name: "branch_name", Type: tool.TypeString, Required: true, Description: "Name for the new branch"},
			{Name: "checkout", Type: tool.TypeBool, Default: true, Description: "Checkout the new branch after creation"},
		},
		Handler: d.createBranch,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "switch_branch",
		Summary: "Switch to a different branch",
		Params: []tool.Param{
			{Name: "repo_path", Type: tool.TypeString, Required: true, Description: "Path to repository, relative to workspace or absolute"},
			{Name: "branch_name", Type: tool.TypeString, Required: true, Description: "Branch name to switch to"},
		},
		Handler: d.switchBranch,
	})
}

// workspaceDir returns the workspace root, creating it if needed.
func (d *Deps) workspaceDir() (string, error) {
	dir := d.Cfg.Workspace.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// resolveRepoPath turns a workspace-relative or absolute path into an
// absolute one and verifies it exists.
func (d *Deps) resolveRepoPath(repoPath string) (string, error) {
	path := repoPath
	if !filepath.IsAbs(path) {
		dir, err := d.workspaceDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, repoPath)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("repository not found at %s", path)
	}
	return path, nil
}

// workspaceRepoDirs lists workspace subdirectories that are git
// repositories, sorted by name.
func (d *Deps) workspaceRepoDirs() (string, []string, error) {
	dir, err := d.workspaceDir()
	if err != nil {
		return "", nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, err
	}
	var repos []string
	for _, e := range entries {
		if e.IsDir() && gitops.IsRepo(filepath.Join(dir, e.Name())) {
			repos = append(repos, e.Name())
		}
	}
	sort.Strings(repos)
	return dir, repos, nil
}

func (d *Deps) listWorkspaceRepos(ctx context.Context, args tool.Args) (string, error) {
	dir, repos, err := d.workspaceRepoDirs()
	if err != nil {
		return "", err
	}
	if len(repos) == 0 {
		return fmt.Sprintf("No repositories found in workspace: %s", dir), nil
	}

	entries := make([]string, 0, len(repos))
	for _, name := range repos {
		path := filepath.Join(dir, name)
		st, err := gitops.Inspect(path)
		if err != nil {
			entries = append(entries, fmt.Sprintf("📁 %s\n   Error: %s\n", name, err))
			continue
		}

		status := "✅ Clean"
		if !st.Clean {
			status = "🔴 Modified"
		}
		remoteStr := "No remotes"
		if len(st.Remotes) > 0 {
			names := make([]string, 0, len(st.Remotes))
			for n := range st.Remotes {
				names = append(names, n)
			}
			sort.Strings(names)
			remoteStr = "Remotes: " + strings.Join(names, ", ")
		}

		entries = append(entries, fmt.Sprintf(
			"📁 %s\n   Branch: %s | %s\n   Path: %s\n   %s\n",
			name, st.Branch, status, path, remoteStr))
	}
	return fmt.Sprintf("Workspace: %s\n\n", dir) + strings.Join(entries, "\n"), nil
}

func (d *Deps) cloneRepository(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	repo, _, err := d.GH.Client(ctx).Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", gh.Humanize(err)
	}

	var dest string
	if args.Has("destination") {
		dest = args.String("destination")
	} else {
		dir, err := d.workspaceDir()
		if err != nil {
			return "", err
		}
		dest = filepath.Join(dir, repo.GetName())
	}
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("directory %s already exists", dest)
	}

	cloneURL := repo.GetCloneURL()
	var auth = gitops.TokenAuth(d.Cfg.GitHub.Username, d.Cfg.GitHub.Token)
	if args.Bool("use_ssh") {
		cloneURL = repo.GetSSHURL()
		auth = nil
	}

	if err := gitops.Clone(ctx, cloneURL, dest, auth); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Repository cloned successfully!
Repository: %s
Path: %s
URL: %s
`, repo.GetFullName(), dest, cloneURL), nil
}

func (d *Deps) pullRepository(ctx context.Context, args tool.Args) (string, error) {
	path, err := d.resolveRepoPath(args.String("repo_path"))
	if err != nil {
		return "", err
	}

	hasRemote, err := gitops.HasRemote(path)
	if err != nil {
		return "", err
	}
	if !hasRemote {
		return "", fmt.Errorf("no remotes configured for %s", path)
	}

	auth := gitops.TokenAuth(d.Cfg.GitHub.Username, d.Cfg.GitHub.Token)
	updated, err := gitops.Pull(ctx, path, auth)
	if err != nil {
		return "", err
	}

	branch, err := gitops.CurrentBranch(path)
	if err != nil {
		return "", err
	}
	outcome := "Already up to date."
	if updated {
		outcome = "New commits integrated."
	}
	return fmt.Sprintf(`Pulled latest changes for %s:
Branch: %s
%s`, filepath.Base(path), branch, outcome), nil
}

func (d *Deps) getRepositoryStatus(ctx context.Context, args tool.Args) (string, error) {
	path, err := d.resolveRepoPath(args.String("repo_path"))
	if err != nil {
		return "", err
	}

	st, err := gitops.Inspect(path)
	if err != nil {
		return "", err
	}

	status := "✅ Clean"
	if !st.Clean {
		status = "🔴 Modified"
	}
	parts := []string{
		fmt.Sprintf("Repository: %s", filepath.Base(path)),
		fmt.Sprintf("Branch: %s", st.Branch),
		fmt.Sprintf("Status: %s", status),
		"",
	}
	if len(st.Staged) > 0 {
		parts = append(parts, "Staged files:")
		for _, f := range st.Staged {
			parts = append(parts, "  + "+f)
		}
		parts = append(parts, "")
	}
	if len(st.Modified) > 0 {
		parts = append(parts, "Modified files:")
		for _, f := range st.Modified {
			parts = append(parts, "  M "+f)
		}
		parts = append(parts, "")
	}
	if len(st.Untracked) > 0 {
		parts = append(parts, "Untracked files:")
		for _, f := range st.Untracked {
			parts = append(parts, "  ? "+f)
		}
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n"), nil
}

func (d *Deps) syncAllRepositories(ctx context.Context, args tool.Args) (string, error) {
	dir, repos, err := d.workspaceRepoDirs()
	if err != nil {
		return "", err
	}

	auth := gitops.TokenAuth(d.Cfg.GitHub.Username, d.Cfg.GitHub.Token)
	var results []string
	successCount, errorCount := 0, 0

	for _, name := range repos {
		path := filepath.Join(dir, name)

		st, err := gitops.Inspect(path)
		if err != nil {
			results = append(results, fmt.Sprintf("❌ %s: %s", name, err))
			errorCount++
			continue
		}
		if len(st.Remotes) == 0 {
			results = append(results, fmt.Sprintf("⚠️  %s: No remotes", name))
			continue
		}
		if !st.Clean {
			results = append(results, fmt.Sprintf("⚠️  %s: Has uncommitted changes, skipping", name))
			continue
		}

		if _, err := gitops.Pull(ctx, path, auth); err != nil {
			results = append(results, fmt.Sprintf("❌ %s: %s", name, err))
			errorCount++
			continue
		}
		results = append(results, fmt.Sprintf("✅ %s: Updated", name))
		successCount++
	}

	summary := fmt.Sprintf("Synced %d repositories (%d errors)\n\n", successCount, errorCount)
	return summary + strings.Join(results, "\n"), nil
}

func (d *Deps) deleteWorkspaceRepo(ctx context.Context, args tool.Args) (string, error) {
	name := args.String("repo_name")
	if !args.Bool("confirm") {
		return confirmGate(name + " from workspace"), nil
	}

	dir, err := d.workspaceDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("repository %s not found in workspace", name)
	}
	if !gitops.IsRepo(path) {
		return "", fmt.Errorf("%s is not a git repository", name)
	}

	if err := os.RemoveAll(path); err != nil {
		return "", err
	}
	return fmt.Sprintf("Repository %s deleted from workspace", name), nil
}

func (d *Deps) createBranch(ctx context.Context, args tool.Args) (string, error) {
	path, err := d.resolveRepoPath(args.String("repo_path"))
	if err != nil {
		return "", err
	}
	branch := args.String("branch_name")
	checkout := args.Bool("checkout")

	if err := gitops.CreateBranch(path, branch, checkout); err != nil {
		return "", err
	}
	if checkout {
		return fmt.Sprintf("Created and checked out branch '%s' in %s", branch, filepath.Base(path)), nil
	}
	return fmt.Sprintf("Created branch '%s' in %s", branch, filepath.Base(path)), nil
}

func (d *Deps) switchBranch(ctx context.Context, args tool.Args) (string, error) {
	path, err := d.resolveRepoPath(args.String("repo_path"))
	if err != nil {
		return "", err
	}
	branch := args.String("branch_name")

	if err := gitops.SwitchBranch(path, branch); err != nil {
		return "", err
	}
	return fmt.Sprintf("Switched to branch '%s' in %s", branch, filepath.Base(path)), nil
}
