package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/gitops"
	"github.com/soyeahso/gh-manager/internal/store"
	"github.com/soyeahso/gh-manager/internal/tool"
)

const backupTimestampLayout = "20060102_150405"

func registerBackupTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "backup_repository",
		Summary: "Backup a repository (mirror clone + metadata)",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "include_metadata", Type: tool.TypeBool, Default: true, Description: "Backup issues, PRs, releases metadata"},
		},
		Handler: d.backupRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "backup_all_repositories",
		Summary: "Backup all repositories for a user",
		Params: []tool.Param{
			{Name: "username", Type: tool.TypeString, Description: "Account to back up (defaults to the authenticated user)"},
			{Name: "include_metadata", Type: tool.TypeBool, Default: true, Description: "Backup basic metadata per repository"},
		},
		Handler: d.backupAllRepositories,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_backups",
		Summary: "List available backups",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Description: "Optional repository name to filter"},
		},
		Handler: d.listBackups,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "restore_repository",
		Summary: "Restore a repository from backup",
		Params: []tool.Param{
			{Name: "backup_path", Type: tool.TypeString, Required: true, Description: "Path to backup directory"},
			{Name: "destination", Type: tool.TypeString, Required: true, Description: "Destination path for the restored repository"},
		},
		Handler: d.restoreRepository,
	})
}

func (d *Deps) backupRoot() (string, error) {
	dir := d.Cfg.Workspace.BackupDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// repoMetadata is the serialized form of a repository's attributes.
type repoMetadata struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	CloneURL      string   `json:"clone_url"`
	SSHURL        string   `json:"ssh_url"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	PushedAt      string   `json:"pushed_at"`
	Size          int      `json:"size"`
	Language      string   `json:"language"`
	DefaultBranch string   `json:"default_branch"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Watchers      int      `json:"watchers"`
	OpenIssues    int      `json:"open_issues"`
	Topics        []string `json:"topics"`
	Private       bool     `json:"private"`
	Archived      bool     `json:"archived"`
}

type issueMetadata struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	State     string   `json:"state"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	ClosedAt  *string  `json:"closed_at"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
	User      string   `json:"user"`
	Comments  int      `json:"comments"`
}

type pullMetadata struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	ClosedAt  *string `json:"closed_at"`
	MergedAt  *string `json:"merged_at"`
	Head      string  `json:"head"`
	Base      string  `json:"base"`
	User      string  `json:"user"`
	Comments  int     `json:"comments"`
}

type releaseAssetMetadata struct {
	Name          string `json:"name"`
	Size          int    `json:"size"`
	DownloadCount int    `json:"download_count"`
	URL           string `json:"url"`
}

type releaseMetadata struct {
	TagName     string                 `json:"tag_name"`
	Name        string                 `json:"name"`
	Body        string                 `json:"body"`
	Draft       bool                   `json:"draft"`
	Prerelease  bool                   `json:"prerelease"`
	CreatedAt   string                 `json:"created_at"`
	PublishedAt *string                `json:"published_at"`
	Author      string                 `json:"author"`
	Assets      []releaseAssetMetadata `json:"assets"`
}

func optTime(ts *github.Timestamp) *string {
	if ts == nil || ts.IsZero() {
		return nil
	}
	s := ts.Format(time.DateTime)
	return &s
}

func (d *Deps) backupRepository(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)

	repo, _, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", gh.Humanize(err)
	}

	root, err := d.backupRoot()
	if err != nil {
		return "", err
	}
	timestamp := time.Now().Format(backupTimestampLayout)
	backupDir := filepath.Join(root, repo.GetName(), timestamp)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}

	// The mirror is the backup itself; without it the call fails outright.
	if err := gitops.MirrorClone(ctx, repo.GetCloneURL(), filepath.Join(backupDir, "repository"),
		gitops.TokenAuth(d.Cfg.GitHub.Username, d.Cfg.GitHub.Token)); err != nil {
		return "", err
	}

	parts := []string{
		"Repository backup completed!",
		fmt.Sprintf("Repository: %s", repo.GetFullName()),
		fmt.Sprintf("Backup path: %s", backupDir),
		"",
		"✅ Repository cloned (mirror)",
	}

	includeMetadata := args.Bool("include_metadata")
	status := store.BackupComplete

	// Each metadata step is independent: a failed step is reported and the
	// documents written by earlier steps stay on disk.
	if includeMetadata {
		metaDir := filepath.Join(backupDir, "metadata")
		if err := os.MkdirAll(metaDir, 0o755); err != nil {
			return "", err
		}

		if err := d.backupRepoInfo(ctx, repo, metaDir); err != nil {
			parts = append(parts, fmt.Sprintf("❌ Repository info backup failed: %s", err))
			status = store.BackupPartial
		} else {
			parts = append(parts, "✅ Repository info backed up")
		}

		if n, err := d.backupIssues(ctx, owner, name, metaDir); err != nil {
			parts = append(parts, fmt.Sprintf("❌ Issues backup failed: %s", err))
			status = store.BackupPartial
		} else {
			parts = append(parts, fmt.Sprintf("✅ %d issues backed up", n))
		}

		if n, err := d.backupPulls(ctx, owner, name, metaDir); err != nil {
			parts = append(parts, fmt.Sprintf("❌ Pull requests backup failed: %s", err))
			status = store.BackupPartial
		} else {
			parts = append(parts, fmt.Sprintf("✅ %d pull requests backed up", n))
		}

		if n, err := d.backupReleases(ctx, owner, name, metaDir); err != nil {
			parts = append(parts, fmt.Sprintf("❌ Releases backup failed: %s", err))
			status = store.BackupPartial
		} else {
			parts = append(parts, fmt.Sprintf("✅ %d releases backed up", n))
		}
	}

	if d.Backups != nil {
		if _, err := d.Backups.Record(repo.GetName(), backupDir, status, includeMetadata); err != nil {
			d.Log.Warn().Err(err).Str("repo", repo.GetName()).Msg("failed to record backup in catalog")
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (d *Deps) backupRepoInfo(ctx context.Context, repo *github.Repository, metaDir string) error {
	info := repoMetadata{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		URL:           repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		SSHURL:        repo.GetSSHURL(),
		CreatedAt:     fmtTime(repo.CreatedAt),
		UpdatedAt:     fmtTime(repo.UpdatedAt),
		PushedAt:      fmtTime(repo.PushedAt),
		Size:          repo.GetSize(),
		Language:      repo.GetLanguage(),
		DefaultBranch: repo.GetDefaultBranch(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		Watchers:      repo.GetWatchersCount(),
		OpenIssues:    repo.GetOpenIssuesCount(),
		Topics:        repo.Topics,
		Private:       repo.GetPrivate(),
		Archived:      repo.GetArchived(),
	}
	return writeJSON(filepath.Join(metaDir, "repository.json"), info)
}

func (d *Deps) backupIssues(ctx context.Context, owner, name, metaDir string) (int, error) {
	client := d.GH.Client(ctx)
	var out []issueMetadata
	lo := github.ListOptions{PerPage: 100}
	for {
		issues, resp, err := client.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
			State:       "all",
			ListOptions: lo,
		})
		if err != nil {
			return 0, gh.Humanize(err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			labels := make([]string, 0, len(issue.Labels))
			for _, l := range issue.Labels {
				labels = append(labels, l.GetName())
			}
			assignees := make([]string, 0, len(issue.Assignees))
			for _, a := range issue.Assignees {
				assignees = append(assignees, a.GetLogin())
			}
			out = append(out, issueMetadata{
				Number:    issue.GetNumber(),
				Title:     issue.GetTitle(),
				Body:      issue.GetBody(),
				State:     issue.GetState(),
				CreatedAt: fmtTime(issue.CreatedAt),
				UpdatedAt: fmtTime(issue.UpdatedAt),
				ClosedAt:  optTime(issue.ClosedAt),
				Labels:    labels,
				Assignees: assignees,
				User:      issue.GetUser().GetLogin(),
				Comments:  issue.GetComments(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		lo.Page = resp.NextPage
	}
	if err := writeJSON(filepath.Join(metaDir, "issues.json"), out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func (d *Deps) backupPulls(ctx context.Context, owner, name, metaDir string) (int, error) {
	client := d.GH.Client(ctx)
	var out []pullMetadata
	lo := github.ListOptions{PerPage: 100}
	for {
		pulls, resp, err := client.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
			State:       "all",
			ListOptions: lo,
		})
		if err != nil {
			return 0, gh.Humanize(err)
		}
		for _, pr := range pulls {
			out = append(out, pullMetadata{
				Number:    pr.GetNumber(),
				Title:     pr.GetTitle(),
				Body:      pr.GetBody(),
				State:     pr.GetState(),
				CreatedAt: fmtTime(pr.CreatedAt),
				UpdatedAt: fmtTime(pr.UpdatedAt),
				ClosedAt:  optTime(pr.ClosedAt),
				MergedAt:  optTime(pr.MergedAt),
				Head:      pr.GetHead().GetRef(),
				Base:      pr.GetBase().GetRef(),
				User:      pr.GetUser().GetLogin(),
				Comments:  pr.GetComments(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		lo.Page = resp.NextPage
	}
	if err := writeJSON(filepath.Join(metaDir, "pull_requests.json"), out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func (d *Deps) backupReleases(ctx context.Context, owner, name, metaDir string) (int, error) {
	client := d.GH.Client(ctx)
	var out []releaseMetadata
	lo := github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := client.Repositories.ListReleases(ctx, owner, name, &lo)
		if err != nil {
			return 0, gh.Humanize(err)
		}
		for _, rel := range releases {
			assets := make([]releaseAssetMetadata, 0, len(rel.Assets))
			for _, a := range rel.Assets {
				assets = append(assets, releaseAssetMetadata{
					Name:          a.GetName(),
					Size:          a.GetSize(),
					DownloadCount: a.GetDownloadCount(),
					URL:           a.GetBrowserDownloadURL(),
				})
			}
			out = append(out, releaseMetadata{
				TagName:     rel.GetTagName(),
				Name:        rel.GetName(),
				Body:        rel.GetBody(),
				Draft:       rel.GetDraft(),
				Prerelease:  rel.GetPrerelease(),
				CreatedAt:   fmtTime(rel.CreatedAt),
				PublishedAt: optTime(rel.PublishedAt),
				Author:      rel.GetAuthor().GetLogin(),
				Assets:      assets,
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		lo.Page = resp.NextPage
	}
	if err := writeJSON(filepath.Join(metaDir, "releases.json"), out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func (d *Deps) backupAllRepositories(ctx context.Context, args tool.Args) (string, error) {
	client := d.GH.Client(ctx)
	username := args.String("username")

	login := username
	if login == "" {
		user, _, err := client.Users.Get(ctx, "")
		if err != nil {
			return "", gh.Humanize(err)
		}
		login = user.GetLogin()
	}

	var repos []*github.Repository
	lo := github.ListOptions{PerPage: 100}
	for {
		var (
			page []*github.Repository
			resp *github.Response
			err  error
		)
		if username != "" {
			page, resp, err = client.Repositories.ListByUser(ctx, username, &github.RepositoryListByUserOptions{ListOptions: lo})
		} else {
			page, resp, err = client.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{ListOptions: lo})
		}
		if err != nil {
			return "", gh.Humanize(err)
		}
		repos = append(repos, page...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		lo.Page = resp.NextPage
	}

	root, err := d.backupRoot()
	if err != nil {
		return "", err
	}
	timestamp := time.Now().Format(backupTimestampLayout)
	batchDir := filepath.Join(root, fmt.Sprintf("batch_%s_%s", login, timestamp))
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return "", err
	}

	includeMetadata := args.Bool("include_metadata")
	auth := gitops.TokenAuth(d.Cfg.GitHub.Username, d.Cfg.GitHub.Token)
	var results []string
	successCount, errorCount := 0, 0

	for _, repo := range repos {
		repoDir := filepath.Join(batchDir, repo.GetName())
		if err := os.MkdirAll(repoDir, 0o755); err != nil {
			results = append(results, fmt.Sprintf("❌ %s: %s", repo.GetFullName(), err))
			errorCount++
			continue
		}

		if err := gitops.MirrorClone(ctx, repo.GetCloneURL(), filepath.Join(repoDir, "repository"), auth); err != nil {
			results = append(results, fmt.Sprintf("❌ %s: %s", repo.GetFullName(), err))
			errorCount++
			continue
		}

		if includeMetadata {
			metaDir := filepath.Join(repoDir, "metadata")
			if err := os.MkdirAll(metaDir, 0o755); err == nil {
				// Batch backups keep the metadata shallow on purpose.
				info := map[string]any{
					"name":         repo.GetName(),
					"full_name":    repo.GetFullName(),
					"description":  repo.GetDescription(),
					"url":          repo.GetHTMLURL(),
					"stars":        repo.GetStargazersCount(),
					"backed_up_at": timestamp,
				}
				if err := writeJSON(filepath.Join(metaDir, "repository.json"), info); err != nil {
					d.Log.Warn().Err(err).Str("repo", repo.GetName()).Msg("batch metadata write failed")
				}
			}
		}

		if d.Backups != nil {
			if _, err := d.Backups.Record(repo.GetName(), repoDir, store.BackupComplete, includeMetadata); err != nil {
				d.Log.Warn().Err(err).Str("repo", repo.GetName()).Msg("failed to record backup in catalog")
			}
		}
		results = append(results, fmt.Sprintf("✅ %s", repo.GetFullName()))
		successCount++
	}

	summary := fmt.Sprintf(`Batch backup completed!
User: %s
Backup path: %s
Success: %d | Errors: %d

`, login, batchDir, successCount, errorCount)
	return summary + strings.Join(results, "\n"), nil
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size
}

func (d *Deps) listBackups(ctx context.Context, args tool.Args) (string, error) {
	root := d.Cfg.Workspace.BackupDir
	if _, err := os.Stat(root); err != nil {
		return fmt.Sprintf("No backups found in %s", root), nil
	}

	var entries []string
	if repoName := args.String("repo_name"); repoName != "" {
		repoDir := filepath.Join(root, repoName)
		if dirEntries, err := os.ReadDir(repoDir); err == nil {
			names := make([]string, 0, len(dirEntries))
			for _, e := range dirEntries {
				if e.IsDir() {
					names = append(names, e.Name())
				}
			}
			sort.Sort(sort.Reverse(sort.StringSlice(names)))
			for _, n := range names {
				path := filepath.Join(repoDir, n)
				sizeMB := float64(dirSize(path)) / (1024 * 1024)
				entries = append(entries, fmt.Sprintf("📦 %s\n   Path: %s\n   Size: %.2f MB\n", n, path, sizeMB))
			}
		}
	} else {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return "", err
		}
		for _, e := range dirEntries {
			if !e.IsDir() {
				continue
			}
			sub, err := os.ReadDir(filepath.Join(root, e.Name()))
			if err != nil {
				continue
			}
			entries = append(entries, fmt.Sprintf("📁 %s (%d backups)", e.Name(), len(sub)))
		}
	}

	if len(entries) == 0 {
		return "No backups found", nil
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) restoreRepository(ctx context.Context, args tool.Args) (string, error) {
	backupPath := args.String("backup_path")
	destination := args.String("destination")

	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup not found at %s", backupPath)
	}
	mirrorPath := filepath.Join(backupPath, "repository")
	if _, err := os.Stat(mirrorPath); err != nil {
		return "", fmt.Errorf("repository backup not found in %s", backupPath)
	}
	if _, err := os.Stat(destination); err == nil {
		return "", fmt.Errorf("destination %s already exists", destination)
	}

	if err := gitops.RestoreClone(ctx, mirrorPath, destination); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Repository restored successfully!
Backup: %s
Destination: %s

Note: Metadata (issues, PRs) are in %s
`, backupPath, destination, filepath.Join(backupPath, "metadata")), nil
}
