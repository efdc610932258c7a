package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerRepositoryTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_repositories",
		Summary: "List repositories for a user",
		Params: []tool.Param{
			{Name: "username", Type: tool.TypeString, Description: "Account to list (defaults to the authenticated user)"},
			{Name: "sort", Type: tool.TypeString, Default: "updated", Description: "Sort by: created, updated, pushed, full_name"},
			{Name: "direction", Type: tool.TypeString, Default: "desc", Description: "Sort direction: asc or desc"},
			{Name: "limit", Type: tool.TypeInt, Default: 30, Description: "Maximum number of repositories to return"},
		},
		Handler: d.listRepositories,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "get_repository_info",
		Summary: "Get detailed information about a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
		},
		Handler: d.getRepositoryInfo,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_repository",
		Summary: "Create a new repository",
		Params: []tool.Param{
			{Name: "name", Type: tool.TypeString, Required: true, Description: "Repository name"},
			{Name: "description", Type: tool.TypeString, Default: "", Description: "Repository description"},
			{Name: "private", Type: tool.TypeBool, Default: false, Description: "Create as private repository"},
			{Name: "auto_init", Type: tool.TypeBool, Default: true, Description: "Initialize with README"},
			{Name: "gitignore_template", Type: tool.TypeString, Description: ".gitignore template (e.g. 'Python')"},
			{Name: "license_template", Type: tool.TypeString, Description: "License template (e.g. 'mit')"},
		},
		Handler: d.createRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "update_repository",
		Summary: "Update repository settings",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "description", Type: tool.TypeString, Description: "New description"},
			{Name: "homepage", Type: tool.TypeString, Description: "Homepage URL"},
			{Name: "private", Type: tool.TypeBool, Description: "Make private/public"},
			{Name: "has_issues", Type: tool.TypeBool, Description: "Enable/disable issues"},
			{Name: "has_wiki", Type: tool.TypeBool, Description: "Enable/disable wiki"},
			{Name: "has_projects", Type: tool.TypeBool, Description: "Enable/disable projects"},
			{Name: "default_branch", Type: tool.TypeString, Description: "Change default branch"},
		},
		Handler: d.updateRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "delete_repository",
		Summary: "Delete a repository (use with caution)",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "confirm", Type: tool.TypeBool, Default: false, Description: "Must be true to actually delete"},
		},
		Handler: d.deleteRepository,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "search_repositories",
		Summary: "Search for repositories",
		Params: []tool.Param{
			{Name: "query", Type: tool.TypeString, Required: true, Description: "Search query"},
			{Name: "sort", Type: tool.TypeString, Default: "stars", Description: "Sort by: stars, forks, help-wanted-issues, updated"},
			{Name: "order", Type: tool.TypeString, Default: "desc", Description: "Sort order: desc or asc"},
			{Name: "limit", Type: tool.TypeInt, Default: 10, Description: "Maximum number of results"},
		},
		Handler: d.searchRepositories,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "get_repository_topics",
		Summary: "Get topics for a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
		},
		Handler: d.getRepositoryTopics,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "set_repository_topics",
		Summary: "Replace topics on a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "topics", Type: tool.TypeStringList, Required: true, Description: "Topic names"},
		},
		Handler: d.setRepositoryTopics,
	})
}

func formatRepoEntry(i int, r *github.Repository, withUpdated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s\n", i+1, r.GetFullName())
	fmt.Fprintf(&b, "   Description: %s\n", orNA(r.GetDescription()))
	fmt.Fprintf(&b, "   Stars: ⭐ %d | Forks: 🍴 %d | Language: %s\n",
		r.GetStargazersCount(), r.GetForksCount(), orNA(r.GetLanguage()))
	if withUpdated {
		fmt.Fprintf(&b, "   Updated: %s\n", fmtTime(r.UpdatedAt))
	}
	fmt.Fprintf(&b, "   URL: %s\n", r.GetHTMLURL())
	return b.String()
}

func (d *Deps) listRepositories(ctx context.Context, args tool.Args) (string, error) {
	client := d.GH.Client(ctx)
	username := args.String("username")
	sort := args.String("sort")
	direction := args.String("direction")

	var repos []*github.Repository
	var err error
	if username != "" {
		repos, err = collect(args.Int("limit"), keepAll, func(lo github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return client.Repositories.ListByUser(ctx, username, &github.RepositoryListByUserOptions{
				Sort:        sort,
				Direction:   direction,
				ListOptions: lo,
			})
		})
	} else {
		repos, err = collect(args.Int("limit"), keepAll, func(lo github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return client.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
				Sort:        sort,
				Direction:   direction,
				ListOptions: lo,
			})
		})
	}
	if err != nil {
		return "", err
	}
	if len(repos) == 0 {
		return "No repositories found.", nil
	}

	entries := make([]string, 0, len(repos))
	for i, r := range repos {
		entries = append(entries, formatRepoEntry(i, r, true))
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) getRepositoryInfo(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	r, _, err := d.GH.Client(ctx).Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", gh.Humanize(err)
	}

	license := "N/A"
	if l := r.GetLicense(); l != nil {
		license = l.GetName()
	}
	topics := "N/A"
	if len(r.Topics) > 0 {
		topics = strings.Join(r.Topics, ", ")
	}

	return fmt.Sprintf(`Repository: %s
Description: %s
URL: %s
Clone URL: %s
SSH URL: %s

Stats:
- Stars: ⭐ %d
- Forks: 🍴 %d
- Watchers: 👀 %d
- Open Issues: %d
- Size: %d KB

Details:
- Language: %s
- Default Branch: %s
- Created: %s
- Updated: %s
- Pushed: %s
- Private: %t
- Fork: %t
- Archived: %t
- License: %s

Topics: %s
`,
		r.GetFullName(), orNA(r.GetDescription()), r.GetHTMLURL(), r.GetCloneURL(), r.GetSSHURL(),
		r.GetStargazersCount(), r.GetForksCount(), r.GetWatchersCount(), r.GetOpenIssuesCount(), r.GetSize(),
		orNA(r.GetLanguage()), r.GetDefaultBranch(),
		fmtTime(r.CreatedAt), fmtTime(r.UpdatedAt), fmtTime(r.PushedAt),
		r.GetPrivate(), r.GetFork(), r.GetArchived(), license, topics), nil
}

func (d *Deps) createRepository(ctx context.Context, args tool.Args) (string, error) {
	req := &github.Repository{
		Name:        github.String(args.String("name")),
		Description: github.String(args.String("description")),
		Private:     github.Bool(args.Bool("private")),
		AutoInit:    github.Bool(args.Bool("auto_init")),
	}
	if args.Has("gitignore_template") {
		req.GitignoreTemplate = github.String(args.String("gitignore_template"))
	}
	if args.Has("license_template") {
		req.LicenseTemplate = github.String(args.String("license_template"))
	}

	r, _, err := d.GH.Client(ctx).Repositories.Create(ctx, "", req)
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf(`Repository created successfully!
Name: %s
URL: %s
Clone URL: %s
SSH URL: %s
`, r.GetFullName(), r.GetHTMLURL(), r.GetCloneURL(), r.GetSSHURL()), nil
}

func (d *Deps) updateRepository(ctx context.Context, args tool.Args) (string, error) {
	repoName := args.String("repo_name")
	owner, name := d.GH.ResolveRepo(repoName)

	patch := &github.Repository{}
	if args.Has("description") {
		patch.Description = github.String(args.String("description"))
	}
	if args.Has("homepage") {
		patch.Homepage = github.String(args.String("homepage"))
	}
	if args.Has("private") {
		patch.Private = github.Bool(args.Bool("private"))
	}
	if args.Has("has_issues") {
		patch.HasIssues = github.Bool(args.Bool("has_issues"))
	}
	if args.Has("has_wiki") {
		patch.HasWiki = github.Bool(args.Bool("has_wiki"))
	}
	if args.Has("has_projects") {
		patch.HasProjects = github.Bool(args.Bool("has_projects"))
	}
	if args.Has("default_branch") {
		patch.DefaultBranch = github.String(args.String("default_branch"))
	}

	_, _, err := d.GH.Client(ctx).Repositories.Edit(ctx, owner, name, patch)
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf("Repository %s updated successfully!", repoName), nil
}

func (d *Deps) deleteRepository(ctx context.Context, args tool.Args) (string, error) {
	repoName := args.String("repo_name")
	if !args.Bool("confirm") {
		return confirmGate(repoName), nil
	}

	owner, name := d.GH.ResolveRepo(repoName)
	_, err := d.GH.Client(ctx).Repositories.Delete(ctx, owner, name)
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf("Repository %s has been deleted.", repoName), nil
}

func (d *Deps) searchRepositories(ctx context.Context, args tool.Args) (string, error) {
	client := d.GH.Client(ctx)
	query := args.String("query")
	sort := args.String("sort")
	order := args.String("order")

	repos, err := collect(args.Int("limit"), keepAll, func(lo github.ListOptions) ([]*github.Repository, *github.Response, error) {
		result, resp, err := client.Search.Repositories(ctx, query, &github.SearchOptions{
			Sort:        sort,
			Order:       order,
			ListOptions: lo,
		})
		if err != nil {
			return nil, resp, err
		}
		return result.Repositories, resp, nil
	})
	if err != nil {
		return "", err
	}
	if len(repos) == 0 {
		return "No repositories found.", nil
	}

	entries := make([]string, 0, len(repos))
	for i, r := range repos {
		entries = append(entries, formatRepoEntry(i, r, false))
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) getRepositoryTopics(ctx context.Context, args tool.Args) (string, error) {
	repoName := args.String("repo_name")
	owner, name := d.GH.ResolveRepo(repoName)

	topics, _, err := d.GH.Client(ctx).Repositories.ListAllTopics(ctx, owner, name)
	if err != nil {
		return "", gh.Humanize(err)
	}
	if len(topics) == 0 {
		return fmt.Sprintf("No topics set for %s", repoName), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topics for %s:\n", repoName)
	for i, t := range topics {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", t)
	}
	return b.String(), nil
}

func (d *Deps) setRepositoryTopics(ctx context.Context, args tool.Args) (string, error) {
	repoName := args.String("repo_name")
	owner, name := d.GH.ResolveRepo(repoName)
	topics := args.StringList("topics")

	applied, _, err := d.GH.Client(ctx).Repositories.ReplaceAllTopics(ctx, owner, name, topics)
	if err != nil {
		return "", gh.Humanize(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topics updated for %s:\n", repoName)
	for i, t := range applied {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", t)
	}
	return b.String(), nil
}
