package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerPullRequestTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_pull_requests",
		Summary: "List pull requests in a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "state", Type: tool.TypeString, Default: "open", Description: "PR state: open, closed, or all"},
			{Name: "limit", Type: tool.TypeInt, Default: 20, Description: "Maximum number of PRs"},
		},
		Handler: d.listPullRequests,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_pull_request",
		Summary: "Create a new pull request",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "title", Type: tool.TypeString, Required: true, Description: "PR title"},
			{Name: "head", Type: tool.TypeString, Required: true, Description: "Head branch (source)"},
			{Name: "base", Type: tool.TypeString, Default: "main", Description: "Base branch (target)"},
			{Name: "body", Type: tool.TypeString, Default: "", Description: "PR description"},
			{Name: "draft", Type: tool.TypeBool, Default: false, Description: "Create as draft PR"},
		},
		Handler: d.createPullRequest,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "merge_pull_request",
		Summary: "Merge a pull request",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "pr_number", Type: tool.TypeInt, Required: true, Description: "PR number"},
			{Name: "commit_message", Type: tool.TypeString, Description: "Optional commit message"},
			{Name: "merge_method", Type: tool.TypeString, Default: "merge", Description: "Method: merge, squash, or rebase"},
		},
		Handler: d.mergePullRequest,
	})
}

func (d *Deps) listPullRequests(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)
	state := args.String("state")

	pulls, err := collect(args.Int("limit"), keepAll,
		func(lo github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
			return client.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
				State:       state,
				ListOptions: lo,
			})
		})
	if err != nil {
		return "", err
	}
	if len(pulls) == 0 {
		return "No pull requests found.", nil
	}

	entries := make([]string, 0, len(pulls))
	for _, pr := range pulls {
		status := fmt.Sprintf("State: %s", pr.GetState())
		if pr.GetMerged() || pr.MergedAt != nil {
			status = "✅ Merged"
		}

		entries = append(entries, fmt.Sprintf(
			"#%d: %s\n   %s | %s → %s\n   Created: %s by %s\n   Comments: %d | Commits: %d\n   URL: %s\n",
			pr.GetNumber(), pr.GetTitle(),
			status, pr.GetHead().GetRef(), pr.GetBase().GetRef(),
			fmtTime(pr.CreatedAt), pr.GetUser().GetLogin(),
			pr.GetComments(), pr.GetCommits(), pr.GetHTMLURL()))
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) createPullRequest(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	head := args.String("head")
	base := args.String("base")

	pr, _, err := d.GH.Client(ctx).PullRequests.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.String(args.String("title")),
		Head:  github.String(head),
		Base:  github.String(base),
		Body:  github.String(args.String("body")),
		Draft: github.Bool(args.Bool("draft")),
	})
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf(`Pull request created successfully!
#%d: %s
%s → %s
URL: %s
`, pr.GetNumber(), pr.GetTitle(), head, base, pr.GetHTMLURL()), nil
}

func (d *Deps) mergePullRequest(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	number := args.Int("pr_number")
	method := args.String("merge_method")

	_, _, err := d.GH.Client(ctx).PullRequests.Merge(ctx, owner, name, number,
		args.String("commit_message"),
		&github.PullRequestOptions{MergeMethod: method})
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf("Pull request #%d merged successfully using %s.", number, method), nil
}
