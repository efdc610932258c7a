package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerIssueTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_issues",
		Summary: "List issues in a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "state", Type: tool.TypeString, Default: "open", Description: "Issue state: open, closed, or all"},
			{Name: "labels", Type: tool.TypeStringList, Description: "Filter by label names"},
			{Name: "limit", Type: tool.TypeInt, Default: 20, Description: "Maximum number of issues"},
		},
		Handler: d.listIssues,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_issue",
		Summary: "Create a new issue",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "title", Type: tool.TypeString, Required: true, Description: "Issue title"},
			{Name: "body", Type: tool.TypeString, Default: "", Description: "Issue body/description"},
			{Name: "labels", Type: tool.TypeStringList, Description: "Label names to apply"},
			{Name: "assignees", Type: tool.TypeStringList, Description: "Usernames to assign"},
		},
		Handler: d.createIssue,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "close_issue",
		Summary: "Close an issue",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "issue_number", Type: tool.TypeInt, Required: true, Description: "Issue number"},
			{Name: "comment", Type: tool.TypeString, Description: "Optional closing comment"},
		},
		Handler: d.closeIssue,
	})
}

func (d *Deps) listIssues(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)
	state := args.String("state")
	labels := args.StringList("labels")

	// The issues endpoint interleaves pull requests; they are filtered out
	// here and do not count against the limit.
	issues, err := collect(args.Int("limit"),
		func(i *github.Issue) bool { return !i.IsPullRequest() },
		func(lo github.ListOptions) ([]*github.Issue, *github.Response, error) {
			return client.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
				State:       state,
				Labels:      labels,
				ListOptions: lo,
			})
		})
	if err != nil {
		return "", err
	}
	if len(issues) == 0 {
		return "No issues found.", nil
	}

	entries := make([]string, 0, len(issues))
	for _, issue := range issues {
		labelNames := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labelNames = append(labelNames, l.GetName())
		}
		labelsStr := "N/A"
		if len(labelNames) > 0 {
			labelsStr = strings.Join(labelNames, ", ")
		}

		entries = append(entries, fmt.Sprintf(
			"#%d: %s\n   State: %s | Labels: %s\n   Created: %s by %s\n   Comments: %d\n   URL: %s\n",
			issue.GetNumber(), issue.GetTitle(),
			issue.GetState(), labelsStr,
			fmtTime(issue.CreatedAt), issue.GetUser().GetLogin(),
			issue.GetComments(), issue.GetHTMLURL()))
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) createIssue(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))

	req := &github.IssueRequest{
		Title: github.String(args.String("title")),
		Body:  github.String(args.String("body")),
	}
	if labels := args.StringList("labels"); len(labels) > 0 {
		req.Labels = &labels
	}
	if assignees := args.StringList("assignees"); len(assignees) > 0 {
		req.Assignees = &assignees
	}

	issue, _, err := d.GH.Client(ctx).Issues.Create(ctx, owner, name, req)
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf(`Issue created successfully!
#%d: %s
URL: %s
`, issue.GetNumber(), issue.GetTitle(), issue.GetHTMLURL()), nil
}

func (d *Deps) closeIssue(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	number := args.Int("issue_number")
	client := d.GH.Client(ctx)

	if comment := args.String("comment"); comment != "" {
		_, _, err := client.Issues.CreateComment(ctx, owner, name, number, &github.IssueComment{
			Body: github.String(comment),
		})
		if err != nil {
			return "", gh.Humanize(err)
		}
	}

	_, _, err := client.Issues.Edit(ctx, owner, name, number, &github.IssueRequest{
		State: github.String("closed"),
	})
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf("Issue #%d closed successfully.", number), nil
}
