package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerReleaseTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_releases",
		Summary: "List releases in a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "limit", Type: tool.TypeInt, Default: 10, Description: "Maximum number of releases"},
		},
		Handler: d.listReleases,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_release",
		Summary: "Create a new release",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "tag_name", Type: tool.TypeString, Required: true, Description: "Tag name (e.g. 'v1.0.0')"},
			{Name: "name", Type: tool.TypeString, Required: true, Description: "Release title"},
			{Name: "body", Type: tool.TypeString, Default: "", Description: "Release notes"},
			{Name: "target_commitish", Type: tool.TypeString, Description: "Target branch/commit (defaults to the default branch)"},
			{Name: "draft", Type: tool.TypeBool, Default: false, Description: "Create as draft"},
			{Name: "prerelease", Type: tool.TypeBool, Default: false, Description: "Mark as pre-release"},
		},
		Handler: d.createRelease,
	})
}

func (d *Deps) listReleases(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)

	releases, err := collect(args.Int("limit"), keepAll,
		func(lo github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error) {
			return client.Repositories.ListReleases(ctx, owner, name, &lo)
		})
	if err != nil {
		return "", err
	}
	if len(releases) == 0 {
		return "No releases found.", nil
	}

	entries := make([]string, 0, len(releases))
	for _, rel := range releases {
		title := rel.GetName()
		if title == "" {
			title = rel.GetTagName()
		}
		var flags string
		if rel.GetDraft() {
			flags += " [DRAFT]"
		}
		if rel.GetPrerelease() {
			flags += " (pre-release)"
		}
		published := "Not published"
		if rel.PublishedAt != nil {
			published = fmtTime(rel.PublishedAt)
		}
		author := "N/A"
		if rel.GetAuthor() != nil {
			author = rel.GetAuthor().GetLogin()
		}
		downloads := 0
		for _, a := range rel.Assets {
			downloads += a.GetDownloadCount()
		}

		entries = append(entries, fmt.Sprintf(
			"%s: %s%s\n   Published: %s\n   Author: %s\n   Downloads: %d\n   URL: %s\n",
			rel.GetTagName(), title, flags, published, author, downloads, rel.GetHTMLURL()))
	}
	return strings.Join(entries, "\n"), nil
}

func (d *Deps) createRelease(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	tag := args.String("tag_name")
	title := args.String("name")

	req := &github.RepositoryRelease{
		TagName:    github.String(tag),
		Name:       github.String(title),
		Body:       github.String(args.String("body")),
		Draft:      github.Bool(args.Bool("draft")),
		Prerelease: github.Bool(args.Bool("prerelease")),
	}
	if args.Has("target_commitish") {
		req.TargetCommitish = github.String(args.String("target_commitish"))
	}

	rel, _, err := d.GH.Client(ctx).Repositories.CreateRelease(ctx, owner, name, req)
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf(`Release created successfully!
%s: %s
URL: %s
`, tag, title, rel.GetHTMLURL()), nil
}
