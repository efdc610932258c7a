package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerLabelTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_labels",
		Summary: "List labels in a repository",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
		},
		Handler: d.listLabels,
	})
	reg.MustRegister(&tool.Descriptor{
		Name:    "create_label",
		Summary: "Create a new label",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "name", Type: tool.TypeString, Required: true, Description: "Label name"},
			{Name: "color", Type: tool.TypeString, Required: true, Description: "Color hex code (without #)"},
			{Name: "description", Type: tool.TypeString, Default: "", Description: "Label description"},
		},
		Handler: d.createLabel,
	})
}

func (d *Deps) listLabels(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)

	var all []*github.Label
	lo := github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := client.Issues.ListLabels(ctx, owner, name, &lo)
		if err != nil {
			return "", gh.Humanize(err)
		}
		all = append(all, labels...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		lo.Page = resp.NextPage
	}
	if len(all) == 0 {
		return "No labels found.", nil
	}

	lines := make([]string, 0, len(all))
	for _, l := range all {
		lines = append(lines, fmt.Sprintf("- %s (#%s): %s",
			l.GetName(), l.GetColor(), orNA(l.GetDescription())))
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Deps) createLabel(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	color := strings.TrimPrefix(args.String("color"), "#")

	label, _, err := d.GH.Client(ctx).Issues.CreateLabel(ctx, owner, name, &github.Label{
		Name:        github.String(args.String("name")),
		Color:       github.String(color),
		Description: github.String(args.String("description")),
	})
	if err != nil {
		return "", gh.Humanize(err)
	}
	return fmt.Sprintf("Label '%s' created successfully (#%s).", label.GetName(), label.GetColor()), nil
}
