package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/tool"
)

func registerWorkflowTools(reg *tool.Registry, d *Deps) {
	reg.MustRegister(&tool.Descriptor{
		Name:    "list_workflow_runs",
		Summary: "List workflow runs",
		Params: []tool.Param{
			{Name: "repo_name", Type: tool.TypeString, Required: true, Description: "Repository name, 'owner/repo' or bare"},
			{Name: "workflow_name", Type: tool.TypeString, Description: "Optional workflow file name to filter"},
			{Name: "limit", Type: tool.TypeInt, Default: 10, Description: "Maximum number of runs"},
		},
		Handler: d.listWorkflowRuns,
	})
}

func runStatusEmoji(status string) string {
	switch status {
	case "success":
		return "✅"
	case "failure":
		return "❌"
	case "cancelled":
		return "🚫"
	case "in_progress":
		return "🔄"
	default:
		return "⚪"
	}
}

func (d *Deps) listWorkflowRuns(ctx context.Context, args tool.Args) (string, error) {
	owner, name := d.GH.ResolveRepo(args.String("repo_name"))
	client := d.GH.Client(ctx)
	workflowName := args.String("workflow_name")

	runs, err := collect(args.Int("limit"), keepAll,
		func(lo github.ListOptions) ([]*github.WorkflowRun, *github.Response, error) {
			opts := &github.ListWorkflowRunsOptions{ListOptions: lo}
			var (
				result *github.WorkflowRuns
				resp   *github.Response
				err    error
			)
			if workflowName != "" {
				result, resp, err = client.Actions.ListWorkflowRunsByFileName(ctx, owner, name, workflowName, opts)
			} else {
				result, resp, err = client.Actions.ListRepositoryWorkflowRuns(ctx, owner, name, opts)
			}
			if err != nil {
				return nil, resp, err
			}
			return result.WorkflowRuns, resp, nil
		})
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "No workflow runs found.", nil
	}

	entries := make([]string, 0, len(runs))
	for _, run := range runs {
		status := run.GetConclusion()
		if status == "" {
			status = run.GetStatus()
		}

		entries = append(entries, fmt.Sprintf(
			"%s Run #%d: %s\n   Status: %s\n   Branch: %s\n   Created: %s\n   URL: %s\n",
			runStatusEmoji(status), run.GetRunNumber(), run.GetName(),
			status, run.GetHeadBranch(), fmtTime(run.CreatedAt), run.GetHTMLURL()))
	}
	return strings.Join(entries, "\n"), nil
}
