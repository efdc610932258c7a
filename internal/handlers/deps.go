// Package handlers implements every tool exposed by the server, grouped the
// way the surface is documented: repository, issues, pull requests,
// releases, labels, workflows, workspace, and backup. Handlers return
// display text; the dispatcher renders their errors.
package handlers

import (
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/logging"
	"github.com/soyeahso/gh-manager/internal/store"
	"github.com/soyeahso/gh-manager/internal/tool"
)

// Deps carries the shared collaborators every handler group draws from.
type Deps struct {
	GH      *gh.Accessor
	Cfg     *config.Config
	Backups *store.BackupStore
	Log     *logging.Logger
}

// RegisterAll registers the complete tool surface on reg.
func RegisterAll(reg *tool.Registry, d *Deps) {
	registerRepositoryTools(reg, d)
	registerIssueTools(reg, d)
	registerPullRequestTools(reg, d)
	registerReleaseTools(reg, d)
	registerLabelTools(reg, d)
	registerWorkflowTools(reg, d)
	registerWorkspaceTools(reg, d)
	registerBackupTools(reg, d)
}

// collect pages through a list endpoint until limit items have been
// included or the pages run out. The keep filter decides inclusion; items it
// rejects never count against the limit.
func collect[T any](limit int, keep func(T) bool, fetch func(lo github.ListOptions) ([]T, *github.Response, error)) ([]T, error) {
	if limit <= 0 {
		return nil, nil
	}
	perPage := limit
	if perPage > 100 {
		perPage = 100
	}
	lo := github.ListOptions{PerPage: perPage}

	var out []T
	for {
		items, resp, err := fetch(lo)
		if err != nil {
			return nil, gh.Humanize(err)
		}
		for _, item := range items {
			if keep != nil && !keep(item) {
				continue
			}
			out = append(out, item)
			if len(out) >= limit {
				return out, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		lo.Page = resp.NextPage
	}
}

func keepAll[T any](T) bool { return true }

// fmtTime renders API timestamps the way the rest of the output does, or
// "N/A" when the field is missing.
func fmtTime(ts *github.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "N/A"
	}
	return ts.Format(time.DateTime)
}

// orNA substitutes "N/A" for an empty string.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// confirmGate returns the warning text shown when a destructive tool is
// called without confirm. The warning is a successful result; only the
// confirmed call performs the deletion.
func confirmGate(what string) string {
	return fmt.Sprintf("⚠️  WARNING: This will permanently delete %s!\nSet confirm=True to proceed.", what)
}
