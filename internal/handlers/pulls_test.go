package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"number": 7, "title": "Refactor parser", "state": "open",
			 "head": {"ref": "refactor-parser"}, "base": {"ref": "main"},
			 "user": {"login": "alice"}, "comments": 3, "commits": 5,
			 "created_at": "2026-08-21T12:00:00Z",
			 "html_url": "https://example.com/octocat/widgets/pull/7"},
			{"number": 6, "title": "Fix typo", "state": "closed",
			 "merged_at": "2026-08-20T12:00:00Z",
			 "head": {"ref": "fix-typo"}, "base": {"ref": "main"},
			 "user": {"login": "bob"}, "comments": 0, "commits": 1,
			 "created_at": "2026-08-19T12:00:00Z",
			 "html_url": "https://example.com/octocat/widgets/pull/6"}
		]`))
	})
	env := newTestEnv(t, mux)

	res := env.call("list_pull_requests", map[string]any{"repo_name": "octocat/widgets"})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "#7: Refactor parser")
	assert.Contains(t, res.Text, "State: open | refactor-parser → main")
	assert.Contains(t, res.Text, "#6: Fix typo")
	assert.Contains(t, res.Text, "✅ Merged | fix-typo → main")
	assert.Contains(t, res.Text, "Comments: 3 | Commits: 5")
}

func TestListPullRequestsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	env := newTestEnv(t, mux)

	res := env.call("list_pull_requests", map[string]any{"repo_name": "octocat/widgets"})
	require.False(t, res.IsError)
	assert.Equal(t, "No pull requests found.", res.Text)
}

func TestCreatePullRequestDefaultBase(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octocat/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "feature/login", body["head"])
		assert.Equal(t, "main", body["base"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 8, "title": "Add login",
			"html_url": "https://example.com/octocat/widgets/pull/8"}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("create_pull_request", map[string]any{
		"repo_name": "octocat/widgets",
		"title":     "Add login",
		"head":      "feature/login",
	})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "Pull request created successfully!")
	assert.Contains(t, res.Text, "#8: Add login")
	assert.Contains(t, res.Text, "feature/login → main")
}

func TestMergePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/octocat/widgets/pulls/8/merge", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "squash", body["merge_method"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"merged": true}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("merge_pull_request", map[string]any{
		"repo_name":    "octocat/widgets",
		"pr_number":    float64(8),
		"merge_method": "squash",
	})
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Pull request #8 merged successfully using squash.", res.Text)
}

func TestMergePullRequestConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/octocat/widgets/pulls/9/merge", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"message": "Pull Request is not mergeable"}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("merge_pull_request", map[string]any{
		"repo_name": "octocat/widgets",
		"pr_number": float64(9),
	})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Pull Request is not mergeable", res.Text)
}
