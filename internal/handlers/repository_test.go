package handlers

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepositoriesFormatsEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"full_name": "octocat/widgets", "description": "Widget factory",
			 "stargazers_count": 42, "forks_count": 7, "language": "Go",
			 "updated_at": "2026-08-01T10:00:00Z", "html_url": "https://example.com/octocat/widgets"},
			{"full_name": "octocat/gadgets",
			 "stargazers_count": 1, "forks_count": 0,
			 "updated_at": "2026-07-01T10:00:00Z", "html_url": "https://example.com/octocat/gadgets"}
		]`))
	})
	env := newTestEnv(t, mux)

	res := env.call("list_repositories", nil)
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "1. octocat/widgets")
	assert.Contains(t, res.Text, "Description: Widget factory")
	assert.Contains(t, res.Text, "Stars: ⭐ 42 | Forks: 🍴 7 | Language: Go")
	assert.Contains(t, res.Text, "2. octocat/gadgets")
	assert.Contains(t, res.Text, "Description: N/A")
	assert.Contains(t, res.Text, "Language: N/A")
}

func TestListRepositoriesHonorsLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"full_name": "octocat/a", "html_url": "https://example.com/a"},
			{"full_name": "octocat/b", "html_url": "https://example.com/b"},
			{"full_name": "octocat/c", "html_url": "https://example.com/c"}
		]`))
	})
	env := newTestEnv(t, mux)

	res := env.call("list_repositories", map[string]any{"limit": float64(2)})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "octocat/a")
	assert.Contains(t, res.Text, "octocat/b")
	assert.NotContains(t, res.Text, "octocat/c")
}

func TestListRepositoriesEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	env := newTestEnv(t, mux)

	res := env.call("list_repositories", nil)
	require.False(t, res.IsError)
	assert.Equal(t, "No repositories found.", res.Text)

	// A zero limit never reaches the API and reports the same sentinel.
	res = env.call("list_repositories", map[string]any{"limit": float64(0)})
	require.False(t, res.IsError)
	assert.Equal(t, "No repositories found.", res.Text)
}

func TestGetRepositoryInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/widgets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"full_name": "octocat/widgets", "description": "Widget factory",
			"html_url": "https://example.com/octocat/widgets",
			"clone_url": "https://example.com/octocat/widgets.git",
			"ssh_url": "git@example.com:octocat/widgets.git",
			"stargazers_count": 42, "forks_count": 7, "watchers_count": 42,
			"open_issues_count": 3, "size": 1024,
			"language": "Go", "default_branch": "main",
			"created_at": "2025-01-01T00:00:00Z", "updated_at": "2026-08-01T10:00:00Z",
			"pushed_at": "2026-08-02T10:00:00Z",
			"private": false, "fork": false, "archived": false,
			"license": {"name": "MIT License"},
			"topics": ["go", "tooling"]
		}`))
	})
	env := newTestEnv(t, mux)

	// Bare names resolve against the configured account.
	res := env.call("get_repository_info", map[string]any{"repo_name": "widgets"})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "Repository: octocat/widgets")
	assert.Contains(t, res.Text, "- Stars: ⭐ 42")
	assert.Contains(t, res.Text, "- Default Branch: main")
	assert.Contains(t, res.Text, "- License: MIT License")
	assert.Contains(t, res.Text, "Topics: go, tooling")
}

func TestGetRepositoryInfoNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("get_repository_info", map[string]any{"repo_name": "octocat/missing"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Not Found", res.Text)
}

func TestCreateRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /user/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"full_name": "octocat/newrepo",
			"html_url": "https://example.com/octocat/newrepo",
			"clone_url": "https://example.com/octocat/newrepo.git",
			"ssh_url": "git@example.com:octocat/newrepo.git"
		}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("create_repository", map[string]any{"name": "newrepo"})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "Repository created successfully!")
	assert.Contains(t, res.Text, "Name: octocat/newrepo")
}

func TestDeleteRepositoryConfirmGate(t *testing.T) {
	var apiCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	env := newTestEnv(t, mux)

	// Without confirm the warning is a successful result and nothing is
	// sent to the API.
	res := env.call("delete_repository", map[string]any{"repo_name": "octocat/widgets"})
	require.False(t, res.IsError)
	assert.Contains(t, res.Text, "WARNING")
	assert.Contains(t, res.Text, "Set confirm=True to proceed.")
	assert.Equal(t, int32(0), apiCalls.Load())

	res = env.call("delete_repository", map[string]any{"repo_name": "octocat/widgets", "confirm": true})
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Repository octocat/widgets has been deleted.", res.Text)
	assert.Equal(t, int32(1), apiCalls.Load())
}

func TestSearchRepositories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/repositories", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mcp server", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count": 1, "items": [
			{"full_name": "acme/mcp", "description": "A server",
			 "stargazers_count": 9, "forks_count": 2, "language": "Go",
			 "html_url": "https://example.com/acme/mcp"}
		]}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("search_repositories", map[string]any{"query": "mcp server"})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, "1. acme/mcp")
}

func TestRepositoryTopics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/widgets/topics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"names": ["go", "tooling"]}`))
	})
	mux.HandleFunc("PUT /repos/octocat/widgets/topics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"names": ["go", "cli"]}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("get_repository_topics", map[string]any{"repo_name": "widgets"})
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Topics for widgets:\n- go\n- tooling", res.Text)

	res = env.call("set_repository_topics", map[string]any{
		"repo_name": "widgets",
		"topics":    []any{"go", "cli"},
	})
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Topics updated for widgets:\n- go\n- cli", res.Text)
}

func TestUpdateRepositorySendsOnlySuppliedFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /repos/octocat/widgets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_name": "octocat/widgets"}`))
	})
	env := newTestEnv(t, mux)

	res := env.call("update_repository", map[string]any{
		"repo_name":   "widgets",
		"description": "A better description",
	})
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Repository widgets updated successfully!", res.Text)
}
