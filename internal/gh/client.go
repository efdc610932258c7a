// Package gh wraps the GitHub REST client with lazy construction, owner
// resolution, and rate-limit awareness.
package gh

import (
	"context"
	"strings"
	"sync"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/logging"
)

// Accessor builds the REST client on first use and hands out the same
// instance afterwards. Safe for concurrent use, which matters when the SSE
// transport serves several sessions at once.
type Accessor struct {
	cfg config.GitHubConfig
	log *logging.Logger

	once   sync.Once
	client *github.Client
}

// NewAccessor returns an Accessor that constructs the client lazily from the
// configured token.
func NewAccessor(cfg config.GitHubConfig, log *logging.Logger) *Accessor {
	return &Accessor{cfg: cfg, log: log.Sub("gh")}
}

// NewAccessorWithClient returns an Accessor backed by a preset client.
// Used by tests to point the accessor at a fixture server.
func NewAccessorWithClient(cfg config.GitHubConfig, client *github.Client, log *logging.Logger) *Accessor {
	return &Accessor{cfg: cfg, log: log.Sub("gh"), client: client}
}

// Client returns the shared REST client, constructing it on first call.
func (a *Accessor) Client(ctx context.Context) *github.Client {
	a.once.Do(func() {
		if a.client != nil {
			return
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.cfg.Token})
		a.client = github.NewClient(oauth2.NewClient(ctx, ts))
		a.log.Debug().Str("username", a.cfg.Username).Msg("constructed API client")
	})
	return a.client
}

// Owner returns the account that bare repository names resolve against:
// the configured organization when set, the username otherwise.
func (a *Accessor) Owner() string {
	if a.cfg.Org != "" {
		return a.cfg.Org
	}
	return a.cfg.Username
}

// ResolveRepo splits a repository reference into owner and name. A bare name
// resolves against Owner; an "owner/repo" reference is used as-is.
func (a *Accessor) ResolveRepo(name string) (string, string) {
	if owner, repo, ok := strings.Cut(name, "/"); ok {
		return owner, repo
	}
	return a.Owner(), name
}

// Threshold returns the configured rate-limit warning threshold.
func (a *Accessor) Threshold() int {
	return a.cfg.RateLimitThreshold
}

// CheckRateLimit logs a warning when the core pool drops below the
// configured threshold. Errors are logged and swallowed so the check never
// blocks a tool call.
func (a *Accessor) CheckRateLimit(ctx context.Context) {
	limits, _, err := a.Client(ctx).RateLimit.Get(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("rate limit check failed")
		return
	}
	core := limits.GetCore()
	if core != nil && core.Remaining < a.cfg.RateLimitThreshold {
		a.log.Warn().
			Int("remaining", core.Remaining).
			Int("limit", core.Limit).
			Time("reset", core.Reset.Time).
			Msg("rate limit running low")
	}
}
