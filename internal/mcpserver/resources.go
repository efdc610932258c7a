package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/soyeahso/gh-manager/internal/gh"
)

const (
	configResourceURI    = "config://github"
	rateLimitResourceURI = "status://rate-limit"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(configResourceURI, "GitHub Configuration",
		mcp.WithResourceDescription("Active configuration with the token redacted"),
		mcp.WithMIMEType("text/plain"),
	), s.readConfigResource)

	s.mcp.AddResource(mcp.NewResource(rateLimitResourceURI, "API Rate Limit",
		mcp.WithResourceDescription("Current core and search rate limit pools"),
		mcp.WithMIMEType("text/plain"),
	), s.readRateLimitResource)
}

func (s *Server) readConfigResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      configResourceURI,
			MIMEType: "text/plain",
			Text:     s.cfg.Summary(),
		},
	}, nil
}

func (s *Server) readRateLimitResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	limits, _, err := s.gh.Client(ctx).RateLimit.Get(ctx)
	if err != nil {
		return nil, gh.Humanize(err)
	}

	text := "Rate Limit Status:\n"
	if core := limits.GetCore(); core != nil {
		text += fmt.Sprintf("- Core: %d/%d remaining (resets %s)\n",
			core.Remaining, core.Limit, core.Reset.Format("15:04:05"))
	}
	if search := limits.GetSearch(); search != nil {
		text += fmt.Sprintf("- Search: %d/%d remaining (resets %s)\n",
			search.Remaining, search.Limit, search.Reset.Format("15:04:05"))
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      rateLimitResourceURI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}
