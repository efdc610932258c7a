// Package mcpserver exposes the tool registry over the Model Context
// Protocol, on stdio or SSE. The protocol layer stays thin: descriptors are
// converted to MCP tool schemas and every call funnels through the
// dispatcher, so transport choice never changes call semantics.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/logging"
	"github.com/soyeahso/gh-manager/internal/tool"
	"github.com/soyeahso/gh-manager/internal/version"
)

// Server bridges the registry and dispatcher onto MCP.
type Server struct {
	mcp  *server.MCPServer
	disp *tool.Dispatcher
	cfg  *config.Config
	gh   *gh.Accessor
	log  *logging.Logger
}

// New builds the MCP server, registering every descriptor in reg as an MCP
// tool plus the read-only resources.
func New(reg *tool.Registry, disp *tool.Dispatcher, cfg *config.Config, acc *gh.Accessor, log *logging.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer("gh-manager", version.Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
		disp: disp,
		cfg:  cfg,
		gh:   acc,
		log:  log.Sub("mcp"),
	}

	for d := range reg.All() {
		s.mcp.AddTool(toMCPTool(d), s.toolHandler(d.Name))
	}
	s.registerResources()

	s.log.Info().Int("tools", reg.Count()).Msg("MCP server assembled")
	return s
}

// toMCPTool converts a descriptor's parameter schema into an MCP tool
// declaration.
func toMCPTool(d *tool.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Summary)}
	for _, p := range d.Params {
		var popts []mcp.PropertyOption
		if p.Description != "" {
			popts = append(popts, mcp.Description(p.Description))
		}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		switch p.Type {
		case tool.TypeString:
			if s, ok := p.Default.(string); ok {
				popts = append(popts, mcp.DefaultString(s))
			}
			opts = append(opts, mcp.WithString(p.Name, popts...))
		case tool.TypeInt:
			if n, ok := p.Default.(int); ok {
				popts = append(popts, mcp.DefaultNumber(float64(n)))
			}
			opts = append(opts, mcp.WithNumber(p.Name, popts...))
		case tool.TypeBool:
			if b, ok := p.Default.(bool); ok {
				popts = append(popts, mcp.DefaultBool(b))
			}
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		case tool.TypeStringList:
			popts = append(popts, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, popts...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}

// toolHandler routes an MCP call through the dispatcher. Failures come back
// as error-flagged results, never as protocol errors.
func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.disp.Dispatch(ctx, tool.Request{Name: name, Arguments: req.GetArguments()})
		if res.IsError {
			return mcp.NewToolResultError(res.Text), nil
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}

// Serve blocks on the configured transport.
func (s *Server) Serve(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case "sse":
		addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
		s.log.Info().Str("addr", addr).Msg("serving over SSE")
		return server.NewSSEServer(s.mcp).Start(addr)
	default:
		s.log.Info().Msg("serving over stdio")
		return server.ServeStdio(s.mcp)
	}
}
