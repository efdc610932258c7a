package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/gh-manager/internal/logging"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func testLogger() *logging.Logger {
	return logging.New(nil, "silent")
}

func sampleDescriptor() *tool.Descriptor {
	return &tool.Descriptor{
		Name:    "list_things",
		Summary: "List things",
		Params: []tool.Param{
			{Name: "owner", Type: tool.TypeString, Required: true, Description: "Owner account"},
			{Name: "state", Type: tool.TypeString, Default: "open"},
			{Name: "limit", Type: tool.TypeInt, Default: 20},
			{Name: "verbose", Type: tool.TypeBool, Default: false},
			{Name: "tags", Type: tool.TypeStringList},
		},
		Handler: func(ctx context.Context, args tool.Args) (string, error) {
			return "ok", nil
		},
	}
}

func TestToMCPToolSchema(t *testing.T) {
	mt := toMCPTool(sampleDescriptor())

	assert.Equal(t, "list_things", mt.Name)
	assert.Equal(t, "List things", mt.Description)
	assert.Equal(t, []string{"owner"}, mt.InputSchema.Required)

	props := mt.InputSchema.Properties
	require.Contains(t, props, "owner")
	require.Contains(t, props, "state")
	require.Contains(t, props, "limit")
	require.Contains(t, props, "verbose")
	require.Contains(t, props, "tags")

	owner, ok := props["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", owner["type"])
	assert.Equal(t, "Owner account", owner["description"])

	state, ok := props["state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "open", state["default"])

	limit, ok := props["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", limit["type"])
	assert.Equal(t, float64(20), limit["default"])

	tags, ok := props["tags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", tags["type"])
}

func TestToolHandlerWrapsDispatchResults(t *testing.T) {
	log := testLogger()
	reg := tool.NewRegistry(log)
	reg.MustRegister(sampleDescriptor())
	disp := tool.NewDispatcher(reg, log)
	s := &Server{disp: disp, log: log}

	handler := s.toolHandler("list_things")

	req := mcp.CallToolRequest{}
	req.Params.Name = "list_things"
	req.Params.Arguments = map[string]any{"owner": "octocat"}
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	// A binding failure surfaces as an error-flagged result, not a
	// protocol error.
	req.Params.Arguments = map[string]any{}
	res, err = handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
