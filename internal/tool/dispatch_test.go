package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDispatcher(t *testing.T, descriptors ...*Descriptor) *Dispatcher {
	t.Helper()
	reg := NewRegistry(testLogger())
	for _, d := range descriptors {
		require.NoError(t, reg.Register(d))
	}
	return NewDispatcher(reg, testLogger())
}

func TestDispatch_Success(t *testing.T) {
	d := testDispatcher(t, &Descriptor{
		Name: "echo",
		Params: []Param{
			{Name: "text", Type: TypeString, Required: true},
		},
		Handler: func(_ context.Context, args Args) (string, error) {
			return args.String("text"), nil
		},
	})

	res := d.Dispatch(context.Background(), Request{
		Name:      "echo",
		Arguments: map[string]any{"text": "hello"},
	})
	assert.False(t, res.IsError)
	assert.Equal(t, "hello", res.Text)
}

func TestDispatch_UnknownToolNamesTheTool(t *testing.T) {
	d := testDispatcher(t)

	res := d.Dispatch(context.Background(), Request{Name: "no_such_tool"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "no_such_tool")
	assert.Equal(t, "unknown tool: no_such_tool", res.Text)
}

func TestDispatch_HandlerErrorRendered(t *testing.T) {
	d := testDispatcher(t, &Descriptor{
		Name: "failing",
		Handler: func(_ context.Context, _ Args) (string, error) {
			return "", errors.New("Not Found")
		},
	})

	res := d.Dispatch(context.Background(), Request{Name: "failing"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Not Found", res.Text)
}

func TestDispatch_BindingErrorBeforeInvocation(t *testing.T) {
	invoked := false
	d := testDispatcher(t, &Descriptor{
		Name:   "guarded",
		Params: []Param{{Name: "repo_name", Type: TypeString, Required: true}},
		Handler: func(_ context.Context, _ Args) (string, error) {
			invoked = true
			return "", nil
		},
	})

	res := d.Dispatch(context.Background(), Request{Name: "guarded"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "repo_name")
	assert.False(t, invoked, "handler must not run when binding fails")
}

func TestDispatch_PanicContained(t *testing.T) {
	d := testDispatcher(t, &Descriptor{
		Name: "explosive",
		Handler: func(_ context.Context, _ Args) (string, error) {
			panic("boom")
		},
	})

	res := d.Dispatch(context.Background(), Request{Name: "explosive"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "explosive")
	assert.Contains(t, res.Text, "boom")
}

func TestDispatch_Idempotent(t *testing.T) {
	calls := 0
	d := testDispatcher(t, &Descriptor{
		Name: "info",
		Handler: func(_ context.Context, _ Args) (string, error) {
			calls++
			return "stable output", nil
		},
	})

	req := Request{Name: "info", Arguments: map[string]any{}}
	first := d.Dispatch(context.Background(), req)
	second := d.Dispatch(context.Background(), req)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, calls)
}
