package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/gh-manager/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(nil, "silent")
}

func noopHandler(_ context.Context, _ Args) (string, error) {
	return "ok", nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := NewRegistry(testLogger())
	err := reg.Register(&Descriptor{Name: "list_repositories", Handler: noopHandler})
	require.NoError(t, err)

	d, err := reg.Resolve("list_repositories")
	require.NoError(t, err)
	assert.Equal(t, "list_repositories", d.Name)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := NewRegistry(testLogger())

	_, err := reg.Resolve("nonexistent")
	require.Error(t, err)
	var unknown *UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nonexistent", unknown.Name)
	assert.Equal(t, "unknown tool: nonexistent", err.Error())
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry(testLogger())
	require.NoError(t, reg.Register(&Descriptor{Name: "create_issue", Handler: noopHandler}))

	err := reg.Register(&Descriptor{Name: "create_issue", Handler: noopHandler})
	require.Error(t, err)
	var dup *DuplicateToolNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "create_issue", dup.Name)
}

func TestRegistry_AllRegistrationOrder(t *testing.T) {
	reg := NewRegistry(testLogger())
	names := []string{"alpha", "bravo", "charlie"}
	for _, n := range names {
		require.NoError(t, reg.Register(&Descriptor{Name: n, Handler: noopHandler}))
	}

	var got []string
	for d := range reg.All() {
		got = append(got, d.Name)
	}
	assert.Equal(t, names, got)

	// Restartable: a second pass yields the same sequence.
	got = got[:0]
	for d := range reg.All() {
		got = append(got, d.Name)
	}
	assert.Equal(t, names, got)
}

func TestRegistry_AllEachNameOnce(t *testing.T) {
	reg := NewRegistry(testLogger())
	require.NoError(t, reg.Register(&Descriptor{Name: "backup_repository", Handler: noopHandler}))
	require.NoError(t, reg.Register(&Descriptor{Name: "restore_repository", Handler: noopHandler}))

	seen := map[string]int{}
	for d := range reg.All() {
		_, err := reg.Resolve(d.Name)
		require.NoError(t, err)
		seen[d.Name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "tool %s listed more than once", name)
	}
	assert.Equal(t, 2, reg.Count())
}

func TestRegistry_RejectsBadDescriptors(t *testing.T) {
	reg := NewRegistry(testLogger())

	assert.Error(t, reg.Register(&Descriptor{Name: "", Handler: noopHandler}))
	assert.Error(t, reg.Register(&Descriptor{Name: "no_handler"}))
	assert.Error(t, reg.Register(&Descriptor{
		Name:    "dup_param",
		Handler: noopHandler,
		Params: []Param{
			{Name: "limit", Type: TypeInt},
			{Name: "limit", Type: TypeInt},
		},
	}))
	assert.Error(t, reg.Register(&Descriptor{
		Name:    "bad_default",
		Handler: noopHandler,
		Params:  []Param{{Name: "limit", Type: TypeInt, Default: "thirty"}},
	}))
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.MustRegister(&Descriptor{Name: "ok", Handler: noopHandler})

	assert.Panics(t, func() {
		reg.MustRegister(&Descriptor{Name: "ok", Handler: noopHandler})
	})
}
