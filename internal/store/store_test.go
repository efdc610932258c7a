package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/gh-manager/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.New(nil, "silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	db, err := Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.migrate())

	var n int
	require.NoError(t, db.sql.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, len(migrations), n)
}

func TestBackupRecordAndList(t *testing.T) {
	s := NewBackupStore(testDB(t))

	first, err := s.Record("widgets", "/backups/widgets/20260829_120000", BackupComplete, true)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = s.Record("gadgets", "/backups/gadgets/20260829_120500", BackupPartial, false)
	require.NoError(t, err)

	all, err := s.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)

	widgets, err := s.List("widgets")
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, "widgets", widgets[0].RepoName)
	assert.Equal(t, BackupComplete, widgets[0].Status)
	assert.True(t, widgets[0].IncludeMetadata)
	assert.False(t, widgets[0].CreatedAt.IsZero())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBackupListEmpty(t *testing.T) {
	s := NewBackupStore(testDB(t))
	out, err := s.List("missing")
	require.NoError(t, err)
	assert.Empty(t, out)
}
