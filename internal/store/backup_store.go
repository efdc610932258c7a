package store

import (
	"time"

	"github.com/google/uuid"
)

// Backup statuses as recorded in the catalog.
const (
	BackupComplete = "complete"
	BackupPartial  = "partial"
)

// Backup is one catalog entry for a mirror created on disk.
type Backup struct {
	ID              string
	RepoName        string
	Path            string
	IncludeMetadata bool
	Status          string
	CreatedAt       time.Time
}

// BackupStore records and queries the backup catalog.
type BackupStore struct {
	db *DB
}

// NewBackupStore creates a backup store using the given database.
func NewBackupStore(db *DB) *BackupStore {
	return &BackupStore{db: db}
}

// Record inserts a catalog entry and returns it with its generated ID.
func (s *BackupStore) Record(repoName, path, status string, includeMetadata bool) (*Backup, error) {
	b := &Backup{
		ID:              uuid.New().String(),
		RepoName:        repoName,
		Path:            path,
		IncludeMetadata: includeMetadata,
		Status:          status,
		CreatedAt:       time.Now(),
	}
	_, err := s.db.sql.Exec(
		`INSERT INTO backups (id, repo_name, path, include_metadata, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.RepoName, b.Path, b.IncludeMetadata, b.Status,
		b.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns catalog entries newest first. An empty repoName returns all.
func (s *BackupStore) List(repoName string) ([]*Backup, error) {
	query := `SELECT id, repo_name, path, include_metadata, status, created_at
	          FROM backups`
	args := []any{}
	if repoName != "" {
		query += ` WHERE repo_name = ?`
		args = append(args, repoName)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.sql.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Backup
	for rows.Next() {
		var b Backup
		var createdAt string
		if err := rows.Scan(&b.ID, &b.RepoName, &b.Path, &b.IncludeMetadata, &b.Status, &createdAt); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		out = append(out, &b)
	}
	return out, rows.Err()
}

// Count returns the number of catalog entries.
func (s *BackupStore) Count() (int, error) {
	var n int
	err := s.db.sql.QueryRow(`SELECT COUNT(*) FROM backups`).Scan(&n)
	return n, err
}
