package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create backups catalog",
		SQL: `
			CREATE TABLE backups (
				id               TEXT PRIMARY KEY,
				repo_name        TEXT NOT NULL,
				path             TEXT NOT NULL,
				include_metadata INTEGER NOT NULL DEFAULT 1,
				status           TEXT NOT NULL DEFAULT 'complete',
				created_at       TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_backups_repo ON backups (repo_name, created_at);
		`,
	},
}
