package store

// migration holds a single schema migration with its target version and
// the statements that apply it. Statements run one at a time because the
// MySQL driver rejects multi-statement Exec calls by default.
type migration struct {
	version    int
	statements []string
}

// sqliteMigrations is the ordered list of SQLite schema migrations.
// Each migration's version must be sequential starting from 1.
var sqliteMigrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
)`,
			// AUTOINCREMENT keeps SQLite from reusing the ID of a removed row.
			`CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	deadline     DATETIME NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0 CHECK(is_completed IN (0, 1))
)`,
			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_is_completed ON tasks(is_completed)`,
			`INSERT INTO schema_version (version) VALUES (2)`,
		},
	},
}

// mysqlMigrations mirrors sqliteMigrations for MySQL.
var mysqlMigrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
	version INT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tasks (
	id           BIGINT AUTO_INCREMENT PRIMARY KEY,
	title        VARCHAR(255) NOT NULL DEFAULT '',
	description  TEXT NOT NULL,
	deadline     DATETIME(6) NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE
)`,
			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE INDEX idx_tasks_deadline ON tasks(deadline)`,
			`CREATE INDEX idx_tasks_is_completed ON tasks(is_completed)`,
			`INSERT INTO schema_version (version) VALUES (2)`,
		},
	},
}
