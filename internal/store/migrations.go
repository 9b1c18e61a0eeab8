package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the file metrics cache table.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS file_metrics (
			path             TEXT NOT NULL,
			exclude_comments BOOLEAN NOT NULL,
			mtime_unix       INTEGER NOT NULL,
			size_bytes       INTEGER NOT NULL,
			language         TEXT NOT NULL,
			total_lines      INTEGER NOT NULL,
			code_lines       INTEGER NOT NULL,
			function_count   INTEGER NOT NULL,
			class_count      INTEGER NOT NULL,
			control_count    INTEGER NOT NULL,
			import_count     INTEGER NOT NULL,
			parse_failed     BOOLEAN NOT NULL,
			PRIMARY KEY (path, exclude_comments)
		)`,

		`DELETE FROM schema_version`,
		fmt.Sprintf(`INSERT INTO schema_version (version) VALUES (%d)`, currentSchemaVersion),
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}
	return nil
}
