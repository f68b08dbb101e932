// Package migrations applies the embedded schema scripts, recording
// applied versions in a migrations table so reruns are no-ops.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed *.sql
var schemaFS embed.FS

// RunMigrations applies every pending *.up.sql script. Each script runs
// in its own transaction together with the version bookkeeping row.
func RunMigrations(db *sql.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	// ReadDir returns entries sorted by name; zero-padded version
	// prefixes keep that in version order.
	entries, err := schemaFS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			continue
		}
		if applied[version] {
			continue
		}

		script, err := schemaFS.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %d: %w", version, err)
		}

		if err := applyMigration(db, version, string(script)); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := db.Exec(query)
	return err
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, version int, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(script); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
