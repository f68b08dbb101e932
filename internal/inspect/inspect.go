// Package inspect dumps the tasks table in tabular form, straight from
// the database file. It bypasses the service entirely and never writes.
package inspect

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"tasktrack/internal/domain"

	_ "modernc.org/sqlite"
)

const (
	nameColumnWidth = 30
	tableWidth      = 60
)

// Dump opens the database at dbPath and writes all tasks ordered by
// ascending ID to w.
func Dump(dbPath string, w io.Writer) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, name, deadline FROM tasks ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	type row struct {
		id       int64
		name     string
		deadline string
	}

	var tasks []row
	for rows.Next() {
		var t row
		if err := rows.Scan(&t.id, &t.name, &t.deadline); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "The database is empty")
		return nil
	}

	rule := strings.Repeat("-", tableWidth)
	fmt.Fprintln(w, "Tasks in the database:")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| %5s | %-*s | %10s |\n", "ID", nameColumnWidth, "Name", "Deadline")
	fmt.Fprintln(w, rule)

	for _, t := range tasks {
		fmt.Fprintf(w, "| %5d | %-*s | %10s |\n", t.id, nameColumnWidth, truncate(t.name, nameColumnWidth), formatDeadline(t.deadline))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total tasks: %d\n", len(tasks))
	return nil
}

// truncate cuts a name down to the column width without splitting a
// multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// formatDeadline converts the stored date to DD.MM.YYYY, falling back
// to the raw value if the row predates the current storage format.
func formatDeadline(stored string) string {
	parsed, err := time.Parse("2006-01-02", stored)
	if err != nil {
		return stored
	}
	return parsed.Format(domain.DeadlineFormat)
}
