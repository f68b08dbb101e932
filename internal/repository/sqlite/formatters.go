package sqlite

import (
	"time"
)

// dbDateLayout is the ISO calendar date layout used for the deadline column.
// Keeping dates in this form makes lexical ordering equal to chronological
// ordering inside SQLite.
const dbDateLayout = "2006-01-02"

// FormatDateForDB formats a calendar date for consistent database storage
func FormatDateForDB(t time.Time) string {
	return t.Format(dbDateLayout)
}

// ParseDateFromDB parses a stored calendar date from the database
func ParseDateFromDB(s string) (time.Time, error) {
	return time.Parse(dbDateLayout, s)
}
