package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/cardstore/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		if code&0xff != sqlite3.SQLITE_CONSTRAINT {
			return false
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "unique")
}

// mapCardWriteError translates a failed card insert or update into the
// user-facing duplicate error, passing other failures through.
func mapCardWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicateCard
	}
	return fmt.Errorf("failed to %s card: %w", op, err)
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound with a description of what
// was looked up.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf("failed to look up %s: %w", fmt.Sprintf(format, args...), err)
}
