package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"lotuslab/internal/domain"
)

// IsForeignKeyError checks if err is a foreign key constraint violation
func IsForeignKeyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// IsRootParentError checks if err is the folders CHECK that keeps the root
// parentless and every other folder parented
func IsRootParentError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK &&
			strings.Contains(sqliteErr.Error(), rootParentConstraint)
	}
	return false
}

const rootParentConstraint = "_root_has_no_parent"

// classify maps a driver error for a single-row statement on resource into
// the domain taxonomy.
func classify(op, resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", resource, domain.ErrNotFound)
	case IsForeignKeyError(err):
		return fmt.Errorf("%s: foreign key constraint violated: %w", resource, domain.ErrInvalidInput)
	case IsRootParentError(err):
		return fmt.Errorf("%s: %w", resource, domain.ErrRootFolder)
	default:
		return domain.WrapDB(op, err)
	}
}
