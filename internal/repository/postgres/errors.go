package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lotuslab/internal/domain"
)

// IsPgRootParentError checks if error is the folders CHECK that keeps the
// root parentless and every other folder parented
func IsPgRootParentError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23514 = check_violation
		return pgErr.Code == "23514" && strings.HasSuffix(pgErr.ConstraintName, "_root_has_no_parent")
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// classify maps a driver error for a single-row statement on resource into
// the domain taxonomy.
func classify(op, resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsPgNoRowsError(err):
		return fmt.Errorf("%s: %w", resource, domain.ErrNotFound)
	case IsPgForeignKeyError(err):
		return fmt.Errorf("%s: foreign key constraint violated: %w", resource, domain.ErrInvalidInput)
	case IsPgRootParentError(err):
		return fmt.Errorf("%s: %w", resource, domain.ErrRootFolder)
	default:
		return domain.WrapDB(op, err)
	}
}
