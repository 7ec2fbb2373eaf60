package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for unique constraint
// failures.
const pgUniqueViolation = "23505"

// pgInvalidTextRepresentation is reported when a literal cannot be cast to
// the column type, e.g. a malformed uuid.
const pgInvalidTextRepresentation = "22P02"

// IsUniqueViolation reports whether err (or anything it wraps) is a
// PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsInvalidTextRepresentation reports whether err (or anything it wraps) is
// a PostgreSQL cast failure on an input literal.
func IsInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgInvalidTextRepresentation
	}
	return false
}
