package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgCodeUniqueViolation     = "23505"
	PgCodeForeignKeyViolation = "23503"
	PgCodeUndefinedTable      = "42P01"
	PgCodeInvalidText         = "22P02"
)

// PgErrorCode returns the SQLSTATE code of a postgres error, or an empty string.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	return PgErrorCode(err) == PgCodeUniqueViolation
}

// IsForeignKeyViolationError checks if the error is a foreign key violation error
func IsForeignKeyViolationError(err error) bool {
	return PgErrorCode(err) == PgCodeForeignKeyViolation
}

// IsUndefinedTableError reports a query against a table that does not exist.
func IsUndefinedTableError(err error) bool {
	return PgErrorCode(err) == PgCodeUndefinedTable
}

// IsInvalidTextError reports a value postgres could not parse into the column
// type, e.g. a malformed uuid.
func IsInvalidTextError(err error) bool {
	return PgErrorCode(err) == PgCodeInvalidText
}
