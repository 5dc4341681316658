// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

/*
Package dberr translates low-level PostgreSQL driver errors into
application-level errors.

# Architecture

Storage implementations call [Translate] on any error returned by pgx before
propagating it. This keeps driver-specific error inspection (SQLSTATE codes)
out of the service layer: services only ever see [apperr.AppError] values or
wrapped opaque errors.
*/
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
)

/*
Translate converts a PostgreSQL error into a domain-friendly error.

Parameters:
  - err: The raw error returned by a pgx query
  - notFoundMessage: Message used when no rows matched
  - conflictMessage: Message used when a unique constraint was violated

Returns:
  - error: An *apperr.AppError for recognized conditions, or the original error
*/
func Translate(err error, notFoundMessage, conflictMessage string) error {
	if err == nil {
		return nil
	}

	// No rows is the most common storage outcome worth a dedicated error.
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFoundMessage)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	return err
}

/*
IsUniqueViolation reports whether the error is a PostgreSQL unique
constraint violation, optionally scoped to a specific constraint name.

Parameters:
  - err: The raw error returned by a pgx query
  - constraintName: Constraint to match; empty string matches any constraint

Returns:
  - bool: true if the error is a matching unique violation
*/
func IsUniqueViolation(err error, constraintName string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return false
	}

	if pgError.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraintName == "" || pgError.ConstraintName == constraintName
}

/*
IsNoRows reports whether the error means the query matched no rows.
*/
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
