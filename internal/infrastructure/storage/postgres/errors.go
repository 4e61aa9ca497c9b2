package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"supplytrack/internal/core/apperror"
)

// PostgreSQL error codes the storage layer cares about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateError maps driver-level constraint violations to domain
// errors. Unique index violations are the race-proof backstop for the
// service-level uniqueness checks, so they must surface as the same
// duplicate error kind.
func TranslateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return apperror.NewDuplicate(entity, "unique field", pgErr.ConstraintName).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case pgForeignKeyViolation:
		return apperror.NewBusinessRule("record is referenced by other records").
			WithDetail("entity", entity).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}

	return err
}
