package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is returned when an insert breaks a unique constraint.
// The pre-checks in the service layer are only an optimization; under
// concurrent writes the database constraint is the real guarantee and this
// error is what surfaces it.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pgUniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}
