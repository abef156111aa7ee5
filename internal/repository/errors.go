package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalidReference is returned when a write points at a customer,
// employee or product that does not exist.
var ErrInvalidReference = errors.New("referenced customer, employee or product does not exist")

// ErrValueOutOfRange is returned when a quantity or amount does not fit its column.
var ErrValueOutOfRange = errors.New("value out of range")

const (
	uniqueViolation        = "23505"
	foreignKeyViolation    = "23503"
	numericValueOutOfRange = "22003"
)

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
