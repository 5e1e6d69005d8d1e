package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input data")
	ErrConversion   = errors.New("column conversion failed")
	ErrConstraint   = errors.New("database constraint violated")
)

// storeError wraps a driver error, turning integrity violations (SQLSTATE
// class 23) into ErrConstraint.
func storeError(err error, format string, args ...any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%s: %w: %s (%s)", fmt.Sprintf(format, args...), ErrConstraint, pgErr.Message, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
