package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert or update violates a unique constraint.
	ErrConflict = errors.New("duplicate value for unique field")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidValue is returned when a value does not fit its column.
	ErrInvalidValue = errors.New("value too long or out of range")
)

// SQLSTATE codes the store translates into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
)

// ConstraintError reports which constraint a write violated. It matches
// ErrConflict, ErrInvalidReference or ErrInvalidValue under errors.Is.
// For ErrInvalidValue, Constraint holds the column name when the server
// reports one.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s (%s)", e.Kind.Error(), e.Constraint)
}

func (e *ConstraintError) Unwrap() []error { return []error{e.Kind, e.Err} }

// MapError converts driver errors into the package sentinels. Errors it does
// not recognize are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &ConstraintError{Kind: ErrConflict, Constraint: pgErr.ConstraintName, Err: err}
		case codeForeignKeyViolation:
			return &ConstraintError{Kind: ErrInvalidReference, Constraint: pgErr.ConstraintName, Err: err}
		case codeStringTooLong, codeNumericOutOfRange:
			return &ConstraintError{Kind: ErrInvalidValue, Constraint: pgErr.ColumnName, Err: err}
		}
	}
	return err
}

// ConstraintName returns the constraint named by a mapped write error, or "".
func ConstraintName(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// RequireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func RequireAffected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
