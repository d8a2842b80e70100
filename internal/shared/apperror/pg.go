package apperror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// IsPgCode reports whether err wraps a postgres error with the given SQLSTATE.
func IsPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsUniqueViolation also accepts gorm's translated error so it works with
// TranslateError enabled and with other dialects.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || IsPgCode(err, PgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || IsPgCode(err, PgForeignKeyViolation)
}

// ConstraintName returns the violated constraint of a postgres error, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
