package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// IsNotFound reports whether the error is a missing-row condition.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether the error is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolationCode
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// driver-specific errors that reach us untyped (sqlite in tests)
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
