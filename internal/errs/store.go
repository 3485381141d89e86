package errs

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

var nonWord = regexp.MustCompile(`[^A-Z0-9]+`)

// FromStore classifies an error coming out of gorm. Errors that are already
// classified pass through unchanged; anything unknown becomes Internal.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Constraint(constraintCode(pgErr.ConstraintName, "UNIQUE_VIOLATION"), "value already exists", err)
		case pgForeignKeyViolation:
			return Constraint(constraintCode(pgErr.ConstraintName, "FOREIGN_KEY_VIOLATION"), "row is still referenced or references a missing row", err)
		case pgCheckViolation:
			return Constraint(constraintCode(pgErr.ConstraintName, "CHECK_VIOLATION"), "value violates a check constraint", err)
		}
		return Internal(err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return Constraint(sqliteConstraintCode(liteErr.Error(), "UQ_", "UNIQUE_VIOLATION"), "value already exists", err)
		case sqlite3.ErrConstraintForeignKey:
			return Constraint("FOREIGN_KEY_VIOLATION", "row is still referenced or references a missing row", err)
		case sqlite3.ErrConstraintCheck:
			return Constraint(sqliteConstraintCode(liteErr.Error(), "", "CHECK_VIOLATION"), "value violates a check constraint", err)
		}
	}

	return Internal(err)
}

// IsNotFound reports whether err is a store miss or an already classified 404.
func IsNotFound(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Type == TypeNotFound
}

func constraintCode(name, fallback string) string {
	code := strings.Trim(nonWord.ReplaceAllString(strings.ToUpper(name), "_"), "_")
	if code == "" {
		return fallback
	}
	return code
}

// sqlite reports "UNIQUE constraint failed: branches.slug" (columns) or
// "CHECK constraint failed: chk_name" (named constraint).
func sqliteConstraintCode(msg, prefix, fallback string) string {
	_, target, found := strings.Cut(msg, "constraint failed:")
	if !found {
		return fallback
	}
	code := constraintCode(target, "")
	if code == "" {
		return fallback
	}
	if prefix != "" && !strings.HasPrefix(code, prefix) {
		code = prefix + code
	}
	return code
}
