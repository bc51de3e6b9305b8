// Package repository contains the data access layer backed by GORM.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories aggregates every repository so the server can be wired with
// one dependency.
type Repositories struct {
	User   UserRepository
	Pin    PinRepository
	Follow FollowRepository
}

// NewRepositories creates all repositories backed by the given database.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Pin:    NewPinRepository(db),
		Follow: NewFollowRepository(db),
	}
}

// isUniqueViolation reports whether err is a unique constraint violation.
// GORM translates driver errors when TranslateError is set, but the string
// fallback covers raw SQLite errors surfaced from Exec paths.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
