package repository

import (
	"errors"
	"fmt"
	"strings"

	"fixify/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// translate maps store errors onto the domain error kinds. what names the
// entity for the message ("user", "service request").
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", domain.ErrNotFound, what)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	}
	return err
}
