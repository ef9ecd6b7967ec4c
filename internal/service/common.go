package service

import (
	"errors"
	"fmt"

	"wm-backend/internal/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseID turns a path id into a uuid. Malformed ids are reported as
// missing resources.
func parseID(id, notFoundMsg string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFoundMsg)
	}
	return parsed, nil
}

// notFoundOr maps gorm.ErrRecordNotFound to apperror.NotFound and wraps
// every other error with op.
func notFoundOr(err error, notFoundMsg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// offset converts a 1-based page into a row offset.
func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// UserSummary is the compact user projection embedded in other responses.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}
