package service

import (
	"context"
	"fmt"
	"strings"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/repository"

	"github.com/google/uuid"
)

type CreateLookupRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
	Order    int    `json:"order"`
}

type UpdateLookupRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
	Order    *int    `json:"order"`
}

// LookupService manages one dropdown table (categories, work types or
// sales channels).
type LookupService[T repository.Lookup] interface {
	ListActive(ctx context.Context) ([]T, error)
	Create(ctx context.Context, req CreateLookupRequest) (*T, error)
	Update(ctx context.Context, id string, req UpdateLookupRequest) (*T, error)
	Delete(ctx context.Context, id string) error
}

type lookupService[T repository.Lookup] struct {
	repo repository.LookupRepository[T]
	tr   *locale.Translator
}

func NewLookupService[T repository.Lookup](repo repository.LookupRepository[T], tr *locale.Translator) LookupService[T] {
	return &lookupService[T]{repo: repo, tr: tr}
}

func lookupBase[T repository.Lookup](item *T) *model.LookupBase {
	return any(item).(interface{ Base() *model.LookupBase }).Base()
}

func (s *lookupService[T]) ListActive(ctx context.Context) ([]T, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lookups: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *lookupService[T]) Create(ctx context.Context, req CreateLookupRequest) (*T, error) {
	name, err := s.checkName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}

	item := new(T)
	b := lookupBase(item)
	b.Name = name
	b.Order = req.Order
	b.IsActive = true
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create lookup: %w", err)
	}
	return item, nil
}

func (s *lookupService[T]) Update(ctx context.Context, id string, req UpdateLookupRequest) (*T, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	b := lookupBase(item)
	if req.Name != nil {
		name, err := s.checkName(ctx, *req.Name, &b.ID)
		if err != nil {
			return nil, err
		}
		b.Name = name
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.Order != nil {
		b.Order = *req.Order
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update lookup: %w", err)
	}
	return item, nil
}

// Delete removes the row. Works referencing it keep existing with the
// reference cleared.
func (s *lookupService[T]) Delete(ctx context.Context, id string) error {
	msg := s.tr.T(locale.ErrLookupNotFound)
	lookupID, err := parseID(id, msg)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, lookupID); err != nil {
		return notFoundOr(err, msg, "failed to delete lookup")
	}
	return nil
}

func (s *lookupService[T]) checkName(ctx context.Context, raw string, except *uuid.UUID) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperror.FieldError("name", s.tr.T(locale.ErrRequired))
	}
	taken, err := s.repo.NameTaken(ctx, name, except)
	if err != nil {
		return "", fmt.Errorf("failed to check lookup name: %w", err)
	}
	if taken {
		return "", apperror.FieldError("name", s.tr.T(locale.ErrLookupNameTaken))
	}
	return name, nil
}

func (s *lookupService[T]) find(ctx context.Context, id string) (*T, error) {
	msg := s.tr.T(locale.ErrLookupNotFound)
	lookupID, err := parseID(id, msg)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, lookupID)
	if err != nil {
		return nil, notFoundOr(err, msg, "failed to fetch lookup")
	}
	return item, nil
}
