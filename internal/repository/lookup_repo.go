package repository

import (
	"context"

	"wm-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup is implemented by the dropdown entities referenced from Work.
type Lookup interface {
	model.Category | model.WorkType | model.SalesChannel
}

// LookupRepository serves one lookup table.
type LookupRepository[T Lookup] interface {
	ListActive(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*T, error)
	NameTaken(ctx context.Context, name string, except *uuid.UUID) (bool, error)
	Create(ctx context.Context, item *T) error
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lookupRepository[T Lookup] struct {
	db *gorm.DB
}

func NewLookupRepository[T Lookup](db *gorm.DB) LookupRepository[T] {
	return &lookupRepository[T]{db: db}
}

func (r *lookupRepository[T]) ListActive(ctx context.Context) ([]T, error) {
	var items []T
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("sort_order asc, name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lookupRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lookupRepository[T]) FindActiveByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lookupRepository[T]) NameTaken(ctx context.Context, name string, except *uuid.UUID) (bool, error) {
	var count int64
	q := GetDB(ctx, r.db).Model(new(T)).Where("name = ?", name)
	if except != nil {
		q = q.Where("id <> ?", *except)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *lookupRepository[T]) Create(ctx context.Context, item *T) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *lookupRepository[T]) Save(ctx context.Context, item *T) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *lookupRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
