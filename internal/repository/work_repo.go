package repository

import (
	"context"

	"wm-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkRepository interface {
	Create(ctx context.Context, w *model.Work) error
	Save(ctx context.Context, w *model.Work) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Work, error)
	List(ctx context.Context, offset, limit int) ([]model.Work, int64, error)
}

type workRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

// Create inserts the work row only; referenced lookups and users are never
// written through it.
func (r *workRepository) Create(ctx context.Context, w *model.Work) error {
	if w.Links == nil {
		w.Links = model.Links{}
	}
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(w).Error
}

// Save writes every column of the work row.
func (r *workRepository) Save(ctx context.Context, w *model.Work) error {
	if w.Links == nil {
		w.Links = model.Links{}
	}
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(w).Error
}

func (r *workRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Work{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Work, error) {
	var w model.Work
	if err := r.withRefs(ctx).First(&w, "works.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns works newest first.
func (r *workRepository) List(ctx context.Context, offset, limit int) ([]model.Work, int64, error) {
	var works []model.Work
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Work{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.withRefs(ctx).Order("works.created_at desc").Offset(offset).Limit(limit).Find(&works).Error; err != nil {
		return nil, 0, err
	}
	return works, total, nil
}

func (r *workRepository) withRefs(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("Category").
		Preload("Type").
		Preload("SalesChannel").
		Preload("Designer").
		Preload("PrintingControlledBy")
}
