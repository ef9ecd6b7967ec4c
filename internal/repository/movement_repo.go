package repository

import (
	"context"

	"wm-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementFilter narrows a movement listing. Zero values match everything.
type MovementFilter struct {
	Action model.Action
	WorkID *uuid.UUID
}

// MovementRepository stores audit rows. Rows are only ever inserted.
type MovementRepository interface {
	Create(ctx context.Context, m *model.Movement) error
	List(ctx context.Context, filter MovementFilter, offset, limit int) ([]model.Movement, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movement, error)
}

type movementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, m *model.Movement) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *movementRepository) List(ctx context.Context, filter MovementFilter, offset, limit int) ([]model.Movement, int64, error) {
	var rows []model.Movement
	var total int64

	q := GetDB(ctx, r.db).Model(&model.Movement{})
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.WorkID != nil {
		q = q.Where("work_id = ?", *filter.WorkID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *movementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Movement, error) {
	var m model.Movement
	if err := GetDB(ctx, r.db).Preload("User").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
