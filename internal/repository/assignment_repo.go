package repository

import (
	"context"

	"wm-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a *model.UserRoleAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserRoleAssignment, error)
	Exists(ctx context.Context, userID, roleID uuid.UUID) (bool, error)
	List(ctx context.Context, userID *uuid.UUID) ([]model.UserRoleAssignment, error)
	RoleIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, a *model.UserRoleAssignment) error {
	return GetDB(ctx, r.db).Create(a).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.UserRoleAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserRoleAssignment, error) {
	var a model.UserRoleAssignment
	if err := r.withDetails(ctx).First(&a, "user_role_assignments.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) Exists(ctx context.Context, userID, roleID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.UserRoleAssignment{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	return count > 0, err
}

// List returns assignments newest first, optionally restricted to one user.
func (r *assignmentRepository) List(ctx context.Context, userID *uuid.UUID) ([]model.UserRoleAssignment, error) {
	q := r.withDetails(ctx)
	if userID != nil {
		q = q.Where("user_role_assignments.user_id = ?", *userID)
	}
	var out []model.UserRoleAssignment
	if err := q.Order("user_role_assignments.assigned_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepository) RoleIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).Model(&model.UserRoleAssignment{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &ids).Error
	return ids, err
}

func (r *assignmentRepository) withDetails(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("User").
		Preload("Role.FieldPermissions").
		Preload("Role.CapabilityGrants").
		Preload("AssignedBy")
}
