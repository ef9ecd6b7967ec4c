package repository

import (
	"context"

	"wm-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	ListAll(ctx context.Context) ([]model.Role, error)
	ReplaceFieldPermissions(ctx context.Context, roleID uuid.UUID, perms []model.FieldPermission) error
	ReplaceCapabilityGrants(ctx context.Context, roleID uuid.UUID, grants []model.CapabilityGrant) error
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// Create inserts the role together with any permission rows it carries.
func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

// Update writes name and description only; children are replaced through
// the dedicated methods.
func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Model(role).
		Select("name", "description", "updated_at").
		Updates(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Role{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := r.withChildren(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.withChildren(ctx).Order("name asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ReplaceFieldPermissions(ctx context.Context, roleID uuid.UUID, perms []model.FieldPermission) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("role_id = ?", roleID).Delete(&model.FieldPermission{}).Error; err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}
	for i := range perms {
		perms[i].RoleID = roleID
	}
	return db.Create(&perms).Error
}

func (r *roleRepository) ReplaceCapabilityGrants(ctx context.Context, roleID uuid.UUID, grants []model.CapabilityGrant) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("role_id = ?", roleID).Delete(&model.CapabilityGrant{}).Error; err != nil {
		return err
	}
	if len(grants) == 0 {
		return nil
	}
	for i := range grants {
		grants[i].RoleID = roleID
	}
	return db.Create(&grants).Error
}

// RolesForUser returns every role assigned to userID with its permission
// rows loaded.
func (r *roleRepository) RolesForUser(ctx context.Context, userID uuid.UUID) ([]model.Role, error) {
	var roles []model.Role
	err := r.withChildren(ctx).
		Joins("JOIN user_role_assignments ura ON ura.role_id = roles.id").
		Where("ura.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) withChildren(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Preload("FieldPermissions").
		Preload("CapabilityGrants")
}
