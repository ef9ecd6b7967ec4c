package model

import (
	"time"

	"github.com/google/uuid"
)

// Role groups field permissions and capability grants. Deleting a role
// cascades to its permission rows and user assignments.
type Role struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description      string            `gorm:"type:text" json:"description"`
	FieldPermissions []FieldPermission `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE;" json:"column_permissions"`
	CapabilityGrants []CapabilityGrant `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE;" json:"system_permissions"`
	CreatedAt        time.Time         `json:"created"`
	UpdatedAt        time.Time         `json:"updated"`
}

// FieldPermission grants a level on one Work field. At most one row exists
// per (role, field).
type FieldPermission struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_permissions_role_field" json:"-"`
	Field  FieldName `gorm:"column:field_name;type:varchar(50);not null;uniqueIndex:idx_field_permissions_role_field" json:"column_name"`
	Level  Level     `gorm:"column:permission;type:varchar(10);not null;default:'read'" json:"permission"`
}

// CapabilityGrant toggles one capability for a role. At most one row exists
// per (role, capability).
type CapabilityGrant struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoleID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_capability_grants_role_capability" json:"-"`
	Capability Capability `gorm:"column:permission_type;type:varchar(50);not null;uniqueIndex:idx_capability_grants_role_capability" json:"permission_type"`
	Granted    bool       `gorm:"not null;default:false" json:"granted"`
}

// UserRoleAssignment joins a user to a role. AssignedByID is nil for
// system assignments and is nulled when the assigning user is deleted.
type UserRoleAssignment struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_role_assignments_user_role" json:"user"`
	User         *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_role_assignments_user_role;index" json:"role"`
	Role         *Role      `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE;" json:"-"`
	AssignedByID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_by"`
	AssignedBy   *User      `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL;" json:"-"`
	AssignedAt   time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
}
