package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name              string            `json:"name" binding:"required"`
	Description       string            `json:"description"`
	Permissions       map[string]string `json:"permissions"`
	SystemPermissions map[string]bool   `json:"system_permissions"`
}

// UpdateRoleRequest is partial. A present permissions or
// system_permissions object replaces the role's rows; an absent one keeps
// them.
type UpdateRoleRequest struct {
	Name              *string           `json:"name"`
	Description       *string           `json:"description"`
	Permissions       map[string]string `json:"permissions"`
	SystemPermissions map[string]bool   `json:"system_permissions"`
}

type RoleResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	ColumnPermissions []FieldPermissionResponse `json:"column_permissions"`
	SystemPermissions []CapabilityGrantResponse `json:"system_permissions"`
	Created           string                    `json:"created"`
	Updated           string                    `json:"updated"`
}

type FieldPermissionResponse struct {
	ID                uuid.UUID       `json:"id"`
	ColumnName        model.FieldName `json:"column_name"`
	ColumnDisplay     string          `json:"column_display"`
	Permission        model.Level     `json:"permission"`
	PermissionDisplay string          `json:"permission_display"`
}

type CapabilityGrantResponse struct {
	ID                uuid.UUID        `json:"id"`
	PermissionType    model.Capability `json:"permission_type"`
	PermissionDisplay string           `json:"permission_display"`
	Granted           bool             `json:"granted"`
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type AvailableColumnsResponse struct {
	Columns          []Choice `json:"columns"`
	PermissionLevels []Choice `json:"permission_levels"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
	AvailableColumns() AvailableColumnsResponse
	AvailableCapabilities() []Choice
}

type roleService struct {
	roles repository.RoleRepository
	tx    repository.TransactionManager
	tr    *locale.Translator
}

func NewRoleService(roles repository.RoleRepository, tx repository.TransactionManager, tr *locale.Translator) RoleService {
	return &roleService{roles: roles, tx: tx, tr: tr}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	res := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		res = append(res, s.toRoleResponse(&roles[i]))
	}
	return res, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*RoleResponse, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toRoleResponse(role)
	return &resp, nil
}

// CreateRole stores the role and its permission rows in one transaction.
// Without explicit field permissions every field is seeded with read.
func (s *roleService) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.FieldError("name", s.tr.T(locale.ErrRequired))
	}
	verr := &apperror.ValidationError{}
	perms := s.parseFieldPermissions(req.Permissions, verr)
	grants := s.parseCapabilityGrants(req.SystemPermissions, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(perms) == 0 {
		perms = defaultFieldPermissions()
	}

	role := &model.Role{Name: name, Description: req.Description}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameFree(txCtx, name, nil); err != nil {
			return err
		}
		if err := s.roles.Create(txCtx, role); err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}
		if err := s.roles.ReplaceFieldPermissions(txCtx, role.ID, perms); err != nil {
			return fmt.Errorf("failed to store field permissions: %w", err)
		}
		if err := s.roles.ReplaceCapabilityGrants(txCtx, role.ID, grants); err != nil {
			return fmt.Errorf("failed to store system permissions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRole(ctx, role.ID.String())
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &apperror.ValidationError{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			verr.Add("name", s.tr.T(locale.ErrRequired))
		}
		role.Name = name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	perms := s.parseFieldPermissions(req.Permissions, verr)
	grants := s.parseCapabilityGrants(req.SystemPermissions, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameFree(txCtx, role.Name, &role.ID); err != nil {
			return err
		}
		role.UpdatedAt = time.Now()
		if err := s.roles.Update(txCtx, role); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		if req.Permissions != nil {
			if err := s.roles.ReplaceFieldPermissions(txCtx, role.ID, perms); err != nil {
				return fmt.Errorf("failed to replace field permissions: %w", err)
			}
		}
		if req.SystemPermissions != nil {
			if err := s.roles.ReplaceCapabilityGrants(txCtx, role.ID, grants); err != nil {
				return fmt.Errorf("failed to replace system permissions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRole(ctx, role.ID.String())
}

// DeleteRole removes the role; permission rows and assignments cascade.
func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	msg := s.tr.T(locale.ErrRoleNotFound)
	roleID, err := parseID(id, msg)
	if err != nil {
		return err
	}
	if err := s.roles.Delete(ctx, roleID); err != nil {
		return notFoundOr(err, msg, "failed to delete role")
	}
	return nil
}

func (s *roleService) AvailableColumns() AvailableColumnsResponse {
	res := AvailableColumnsResponse{}
	for _, f := range model.ManageableFields() {
		res.Columns = append(res.Columns, Choice{Value: string(f), Label: s.tr.FieldLabel(f)})
	}
	for _, l := range model.Levels {
		res.PermissionLevels = append(res.PermissionLevels, Choice{Value: string(l), Label: s.tr.LevelLabel(l)})
	}
	return res
}

func (s *roleService) AvailableCapabilities() []Choice {
	caps := model.Capabilities()
	res := make([]Choice, 0, len(caps))
	for _, c := range caps {
		res = append(res, Choice{Value: string(c), Label: s.tr.CapabilityLabel(c)})
	}
	return res
}

// --- Helpers ---

// parseFieldPermissions validates a field→level object. Unknown fields
// and levels are reported on verr.
func (s *roleService) parseFieldPermissions(in map[string]string, verr *apperror.ValidationError) []model.FieldPermission {
	keys := sortedKeys(in)
	out := make([]model.FieldPermission, 0, len(in))
	for _, key := range keys {
		f, lvl := model.FieldName(key), model.Level(in[key])
		if !f.Valid() {
			verr.Add("permissions", s.tr.T(locale.ErrUnknownField, key))
			continue
		}
		if !lvl.Valid() {
			verr.Add("permissions", s.tr.T(locale.ErrInvalidLevel, in[key]))
			continue
		}
		out = append(out, model.FieldPermission{Field: f, Level: lvl})
	}
	return out
}

func (s *roleService) parseCapabilityGrants(in map[string]bool, verr *apperror.ValidationError) []model.CapabilityGrant {
	keys := sortedKeys(in)
	out := make([]model.CapabilityGrant, 0, len(in))
	for _, key := range keys {
		c := model.Capability(key)
		if !c.Valid() {
			verr.Add("system_permissions", s.tr.T(locale.ErrUnknownCapability, key))
			continue
		}
		out = append(out, model.CapabilityGrant{Capability: c, Granted: in[key]})
	}
	return out
}

func defaultFieldPermissions() []model.FieldPermission {
	fields := model.ManageableFields()
	out := make([]model.FieldPermission, 0, len(fields))
	for _, f := range fields {
		out = append(out, model.FieldPermission{Field: f, Level: model.LevelRead})
	}
	return out
}

func (s *roleService) ensureNameFree(ctx context.Context, name string, except *uuid.UUID) error {
	existing, err := s.roles.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check role name: %w", err)
	}
	if except != nil && existing.ID == *except {
		return nil
	}
	return apperror.FieldError("name", s.tr.T(locale.ErrRoleNameTaken))
}

func (s *roleService) find(ctx context.Context, id string) (*model.Role, error) {
	msg := s.tr.T(locale.ErrRoleNotFound)
	roleID, err := parseID(id, msg)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, notFoundOr(err, msg, "failed to fetch role")
	}
	return role, nil
}

func (s *roleService) toRoleResponse(r *model.Role) RoleResponse {
	order := make(map[model.FieldName]int)
	for i, f := range model.ManageableFields() {
		order[f] = i
	}
	perms := make([]FieldPermissionResponse, 0, len(r.FieldPermissions))
	for _, p := range r.FieldPermissions {
		perms = append(perms, FieldPermissionResponse{
			ID:                p.ID,
			ColumnName:        p.Field,
			ColumnDisplay:     s.tr.FieldLabel(p.Field),
			Permission:        p.Level,
			PermissionDisplay: s.tr.LevelLabel(p.Level),
		})
	}
	sort.SliceStable(perms, func(i, j int) bool {
		return order[perms[i].ColumnName] < order[perms[j].ColumnName]
	})

	grants := make([]CapabilityGrantResponse, 0, len(r.CapabilityGrants))
	for _, g := range r.CapabilityGrants {
		grants = append(grants, CapabilityGrantResponse{
			ID:                g.ID,
			PermissionType:    g.Capability,
			PermissionDisplay: s.tr.CapabilityLabel(g.Capability),
			Granted:           g.Granted,
		})
	}
	sort.SliceStable(grants, func(i, j int) bool { return grants[i].PermissionType < grants[j].PermissionType })

	return RoleResponse{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		ColumnPermissions: perms,
		SystemPermissions: grants,
		Created:           r.CreatedAt.Format(time.RFC3339),
		Updated:           r.UpdatedAt.Format(time.RFC3339),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
