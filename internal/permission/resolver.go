// Package permission resolves the effective field and capability
// permissions of a user and enforces them on Work payloads.
package permission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wm-backend/internal/model"
)

// Principal is the authenticated identity the resolver evaluates.
type Principal interface {
	GetID() uuid.UUID
	IsSuperUser() bool
}

// RoleSource loads the roles assigned to a user with their field
// permissions and capability grants populated.
type RoleSource interface {
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]model.Role, error)
}

// Effective is the merged permission set of one user.
type Effective struct {
	Superuser    bool
	Fields       map[model.FieldName]model.Level
	Capabilities map[model.Capability]bool
}

// Level returns the resolved level of f. Superusers get write on everything.
func (e *Effective) Level(f model.FieldName) model.Level {
	if e.Superuser {
		return model.LevelWrite
	}
	if lvl, ok := e.Fields[f]; ok {
		return lvl
	}
	return model.LevelNone
}

func (e *Effective) CanRead(f model.FieldName) bool {
	return e.Level(f).AtLeast(model.LevelRead)
}

func (e *Effective) CanWrite(f model.FieldName) bool {
	return e.Level(f) == model.LevelWrite
}

// Can reports whether capability c is granted.
func (e *Effective) Can(c model.Capability) bool {
	return e.Superuser || e.Capabilities[c]
}

// FieldMap returns the level of every manageable field.
func (e *Effective) FieldMap() map[model.FieldName]model.Level {
	out := make(map[model.FieldName]model.Level, len(e.Fields))
	for _, f := range model.ManageableFields() {
		out[f] = e.Level(f)
	}
	return out
}

// CapabilityMap returns the grant state of every capability.
func (e *Effective) CapabilityMap() map[model.Capability]bool {
	out := make(map[model.Capability]bool)
	for _, c := range model.Capabilities() {
		out[c] = e.Can(c)
	}
	return out
}

// SuperuserSet is the permission set of an administrator: write on every
// field and every capability granted.
func SuperuserSet() *Effective {
	eff := &Effective{
		Superuser:    true,
		Fields:       make(map[model.FieldName]model.Level),
		Capabilities: make(map[model.Capability]bool),
	}
	for _, f := range model.ManageableFields() {
		eff.Fields[f] = model.LevelWrite
	}
	for _, c := range model.Capabilities() {
		eff.Capabilities[c] = true
	}
	return eff
}

// Merge combines roles into one permission set. Each field takes the
// highest level any role grants and a missing row counts as none. A
// capability is granted when any role grants it.
func Merge(roles []model.Role) *Effective {
	eff := &Effective{
		Fields:       make(map[model.FieldName]model.Level),
		Capabilities: make(map[model.Capability]bool),
	}
	for _, f := range model.ManageableFields() {
		eff.Fields[f] = model.LevelNone
	}
	for _, c := range model.Capabilities() {
		eff.Capabilities[c] = false
	}

	for _, role := range roles {
		for _, fp := range role.FieldPermissions {
			if !fp.Field.Valid() {
				continue
			}
			eff.Fields[fp.Field] = model.MaxLevel(eff.Fields[fp.Field], fp.Level)
		}
		for _, grant := range role.CapabilityGrants {
			if grant.Granted && grant.Capability.Valid() {
				eff.Capabilities[grant.Capability] = true
			}
		}
	}
	return eff
}

// Resolver computes effective permissions per request. It holds no state
// between calls.
type Resolver struct {
	roles RoleSource
}

func NewResolver(roles RoleSource) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns the effective permissions of p. Superusers bypass the
// role lookup entirely; a nil principal resolves to nothing.
func (r *Resolver) Resolve(ctx context.Context, p Principal) (*Effective, error) {
	if p == nil {
		return Merge(nil), nil
	}
	if p.IsSuperUser() {
		return SuperuserSet(), nil
	}
	roles, err := r.roles.RolesForUser(ctx, p.GetID())
	if err != nil {
		return nil, fmt.Errorf("load roles for user %s: %w", p.GetID(), err)
	}
	return Merge(roles), nil
}

// FieldPermissions resolves the level of every manageable field for p.
func (r *Resolver) FieldPermissions(ctx context.Context, p Principal) (map[model.FieldName]model.Level, error) {
	eff, err := r.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return eff.FieldMap(), nil
}

// Capabilities resolves every capability for p.
func (r *Resolver) Capabilities(ctx context.Context, p Principal) (map[model.Capability]bool, error) {
	eff, err := r.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return eff.CapabilityMap(), nil
}
