package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
)

func TestAssignRole(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Username: "admin", IsSuperuser: true, IsActive: true}
	alice := &model.User{ID: uuid.New(), Username: "alice", FirstName: "Alice", IsActive: true}
	users := newFakeUsers(admin, alice)
	roles := newFakeRoles()
	designer := roles.add(designerRoleFixture())
	assignments := newFakeAssignments(users, roles)
	svc := NewAssignmentService(assignments, users, roles, locale.New("tr"))
	ctx := context.Background()

	res, err := svc.Assign(ctx, admin, AssignRoleRequest{UserID: alice.ID.String(), RoleID: designer.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, res.User)
	require.NotNil(t, res.UserDetail)
	assert.Equal(t, "Alice", res.UserDetail.FullName)
	require.NotNil(t, res.AssignedByDetail)
	assert.Equal(t, "admin", res.AssignedByDetail.Username)
	require.NotNil(t, res.RoleDetail)
	assert.Equal(t, "Designer", res.RoleDetail.Name)

	_, err = svc.Assign(ctx, admin, AssignRoleRequest{UserID: alice.ID.String(), RoleID: designer.ID.String()})
	require.ErrorIs(t, err, apperror.ErrValidation)

	list, err := svc.List(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.List(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Remove(ctx, res.ID.String()))
	require.ErrorIs(t, svc.Remove(ctx, res.ID.String()), apperror.ErrNotFound)
}

func TestAssignRoleUnknownTargets(t *testing.T) {
	users := newFakeUsers()
	roles := newFakeRoles()
	svc := NewAssignmentService(newFakeAssignments(users, roles), users, roles, locale.New("tr"))

	_, err := svc.Assign(context.Background(), nil, AssignRoleRequest{UserID: "x", RoleID: "y"})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user")
	assert.Contains(t, verr.Fields, "role")

	_, err = svc.Assign(context.Background(), nil, AssignRoleRequest{UserID: uuid.NewString(), RoleID: uuid.NewString()})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user")
}
