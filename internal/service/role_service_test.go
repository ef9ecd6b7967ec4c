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

func newRoleFixture() (RoleService, *fakeRoles, *passthroughTx) {
	roles := newFakeRoles()
	tx := &passthroughTx{}
	return NewRoleService(roles, tx, locale.New("tr")), roles, tx
}

func TestCreateRoleSeedsReadForEveryField(t *testing.T) {
	svc, _, tx := newRoleFixture()

	role, err := svc.CreateRole(context.Background(), CreateRoleRequest{Name: " Designer "})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, "Designer", role.Name)

	fields := model.ManageableFields()
	require.Len(t, role.ColumnPermissions, len(fields))
	for i, p := range role.ColumnPermissions {
		assert.Equal(t, fields[i], p.ColumnName)
		assert.Equal(t, model.LevelRead, p.Permission)
	}
	assert.Empty(t, role.SystemPermissions)
}

func TestCreateRoleWithExplicitPermissions(t *testing.T) {
	svc, _, _ := newRoleFixture()

	role, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name:              "Planner",
		Permissions:       map[string]string{"name": "write", "price": "none"},
		SystemPermissions: map[string]bool{"work_create": true, "work_delete": false},
	})
	require.NoError(t, err)

	require.Len(t, role.ColumnPermissions, 2)
	assert.Equal(t, model.FieldWorkName, role.ColumnPermissions[0].ColumnName)
	assert.Equal(t, "Yazma", role.ColumnPermissions[0].PermissionDisplay)
	require.Len(t, role.SystemPermissions, 2)
	assert.Equal(t, model.CapabilityWorkCreate, role.SystemPermissions[0].PermissionType)
	assert.True(t, role.SystemPermissions[0].Granted)
}

func TestCreateRoleRejectsUnknownKeys(t *testing.T) {
	svc, roles, _ := newRoleFixture()

	_, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name:              "Bad",
		Permissions:       map[string]string{"colour": "read", "name": "admin"},
		SystemPermissions: map[string]bool{"work_archive": true},
	})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields["permissions"], 2)
	assert.Len(t, verr.Fields["system_permissions"], 1)
	assert.Empty(t, roles.rows)
}

func TestCreateRoleDuplicateName(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	roles.add(model.Role{Name: "Designer"})

	_, err := svc.CreateRole(context.Background(), CreateRoleRequest{Name: "Designer"})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestUpdateRoleReplacesOnlyPresentSets(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, CreateRoleRequest{
		Name:              "Planner",
		Permissions:       map[string]string{"name": "write"},
		SystemPermissions: map[string]bool{"work_create": true},
	})
	require.NoError(t, err)

	desc := "plans work"
	updated, err := svc.UpdateRole(ctx, created.ID.String(), UpdateRoleRequest{
		Description: &desc,
		Permissions: map[string]string{"note": "read", "links": "write"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plans work", updated.Description)
	require.Len(t, updated.ColumnPermissions, 2)
	assert.Equal(t, model.FieldLinks, updated.ColumnPermissions[0].ColumnName)
	require.Len(t, updated.SystemPermissions, 1)
	assert.Len(t, roles.rows, 1)
}

func TestUpdateRoleRenameConflict(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	roles.add(model.Role{Name: "Designer"})
	other := roles.add(model.Role{Name: "Printer"})

	name := "Designer"
	_, err := svc.UpdateRole(context.Background(), other.ID.String(), UpdateRoleRequest{Name: &name})
	require.ErrorIs(t, err, apperror.ErrValidation)

	same := "Printer"
	_, err = svc.UpdateRole(context.Background(), other.ID.String(), UpdateRoleRequest{Name: &same})
	require.NoError(t, err)
}

func TestDeleteRole(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	r := roles.add(model.Role{Name: "Designer"})

	require.NoError(t, svc.DeleteRole(context.Background(), r.ID.String()))
	assert.Empty(t, roles.rows)

	err := svc.DeleteRole(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAvailableChoices(t *testing.T) {
	svc, _, _ := newRoleFixture()

	cols := svc.AvailableColumns()
	require.Len(t, cols.Columns, len(model.ManageableFields()))
	assert.Equal(t, Choice{Value: "name", Label: "İsim"}, cols.Columns[0])
	assert.Len(t, cols.PermissionLevels, 3)

	caps := svc.AvailableCapabilities()
	assert.Len(t, caps, len(model.Capabilities()))
}
