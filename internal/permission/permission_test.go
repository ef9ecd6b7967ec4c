package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
)

type fakePrincipal struct {
	id    uuid.UUID
	super bool
}

func (p fakePrincipal) GetID() uuid.UUID  { return p.id }
func (p fakePrincipal) IsSuperUser() bool { return p.super }

type fakeRoleSource struct {
	roles map[uuid.UUID][]model.Role
	calls int
	err   error
}

func (f *fakeRoleSource) RolesForUser(_ context.Context, userID uuid.UUID) ([]model.Role, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.roles[userID], nil
}

func role(name string, levels map[model.FieldName]model.Level, grants map[model.Capability]bool) model.Role {
	r := model.Role{ID: uuid.New(), Name: name}
	for f, l := range levels {
		r.FieldPermissions = append(r.FieldPermissions, model.FieldPermission{Field: f, Level: l})
	}
	for c, g := range grants {
		r.CapabilityGrants = append(r.CapabilityGrants, model.CapabilityGrant{Capability: c, Granted: g})
	}
	return r
}

func TestMergeTakesMaximumLevel(t *testing.T) {
	viewer := role("viewer", map[model.FieldName]model.Level{
		model.FieldPrice: model.LevelRead,
		model.FieldNote:  model.LevelNone,
	}, nil)
	editor := role("editor", map[model.FieldName]model.Level{
		model.FieldPrice: model.LevelNone,
		model.FieldNote:  model.LevelWrite,
		model.FieldMixed: model.LevelRead,
	}, nil)

	eff := Merge([]model.Role{viewer, editor})

	assert.Equal(t, model.LevelRead, eff.Level(model.FieldPrice))
	assert.Equal(t, model.LevelWrite, eff.Level(model.FieldNote))
	assert.Equal(t, model.LevelRead, eff.Level(model.FieldMixed))
	assert.Equal(t, model.LevelNone, eff.Level(model.FieldLinks), "missing rows count as none")
}

func TestMergeIsOrderIndependentAndToleratesDuplicates(t *testing.T) {
	a := role("a", map[model.FieldName]model.Level{model.FieldPrice: model.LevelWrite}, map[model.Capability]bool{model.CapabilityWorkCreate: false})
	b := role("b", map[model.FieldName]model.Level{model.FieldPrice: model.LevelRead}, map[model.Capability]bool{model.CapabilityWorkCreate: true})

	ab := Merge([]model.Role{a, b, a})
	ba := Merge([]model.Role{b, a})

	assert.Equal(t, ab.FieldMap(), ba.FieldMap())
	assert.Equal(t, ab.CapabilityMap(), ba.CapabilityMap())
	assert.True(t, ab.Can(model.CapabilityWorkCreate))
	assert.False(t, ab.Can(model.CapabilityWorkDelete))
}

func TestMergeIgnoresUnknownRows(t *testing.T) {
	r := model.Role{
		FieldPermissions: []model.FieldPermission{{Field: "bogus", Level: model.LevelWrite}, {Field: model.FieldNote, Level: "admin"}},
		CapabilityGrants: []model.CapabilityGrant{{Capability: "launch_rockets", Granted: true}},
	}
	eff := Merge([]model.Role{r})

	assert.Equal(t, model.LevelNone, eff.Level(model.FieldNote))
	assert.Len(t, eff.FieldMap(), len(model.ManageableFields()))
	assert.Len(t, eff.CapabilityMap(), len(model.Capabilities()))
}

func TestResolveZeroRoles(t *testing.T) {
	src := &fakeRoleSource{}
	r := NewResolver(src)
	user := fakePrincipal{id: uuid.New()}

	fields, err := r.FieldPermissions(context.Background(), user)
	require.NoError(t, err)
	for _, f := range model.ManageableFields() {
		assert.Equal(t, model.LevelNone, fields[f], f)
	}

	caps, err := r.Capabilities(context.Background(), user)
	require.NoError(t, err)
	for _, c := range model.Capabilities() {
		assert.False(t, caps[c], c)
	}
}

func TestResolveSuperuserBypassesRoles(t *testing.T) {
	admin := fakePrincipal{id: uuid.New(), super: true}
	src := &fakeRoleSource{roles: map[uuid.UUID][]model.Role{
		admin.id: {role("restricted", map[model.FieldName]model.Level{model.FieldPrice: model.LevelNone}, nil)},
	}}
	r := NewResolver(src)

	fields, err := r.FieldPermissions(context.Background(), admin)
	require.NoError(t, err)
	for _, f := range model.ManageableFields() {
		assert.Equal(t, model.LevelWrite, fields[f])
	}
	caps, err := r.Capabilities(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, caps[model.CapabilityWorkCreate])
	assert.True(t, caps[model.CapabilityWorkDelete])
	assert.Zero(t, src.calls)
}

func TestResolveIsIdempotent(t *testing.T) {
	user := fakePrincipal{id: uuid.New()}
	src := &fakeRoleSource{roles: map[uuid.UUID][]model.Role{
		user.id: {role("r", map[model.FieldName]model.Level{model.FieldNote: model.LevelWrite}, map[model.Capability]bool{model.CapabilityWorkDelete: true})},
	}}
	r := NewResolver(src)

	first, err := r.Resolve(context.Background(), user)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, src.calls, "every call re-resolves")
}

func TestResolvePropagatesSourceError(t *testing.T) {
	r := NewResolver(&fakeRoleSource{err: errors.New("db down")})
	_, err := r.Resolve(context.Background(), fakePrincipal{id: uuid.New()})
	assert.Error(t, err)
}

func TestFilterReadable(t *testing.T) {
	eff := Merge([]model.Role{role("r", map[model.FieldName]model.Level{
		model.FieldWorkName: model.LevelRead,
		model.FieldPrice:    model.LevelNone,
		model.FieldDesigner: model.LevelWrite,
	}, nil)})

	record := map[string]any{
		"id":                            "w1",
		"status_code":                   "waiting",
		"category_name":                 "Poster",
		"name":                          "Çanta",
		"price":                         "100.00",
		"note":                          "secret",
		"designer":                      "u1",
		"designer_detail":               map[string]any{"id": "u1"},
		"printing_controlled_by_detail": map[string]any{"id": "u2"},
		"unexpected":                    true,
	}

	out := eff.FilterReadable(record)

	assert.Equal(t, map[string]any{
		"id":              "w1",
		"status_code":     "waiting",
		"category_name":   "Poster",
		"name":            "Çanta",
		"designer":        "u1",
		"designer_detail": map[string]any{"id": "u1"},
	}, out)
}

func TestFilterReadableSuperuserIsIdentity(t *testing.T) {
	record := map[string]any{"price": 1, "anything": "x"}
	assert.Equal(t, record, SuperuserSet().FilterReadable(record))
}

func designerGuard(t *testing.T) (*Guard, fakePrincipal) {
	t.Helper()
	alice := fakePrincipal{id: uuid.New()}
	designer := role("Designer", map[model.FieldName]model.Level{
		model.FieldPrice: model.LevelNone,
		model.FieldNote:  model.LevelWrite,
	}, nil)
	src := &fakeRoleSource{roles: map[uuid.UUID][]model.Role{alice.id: {designer}}}
	return NewGuard(NewResolver(src), locale.New("tr")), alice
}

func TestValidateWritable(t *testing.T) {
	g, alice := designerGuard(t)
	ctx := context.Background()

	require.NoError(t, g.ValidateWritable(ctx, alice, []string{"note", "id", "updated", "unknown"}))

	err := g.ValidateWritable(ctx, alice, []string{"note", "price", "name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, "Bu alanlara yazma yetkiniz yok: İsim, Fiyat", err.Error())
}

func TestValidateWritableReadOnlyField(t *testing.T) {
	reader := fakePrincipal{id: uuid.New()}
	src := &fakeRoleSource{roles: map[uuid.UUID][]model.Role{
		reader.id: {role("r", map[model.FieldName]model.Level{model.FieldPrintingConfirm: model.LevelRead}, nil)},
	}}
	g := NewGuard(NewResolver(src), locale.New("tr"))

	err := g.ValidateWritable(context.Background(), reader, []string{"printing_confirm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Baskı Onayı")
}

func TestValidateWritableSuperuser(t *testing.T) {
	g := NewGuard(NewResolver(&fakeRoleSource{err: errors.New("unused")}), locale.New("tr"))
	assert.NoError(t, g.ValidateWritable(context.Background(), fakePrincipal{super: true}, []string{"price"}))
}

func TestCapabilityChecks(t *testing.T) {
	creator := fakePrincipal{id: uuid.New()}
	src := &fakeRoleSource{roles: map[uuid.UUID][]model.Role{
		creator.id: {role("c", nil, map[model.Capability]bool{model.CapabilityWorkCreate: true, model.CapabilityWorkDelete: false})},
	}}
	g := NewGuard(NewResolver(src), locale.New("tr"))
	ctx := context.Background()

	ok, err := g.CanCreate(ctx, creator)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.CanDelete(ctx, creator)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.CanDelete(ctx, fakePrincipal{super: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.CanWriteField(ctx, creator, model.FieldLinks)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDesignerScenario(t *testing.T) {
	g, alice := designerGuard(t)
	ctx := context.Background()

	fields, err := g.resolver.FieldPermissions(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, model.LevelNone, fields[model.FieldPrice])
	assert.Equal(t, model.LevelWrite, fields[model.FieldNote])

	payload := map[string]any{"note": "hi", "price": 100}
	err = g.ValidateWritable(ctx, alice, PayloadKeys(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fiyat")
}
