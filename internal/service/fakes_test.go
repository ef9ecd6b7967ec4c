package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wm-backend/internal/audit"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/permission"
	"wm-backend/internal/repository"
)

type fakeWorks struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]model.Work
	saves int
}

func newFakeWorks() *fakeWorks { return &fakeWorks{rows: map[uuid.UUID]model.Work{}} }

func (f *fakeWorks) Create(_ context.Context, w *model.Work) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWorks) Save(_ context.Context, w *model.Work) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWorks) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeWorks) FindByID(_ context.Context, id uuid.UUID) (*model.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	w.Links = append(model.Links{}, w.Links...)
	return &w, nil
}

func (f *fakeWorks) List(_ context.Context, offset, limit int) ([]model.Work, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Work, 0, len(f.rows))
	for _, w := range f.rows {
		out = append(out, w)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return []model.Work{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeUsers struct {
	rows map[uuid.UUID]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{rows: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.rows[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.rows {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	out := make([]model.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) Search(_ context.Context, query string, limit int) ([]model.User, error) {
	var out []model.User
	for _, u := range f.rows {
		if u.IsActive && strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeLookups[T repository.Lookup] struct {
	rows map[uuid.UUID]*T
}

func newFakeLookups[T repository.Lookup](items ...*T) *fakeLookups[T] {
	f := &fakeLookups[T]{rows: map[uuid.UUID]*T{}}
	for _, item := range items {
		f.rows[lookupBase(item).ID] = item
	}
	return f
}

func (f *fakeLookups[T]) ListActive(_ context.Context) ([]T, error) {
	var out []T
	for _, item := range f.rows {
		if lookupBase(item).IsActive {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeLookups[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	item, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeLookups[T]) FindActiveByID(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lookupBase(item).IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeLookups[T]) NameTaken(_ context.Context, name string, except *uuid.UUID) (bool, error) {
	for id, item := range f.rows {
		if lookupBase(item).Name == name && (except == nil || id != *except) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLookups[T]) Create(_ context.Context, item *T) error {
	b := lookupBase(item)
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *item
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeLookups[T]) Save(_ context.Context, item *T) error {
	cp := *item
	f.rows[lookupBase(item).ID] = &cp
	return nil
}

func (f *fakeLookups[T]) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeMovements struct {
	rows []*model.Movement
}

func (f *fakeMovements) Create(_ context.Context, m *model.Movement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMovements) List(_ context.Context, filter repository.MovementFilter, offset, limit int) ([]model.Movement, int64, error) {
	var out []model.Movement
	for i := len(f.rows) - 1; i >= 0; i-- {
		m := f.rows[i]
		if filter.Action != "" && m.Action != filter.Action {
			continue
		}
		if filter.WorkID != nil && (m.WorkID == nil || *m.WorkID != *filter.WorkID) {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMovements) FindByID(_ context.Context, id uuid.UUID) (*model.Movement, error) {
	for _, m := range f.rows {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRoles struct {
	rows        map[uuid.UUID]*model.Role
	assignments map[uuid.UUID][]uuid.UUID
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{rows: map[uuid.UUID]*model.Role{}, assignments: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeRoles) add(r model.Role) *model.Role {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.rows[r.ID] = &r
	return &r
}

func (f *fakeRoles) assign(userID, roleID uuid.UUID) {
	f.assignments[userID] = append(f.assignments[userID], roleID)
}

func (f *fakeRoles) Create(_ context.Context, r *model.Role) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRoles) Update(_ context.Context, r *model.Role) error {
	stored, ok := f.rows[r.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name, stored.Description, stored.UpdatedAt = r.Name, r.Description, r.UpdatedAt
	return nil
}

func (f *fakeRoles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRoles) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoles) FindByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range f.rows {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoles) ListAll(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoles) ReplaceFieldPermissions(_ context.Context, roleID uuid.UUID, perms []model.FieldPermission) error {
	r, ok := f.rows[roleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.FieldPermissions = nil
	for _, p := range perms {
		p.ID, p.RoleID = uuid.New(), roleID
		r.FieldPermissions = append(r.FieldPermissions, p)
	}
	return nil
}

func (f *fakeRoles) ReplaceCapabilityGrants(_ context.Context, roleID uuid.UUID, grants []model.CapabilityGrant) error {
	r, ok := f.rows[roleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.CapabilityGrants = nil
	for _, g := range grants {
		g.ID, g.RoleID = uuid.New(), roleID
		r.CapabilityGrants = append(r.CapabilityGrants, g)
	}
	return nil
}

func (f *fakeRoles) RolesForUser(_ context.Context, userID uuid.UUID) ([]model.Role, error) {
	var out []model.Role
	for _, id := range f.assignments[userID] {
		if r, ok := f.rows[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeAssignments struct {
	rows  map[uuid.UUID]*model.UserRoleAssignment
	users *fakeUsers
	roles *fakeRoles
}

func newFakeAssignments(users *fakeUsers, roles *fakeRoles) *fakeAssignments {
	return &fakeAssignments{rows: map[uuid.UUID]*model.UserRoleAssignment{}, users: users, roles: roles}
}

func (f *fakeAssignments) Create(_ context.Context, a *model.UserRoleAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	f.rows[a.ID] = &cp
	f.roles.assign(a.UserID, a.RoleID)
	return nil
}

func (f *fakeAssignments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAssignments) FindByID(_ context.Context, id uuid.UUID) (*model.UserRoleAssignment, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	f.hydrate(&cp)
	return &cp, nil
}

func (f *fakeAssignments) Exists(_ context.Context, userID, roleID uuid.UUID) (bool, error) {
	for _, a := range f.rows {
		if a.UserID == userID && a.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignments) List(_ context.Context, userID *uuid.UUID) ([]model.UserRoleAssignment, error) {
	var out []model.UserRoleAssignment
	for _, a := range f.rows {
		if userID != nil && a.UserID != *userID {
			continue
		}
		cp := *a
		f.hydrate(&cp)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeAssignments) RoleIDsForUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a.RoleID)
		}
	}
	return out, nil
}

func (f *fakeAssignments) hydrate(a *model.UserRoleAssignment) {
	a.User = f.users.rows[a.UserID]
	a.Role = f.roles.rows[a.RoleID]
	if a.AssignedByID != nil {
		a.AssignedBy = f.users.rows[*a.AssignedByID]
	}
}

type passthroughTx struct{ runs int }

func (p *passthroughTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	p.runs++
	return fn(ctx)
}

// workFixture wires a work service over fakes.
type workFixture struct {
	svc        WorkService
	works      *fakeWorks
	users      *fakeUsers
	roles      *fakeRoles
	movements  *fakeMovements
	categories *fakeLookups[model.Category]
	admin      *model.User
	designer   *model.User
	tr         *locale.Translator
}

func newWorkFixture() *workFixture {
	tr := locale.New("tr")
	admin := &model.User{ID: uuid.New(), Username: "admin", FirstName: "Ada", LastName: "Yönetici", IsSuperuser: true, IsActive: true}
	designer := &model.User{ID: uuid.New(), Username: "alice", FirstName: "Alice", LastName: "Tasarım", IsActive: true}

	roles := newFakeRoles()
	designerRole := roles.add(designerRoleFixture())
	roles.assign(designer.ID, designerRole.ID)

	users := newFakeUsers(admin, designer)
	works := newFakeWorks()
	movements := &fakeMovements{}
	categories := newFakeLookups[model.Category]()

	guard := permission.NewGuard(permission.NewResolver(roles), tr)
	recorder := audit.NewRecorder(movements, tr, nil)

	svc := NewWorkService(WorkDeps{
		Works:      works,
		Users:      users,
		Categories: categories,
		Types:      newFakeLookups[model.WorkType](),
		Channels:   newFakeLookups[model.SalesChannel](),
		Guard:      guard,
		Recorder:   recorder,
		Translator: tr,
	})
	return &workFixture{
		svc: svc, works: works, users: users, roles: roles, movements: movements,
		categories: categories, admin: admin, designer: designer, tr: tr,
	}
}

// designerRoleFixture reads everything except price and writes only the
// design dates, links and note.
func designerRoleFixture() model.Role {
	r := model.Role{Name: "Designer"}
	writable := map[model.FieldName]bool{
		model.FieldDesignStartDate: true,
		model.FieldDesignEndDate:   true,
		model.FieldLinks:           true,
		model.FieldNote:            true,
	}
	for _, f := range model.ManageableFields() {
		lvl := model.LevelRead
		switch {
		case f == model.FieldPrice:
			lvl = model.LevelNone
		case writable[f]:
			lvl = model.LevelWrite
		}
		r.FieldPermissions = append(r.FieldPermissions, model.FieldPermission{Field: f, Level: lvl})
	}
	return r
}
