package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/middleware"
	"wm-backend/internal/model"
	"wm-backend/internal/permission"
	"wm-backend/internal/service"
	"wm-backend/pkg/response"
)

var (
	testAdmin  = &model.User{ID: uuid.New(), Username: "admin", IsSuperuser: true, IsActive: true}
	testViewer = &model.User{ID: uuid.New(), Username: "alice", IsActive: true}
)

// asUser stands in for RequireAuth: the X-Test-User header picks the
// authenticated user.
func asUser(c *gin.Context) {
	switch c.GetHeader("X-Test-User") {
	case "admin":
		middleware.SetCurrentUser(c, testAdmin)
	case "alice":
		middleware.SetCurrentUser(c, testViewer)
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
		return
	}
	c.Next()
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func call(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type stubWorks struct {
	err      error
	payload  service.WorkPayload
	actor    *model.User
	response map[string]any
}

func (s *stubWorks) List(_ context.Context, actor *model.User, page, limit int) ([]map[string]any, int64, error) {
	s.actor = actor
	return []map[string]any{s.response}, 1, s.err
}

func (s *stubWorks) Get(_ context.Context, actor *model.User, id string) (map[string]any, error) {
	return s.response, s.err
}

func (s *stubWorks) Create(_ context.Context, actor *model.User, p service.WorkPayload) (map[string]any, error) {
	s.actor, s.payload = actor, p
	return s.response, s.err
}

func (s *stubWorks) Update(_ context.Context, actor *model.User, id string, p service.WorkPayload) (map[string]any, error) {
	s.actor, s.payload = actor, p
	return s.response, s.err
}

func (s *stubWorks) Delete(_ context.Context, actor *model.User, id string) error {
	return s.err
}

func (s *stubWorks) AddLink(_ context.Context, actor *model.User, id string, req service.AddLinkRequest) (*service.LinksResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.LinksResponse{Message: "Bağlantı eklendi", Links: model.Links{{URL: req.URL}}}, nil
}

func (s *stubWorks) RemoveLink(_ context.Context, actor *model.User, id string, req service.RemoveLinkRequest) (*service.LinksResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.LinksResponse{Message: "Bağlantı kaldırıldı", Links: model.Links{}}, nil
}

func workRouter(stub *stubWorks) *gin.Engine {
	r := newEngine()
	NewWorkHandler(stub).RegisterRoutes(r.Group(""), asUser)
	return r
}

func TestWorkCreatePassesPayloadAndActor(t *testing.T) {
	stub := &stubWorks{response: map[string]any{"name": "Afiş"}}
	r := workRouter(stub)

	w := call(r, http.MethodPost, "/api/works", "alice", `{"name":"Afiş","price":"10"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Same(t, testViewer, stub.actor)
	assert.JSONEq(t, `"10"`, string(stub.payload["price"]))

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Afiş", body["data"].(map[string]any)["name"])
}

func TestWorkRoutesRequireAuth(t *testing.T) {
	r := workRouter(&stubWorks{})

	w := call(r, http.MethodGet, "/api/works", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkRejectsNonObjectBody(t *testing.T) {
	r := workRouter(&stubWorks{})

	w := call(r, http.MethodPatch, "/api/works/"+uuid.NewString(), "admin", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.FieldError("name", "Bu alan zorunludur."), http.StatusBadRequest, response.CodeValidation},
		{"forbidden", apperror.Forbidden("Bu alanlara yazma yetkiniz yok: Fiyat"), http.StatusForbidden, response.CodePermission},
		{"not found", apperror.NotFound("İş bulunamadı"), http.StatusNotFound, response.CodeNotFound},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, response.CodeServer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := workRouter(&stubWorks{err: tc.err})

			w := call(r, http.MethodPut, "/api/works/"+uuid.NewString(), "alice", `{"price":"10"}`)
			assert.Equal(t, tc.status, w.Code)

			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			errs := body["errors"].(map[string]any)
			assert.Equal(t, tc.code, errs["error_code"])
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestValidationCarriesFieldErrors(t *testing.T) {
	verr := apperror.FieldError("links", "Bağlantı 1: URL gerekli")
	r := workRouter(&stubWorks{err: verr})

	w := call(r, http.MethodPost, "/api/works", "admin", `{"links":[{}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["errors"].(map[string]any)
	fields := errs["field_errors"].(map[string]any)
	assert.Equal(t, []any{"Bağlantı 1: URL gerekli"}, fields["links"])
}

func TestWorkDeleteAndLinks(t *testing.T) {
	r := workRouter(&stubWorks{})
	id := uuid.NewString()

	assert.Equal(t, http.StatusNoContent, call(r, http.MethodDelete, "/api/works/"+id, "admin", "").Code)

	w := call(r, http.MethodPost, "/api/works/"+id+"/add_link", "admin", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Bağlantı eklendi", body["message"])

	w = call(r, http.MethodPost, "/api/works/"+id+"/remove_link", "admin", `{"url":"https://example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubUsers struct {
	service.UserService
	deleted string
}

func (s *stubUsers) Login(_ context.Context, req service.LoginUserRequest) (*service.TokenResponse, error) {
	if req.Password != "s3cretpass" {
		return nil, apperror.Validation("Kullanıcı adı veya şifre hatalı")
	}
	return &service.TokenResponse{Message: "Giriş başarılı", Access: "signed-token"}, nil
}

func (s *stubUsers) DeleteUser(_ context.Context, actor *model.User, id string) (string, error) {
	if actor.ID.String() == id {
		return "", apperror.Validation("Kendinizi silemezsiniz")
	}
	s.deleted = id
	return "bob", nil
}

func userRouter(stub *stubUsers) *gin.Engine {
	r := newEngine()
	h := NewUserHandler(stub, locale.New("tr"), CookieSettings{TTL: time.Hour})
	h.RegisterRoutes(r.Group(""), asUser, middleware.RequireSuperuser())
	return r
}

func TestLoginSetsCookie(t *testing.T) {
	r := userRouter(&stubUsers{})

	w := call(r, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=signed-token")
	assert.Equal(t, "Giriş başarılı", decode(t, w)["message"])

	w = call(r, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	stub := &stubUsers{}
	r := userRouter(stub)
	bob := uuid.NewString()

	w := call(r, http.MethodDelete, "/api/users/"+bob, "alice", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, stub.deleted)

	w = call(r, http.MethodDelete, "/api/users/"+testAdmin.ID.String(), "admin", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodDelete, "/api/users/"+bob, "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob kullanıcısı başarıyla silindi", decode(t, w)["message"])
}

type staticRoles map[uuid.UUID][]model.Role

func (s staticRoles) RolesForUser(_ context.Context, id uuid.UUID) ([]model.Role, error) {
	return s[id], nil
}

func TestMyPermissions(t *testing.T) {
	roles := staticRoles{testViewer.ID: {{
		Name:             "Designer",
		FieldPermissions: []model.FieldPermission{{Field: model.FieldNote, Level: model.LevelWrite}},
		CapabilityGrants: []model.CapabilityGrant{{Capability: model.CapabilityWorkCreate, Granted: true}},
	}}}
	r := newEngine()
	NewPermissionHandler(permission.NewResolver(roles)).RegisterRoutes(r.Group(""), asUser)

	w := call(r, http.MethodGet, "/api/permissions/my-work-permissions", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "write", data["note"])
	assert.Equal(t, "none", data["price"])

	w = call(r, http.MethodGet, "/api/permissions/my-system-permissions", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	caps := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, true, caps["work_create"])
	assert.Equal(t, false, caps["work_delete"])
}

type stubCategories struct {
	items []model.Category
}

func (s *stubCategories) ListActive(context.Context) ([]model.Category, error) { return s.items, nil }

func (s *stubCategories) Create(_ context.Context, req service.CreateLookupRequest) (*model.Category, error) {
	c := model.Category{LookupBase: model.LookupBase{ID: uuid.New(), Name: req.Name, IsActive: true}}
	s.items = append(s.items, c)
	return &c, nil
}

func (s *stubCategories) Update(context.Context, string, service.UpdateLookupRequest) (*model.Category, error) {
	return nil, apperror.NotFound("Kayıt bulunamadı")
}

func (s *stubCategories) Delete(context.Context, string) error { return nil }

func TestLookupRoutes(t *testing.T) {
	stub := &stubCategories{}
	r := newEngine()
	NewLookupHandler[model.Category]("/api/categories", stub).RegisterRoutes(r.Group(""), asUser, middleware.RequireSuperuser())

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/api/categories", "alice", `{"name":"Afiş"}`).Code)
	assert.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/categories", "admin", `{"name":"Afiş"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/api/categories", "admin", `{}`).Code)

	w := call(r, http.MethodGet, "/api/categories", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPatch, "/api/categories/"+uuid.NewString(), "admin", `{}`).Code)
	assert.Equal(t, http.StatusNoContent, call(r, http.MethodDelete, "/api/categories/"+uuid.NewString(), "admin", "").Code)
}
