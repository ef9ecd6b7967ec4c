package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"wm-backend/internal/apperror"
	"wm-backend/internal/model"
)

type fakeAuth struct {
	users map[string]*model.User
	err   error
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[token]
	if !ok {
		return nil, apperror.Unauthorized("invalid token")
	}
	return u, nil
}

func newRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})
	r.GET("/admin", RequireAuth(auth), RequireSuperuser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestRequireAuth(t *testing.T) {
	auth := fakeAuth{users: map[string]*model.User{
		"alice-token": {ID: uuid.New(), Username: "alice", IsActive: true},
	}}
	r := newRouter(auth)

	w := do(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", func(req *http.Request) { req.Header.Set("Authorization", "Token alice-token") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", bearer("wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", bearer("alice-token"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	w = do(r, "/me", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "alice-token"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthInternalError(t *testing.T) {
	r := newRouter(fakeAuth{err: errors.New("db down")})

	w := do(r, "/me", bearer("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireSuperuser(t *testing.T) {
	auth := fakeAuth{users: map[string]*model.User{
		"alice": {ID: uuid.New(), Username: "alice", IsActive: true},
		"admin": {ID: uuid.New(), Username: "admin", IsActive: true, IsSuperuser: true},
	}}
	r := newRouter(auth)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", bearer("alice")).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", bearer("admin")).Code)
}
