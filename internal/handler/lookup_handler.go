package handler

import (
	"net/http"

	"wm-backend/internal/repository"
	"wm-backend/internal/service"
	"wm-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves one dropdown table under its own path.
type LookupHandler[T repository.Lookup] struct {
	path    string
	service service.LookupService[T]
}

func NewLookupHandler[T repository.Lookup](path string, svc service.LookupService[T]) *LookupHandler[T] {
	return &LookupHandler[T]{path: path, service: svc}
}

// RegisterRoutes exposes the active list to every authenticated user and
// the mutations to superusers.
func (h *LookupHandler[T]) RegisterRoutes(router *gin.RouterGroup, auth, superuser gin.HandlerFunc) {
	group := router.Group(h.path)
	group.Use(auth)
	{
		group.GET("", h.List)
		group.POST("", superuser, h.Create)
		group.PATCH("/:id", superuser, h.Update)
		group.PUT("/:id", superuser, h.Update)
		group.DELETE("/:id", superuser, h.Delete)
	}
}

// List godoc
// @Summary      List active lookup values
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/categories [get]
// @Router       /api/work-types [get]
// @Router       /api/sales-channels [get]
func (h *LookupHandler[T]) List(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// Create godoc
// @Summary      Create lookup value
// @Tags         lookups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLookupRequest  true  "Lookup value"
// @Success      201      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /api/categories [post]
// @Router       /api/work-types [post]
// @Router       /api/sales-channels [post]
func (h *LookupHandler[T]) Create(c *gin.Context) {
	var req service.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// Update godoc
// @Summary      Update lookup value
// @Tags         lookups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Lookup ID"
// @Param        payload  body      service.UpdateLookupRequest  true  "Changes"
// @Success      200      {object}  response.Response{data=object}
// @Failure      404      {object}  response.Response
// @Router       /api/categories/{id} [patch]
// @Router       /api/work-types/{id} [patch]
// @Router       /api/sales-channels/{id} [patch]
func (h *LookupHandler[T]) Update(c *gin.Context) {
	var req service.UpdateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// Delete godoc
// @Summary      Delete lookup value
// @Tags         lookups
// @Security     BearerAuth
// @Param        id   path  string  true  "Lookup ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id} [delete]
// @Router       /api/work-types/{id} [delete]
// @Router       /api/sales-channels/{id} [delete]
func (h *LookupHandler[T]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
