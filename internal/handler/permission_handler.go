package handler

import (
	"net/http"

	"wm-backend/internal/middleware"
	"wm-backend/internal/permission"
	"wm-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// PermissionHandler reports the caller's own effective permissions.
type PermissionHandler struct {
	resolver *permission.Resolver
}

func NewPermissionHandler(resolver *permission.Resolver) *PermissionHandler {
	return &PermissionHandler{resolver: resolver}
}

func (h *PermissionHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/api/permissions")
	group.Use(auth)
	{
		group.GET("/my-work-permissions", h.MyWorkPermissions)
		group.GET("/my-system-permissions", h.MySystemPermissions)
	}
}

// MyWorkPermissions returns the field to level map of the caller
// @Summary      My field permissions
// @Tags         permissions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/permissions/my-work-permissions [get]
func (h *PermissionHandler) MyWorkPermissions(c *gin.Context) {
	eff, err := h.resolver.Resolve(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, eff.FieldMap()))
}

// MySystemPermissions returns the capability map of the caller
// @Summary      My capabilities
// @Tags         permissions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/permissions/my-system-permissions [get]
func (h *PermissionHandler) MySystemPermissions(c *gin.Context) {
	eff, err := h.resolver.Resolve(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, eff.CapabilityMap()))
}
