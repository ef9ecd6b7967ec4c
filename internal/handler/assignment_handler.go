package handler

import (
	"net/http"

	"wm-backend/internal/middleware"
	"wm-backend/internal/service"
	"wm-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	group := router.Group("/api/user-roles")
	group.Use(guards...)
	{
		group.GET("", h.ListAssignments)
		group.POST("", h.AssignRole)
		group.DELETE("/:id", h.RemoveAssignment)
	}
}

// ListAssignments lists role assignments, optionally for one user
// @Summary      List role assignments
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        user  query     string  false  "User ID"
// @Success      200   {object}  response.Response{data=[]service.AssignmentResponse}
// @Router       /api/user-roles [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	rows, err := h.assignmentService.List(c.Request.Context(), c.Query("user"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// AssignRole gives a user a role
// @Summary      Assign role
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.AssignRoleRequest  true  "Assignment"
// @Success      201      {object}  response.Response{data=service.AssignmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/user-roles [post]
func (h *AssignmentHandler) AssignRole(c *gin.Context) {
	var req service.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.assignmentService.Assign(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// RemoveAssignment takes a role away from a user
// @Summary      Remove role assignment
// @Tags         roles
// @Security     BearerAuth
// @Param        id   path  string  true  "Assignment ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/user-roles/{id} [delete]
func (h *AssignmentHandler) RemoveAssignment(c *gin.Context) {
	if err := h.assignmentService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
