package handler

import (
	"net/http"

	"wm-backend/internal/service"
	"wm-backend/pkg/pagination"
	"wm-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type MovementHandler struct {
	movementService service.MovementService
}

func NewMovementHandler(movementService service.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

func (h *MovementHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	group := router.Group("/api/movements")
	group.Use(guards...)
	{
		group.GET("", h.ListMovements)
		group.GET("/:id", h.GetMovement)
	}
}

// ListMovements returns the audit trail newest first
// @Summary      List movements
// @Tags         movements
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        action  query     string  false  "create, update or delete"
// @Param        work    query     string  false  "Work ID"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/movements [get]
func (h *MovementHandler) ListMovements(c *gin.Context) {
	p := pagination.Parse(c)
	rows, total, err := h.movementService.ListMovements(c.Request.Context(), service.MovementQuery{
		Action: c.Query("action"),
		WorkID: c.Query("work"),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(rows, total, p)))
}

// GetMovement returns one movement
// @Summary      Get movement
// @Tags         movements
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Movement ID"
// @Success      200  {object}  response.Response{data=service.MovementResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetMovement(c *gin.Context) {
	m, err := h.movementService.GetMovement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, m))
}
