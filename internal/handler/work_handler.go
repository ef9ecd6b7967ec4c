package handler

import (
	"net/http"

	"wm-backend/internal/middleware"
	"wm-backend/internal/service"
	"wm-backend/pkg/pagination"
	"wm-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	workService service.WorkService
}

func NewWorkHandler(workService service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// RegisterRoutes binds the work endpoints. Field and capability checks
// happen in the service, so every route only needs an authenticated user.
func (h *WorkHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	works := router.Group("/api/works")
	works.Use(auth)
	{
		works.GET("", h.ListWorks)
		works.POST("", h.CreateWork)
		works.GET("/:id", h.GetWork)
		works.PUT("/:id", h.UpdateWork)
		works.PATCH("/:id", h.UpdateWork)
		works.DELETE("/:id", h.DeleteWork)
		works.POST("/:id/add_link", h.AddLink)
		works.POST("/:id/remove_link", h.RemoveLink)
	}
}

// ListWorks returns works newest first, stripped of unreadable fields
// @Summary      List works
// @Tags         works
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/works [get]
func (h *WorkHandler) ListWorks(c *gin.Context) {
	p := pagination.Parse(c)
	items, total, err := h.workService.List(c.Request.Context(), middleware.CurrentUser(c), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(items, total, p)))
}

// GetWork returns one work
// @Summary      Get work
// @Tags         works
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Work ID"
// @Success      200  {object}  response.Response{data=object}
// @Failure      404  {object}  response.Response
// @Router       /api/works/{id} [get]
func (h *WorkHandler) GetWork(c *gin.Context) {
	rec, err := h.workService.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// CreateWork creates a work after capability and field checks
// @Summary      Create work
// @Description  Requires the work_create capability and write access on every submitted field
// @Tags         works
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      object  true  "Work fields"
// @Success      201      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/works [post]
func (h *WorkHandler) CreateWork(c *gin.Context) {
	var payload service.WorkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	rec, err := h.workService.Create(c.Request.Context(), middleware.CurrentUser(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// UpdateWork applies the submitted fields; absent fields are untouched
// @Summary      Update work
// @Tags         works
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Work ID"
// @Param        payload  body      object  true  "Work fields"
// @Success      200      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/works/{id} [patch]
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	var payload service.WorkPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	rec, err := h.workService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// DeleteWork removes a work
// @Summary      Delete work
// @Tags         works
// @Security     BearerAuth
// @Param        id   path  string  true  "Work ID"
// @Success      204
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/works/{id} [delete]
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	if err := h.workService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddLink appends one link
// @Summary      Add link
// @Tags         works
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Work ID"
// @Param        payload  body      service.AddLinkRequest  true  "Link"
// @Success      200      {object}  service.LinksResponse
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/works/{id}/add_link [post]
func (h *WorkHandler) AddLink(c *gin.Context) {
	var req service.AddLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.workService.AddLink(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, res.Message, res))
}

// RemoveLink removes every link with the given URL
// @Summary      Remove link
// @Tags         works
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Work ID"
// @Param        payload  body      service.RemoveLinkRequest  true  "Link URL"
// @Success      200      {object}  service.LinksResponse
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/works/{id}/remove_link [post]
func (h *WorkHandler) RemoveLink(c *gin.Context) {
	var req service.RemoveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.workService.RemoveLink(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, res.Message, res))
}
