package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Create Event - POST /events
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event"
// @Success 201 {object} Event
// @Router /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.CreateEvent(c.Request.Context(), auth.SessionFrom(c), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ===========================
// 🔍 Get Event - GET /events/:id
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} Event
// @Router /api/v1/events/{id} [get]
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, err := h.Service.GetEvent(c.Request.Context(), auth.SessionFrom(c), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ===========================
// 📄 List Events - GET /events?limit=&page=&search=&upcoming=&drafts=
// @Summary List events
// @Tags Events
// @Produce json
// @Param search query string false "Title or description"
// @Param upcoming query bool false "Only events that have not started"
// @Param drafts query bool false "Include unpublished events (staff only)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	q := ListQuery{
		Search:        c.Query("search"),
		UpcomingOnly:  c.Query("upcoming") == "true",
		IncludeDrafts: c.Query("drafts") == "true",
		Limit:         limit,
		Page:          page,
	}

	events, total, err := h.Service.ListEvents(c.Request.Context(), auth.SessionFrom(c), q)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "total": total, "page": page, "limit": limit})
}

// ===========================
// 🛠 Update Event - PUT /events/:id
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event"
// @Success 200 {object} Event
// @Router /api/v1/events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.UpdateEvent(c.Request.Context(), auth.SessionFrom(c), id, req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ===========================
// 📣 Publish - POST /events/:id/publish, /events/:id/unpublish
// @Summary Publish an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} Event
// @Router /api/v1/events/{id}/publish [post]
func (h *Handler) PublishEvent(c *gin.Context) {
	h.setPublished(c, true)
}

// @Summary Unpublish an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} Event
// @Router /api/v1/events/{id}/unpublish [post]
func (h *Handler) UnpublishEvent(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Handler) setPublished(c *gin.Context, published bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, err := h.Service.SetPublished(c.Request.Context(), auth.SessionFrom(c), id, published)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
// @Summary Delete an event
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteEvent(c.Request.Context(), auth.SessionFrom(c), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}
