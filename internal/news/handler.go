package news

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news ID"})
		return 0, false
	}
	return uint(id), true
}

// Create godoc
// @Summary Create a news article
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ArticleRequest true "Article"
// @Success 201 {object} Article
// @Router /api/v1/news [post]
func (h *Handler) Create(c *gin.Context) {
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.service.Create(c.Request.Context(), auth.SessionFrom(c), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List godoc
// @Summary List news
// @Tags News
// @Produce json
// @Param search query string false "Title or body"
// @Param drafts query bool false "Include drafts (staff only)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/news [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	items, total, err := h.service.List(c.Request.Context(), auth.SessionFrom(c),
		c.Query("search"), c.Query("drafts") == "true", limit, page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": page, "limit": limit})
}

// Get godoc
// @Summary Get a news article
// @Tags News
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} Article
// @Router /api/v1/news/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	a, err := h.service.Get(c.Request.Context(), auth.SessionFrom(c), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update godoc
// @Summary Update a news article
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Param body body ArticleRequest true "Article"
// @Success 200 {object} Article
// @Router /api/v1/news/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.service.Update(c.Request.Context(), auth.SessionFrom(c), id, req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Publish godoc
// @Summary Publish or unpublish a news article
// @Tags News
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Param published query bool true "Target state"
// @Success 200 {object} Article
// @Router /api/v1/news/{id}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	published := c.DefaultQuery("published", "true") == "true"
	a, err := h.service.SetPublished(c.Request.Context(), auth.SessionFrom(c), id, published)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete godoc
// @Summary Delete a news article
// @Tags News
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/news/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), auth.SessionFrom(c), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}
