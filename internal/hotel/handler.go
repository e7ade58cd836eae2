package hotel

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit godoc
// @Summary Submit a membership registration
// @Description Anonymous callers may include an account block to create their member login.
// @Tags Hotels
// @Accept json
// @Produce json
// @Param body body SubmitInput true "Registration"
// @Success 201 {object} Result
// @Failure 400 {object} map[string]string
// @Router /api/v1/hotels [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Submit(c.Request.Context(), auth.SessionFrom(c), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary List applications
// @Description Staff see every application, members only their own.
// @Tags Hotels
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param q query string false "Search name, city or email"
// @Param city query string false "Exact city"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/hotels [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := Filter{
		Status: Status(c.Query("status")),
		Search: c.Query("q"),
		City:   c.Query("city"),
		Page:   page,
		Limit:  limit,
	}

	apps, total, err := h.service.List(c.Request.Context(), auth.SessionFrom(c), filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  apps,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Get godoc
// @Summary Get one application
// @Tags Hotels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Success 200 {object} Application
// @Failure 404 {object} map[string]string
// @Router /api/v1/hotels/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	app, err := h.service.Get(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Update godoc
// @Summary Edit an application's profile
// @Description Owners and staff only. Status is not editable here.
// @Tags Hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Param body body ProfileInput true "Profile"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.UpdateOwn(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Approve godoc
// @Summary Approve an application
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Success 200 {object} Result
// @Failure 403 {object} map[string]string
// @Router /api/v1/hotels/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	res, err := h.service.Approve(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type rejectReq struct {
	Reason string `json:"reason" example:"Incomplete tourism license"`
}

// Reject godoc
// @Summary Reject an application
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Param body body rejectReq false "Optional reason"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	var req rejectReq
	// the body is optional
	_ = c.ShouldBindJSON(&req)

	res, err := h.service.Reject(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Restore godoc
// @Summary Move an application back to pending
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id}/restore [post]
func (h *Handler) Restore(c *gin.Context) {
	res, err := h.service.RestoreToPending(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary Delete an application
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Counts godoc
// @Summary Application counts per status
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusCounts
// @Router /api/v1/hotels/counts [get]
func (h *Handler) Counts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context(), auth.SessionFrom(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// UploadImage godoc
// @Summary Add a gallery image
// @Tags Hotels
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Param file formData file true "jpg, png or webp, max 5MB"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id}/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	up, closeFn, ok := formUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	res, err := h.service.AttachImage(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), up)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type removeImageReq struct {
	URL string `json:"url" binding:"required"`
}

// RemoveImage godoc
// @Summary Remove a gallery image
// @Tags Hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Param body body removeImageReq true "Image URL"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id}/images [delete]
func (h *Handler) RemoveImage(c *gin.Context) {
	var req removeImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.RemoveImage(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req.URL)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UploadDocument godoc
// @Summary Upload a compliance document
// @Tags Hotels
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hotel ID"
// @Param kind path string true "business_permit, tourism_license, tax_certificate, fire_safety_certificate, sanitary_permit"
// @Param file formData file true "pdf, jpg or png, max 10MB"
// @Success 200 {object} Result
// @Router /api/v1/hotels/{id}/documents/{kind} [post]
func (h *Handler) UploadDocument(c *gin.Context) {
	up, closeFn, ok := formUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	res, err := h.service.AttachDocument(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), c.Param("kind"), up)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func formUpload(c *gin.Context) (Upload, func(), bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return Upload{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return Upload{}, nil, false
	}
	return Upload{Filename: fh.Filename, Size: fh.Size, Body: f}, func() { _ = f.Close() }, true
}
