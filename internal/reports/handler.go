package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

type Handler struct {
	service ReportService
}

func NewHandler(service ReportService) *Handler {
	return &Handler{service: service}
}

// ExportActivities godoc
// @Summary Export the activity log
// @Tags Reports
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "xlsx, csv or pdf (default pdf)"
// @Param type query string false "Activity type"
// @Param q query string false "Text search"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /api/v1/activities/export [get]
func (h *Handler) ExportActivities(c *gin.Context) {
	filter, err := auditlog.ParseFilter(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	file, err := h.service.ExportActivities(c.Request.Context(), auth.SessionFrom(c), filter, c.Query("format"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	send(c, file)
}

// ExportDirectory godoc
// @Summary Export the member directory
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "xlsx, csv or pdf (default pdf)"
// @Success 200 {file} file
// @Router /api/v1/directory/export [get]
func (h *Handler) ExportDirectory(c *gin.Context) {
	file, err := h.service.ExportDirectory(c.Request.Context(), c.Query("format"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	send(c, file)
}

// ExportApplications godoc
// @Summary Export membership applications
// @Tags Reports
// @Produce application/octet-stream
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param format query string false "xlsx, csv or pdf (default pdf)"
// @Success 200 {file} file
// @Router /api/v1/hotels/export [get]
func (h *Handler) ExportApplications(c *gin.Context) {
	file, err := h.service.ExportApplications(c.Request.Context(), auth.SessionFrom(c), hotel.Status(c.Query("status")), c.Query("format"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	send(c, file)
}

func send(c *gin.Context, file *File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, file.MIME, file.Data)
}
