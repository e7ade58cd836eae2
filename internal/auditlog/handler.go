package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

type Handler struct {
	service Service
	guard   *authz.Guard
}

func NewHandler(service Service, guard *authz.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// ParseFilter reads the activity filters shared by the list and export endpoints.
func ParseFilter(c *gin.Context) (Filter, error) {
	filter := Filter{
		Type: Type(c.Query("type")),
		Text: c.Query("q"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return filter, apperror.Validation("limit must be a positive number")
		}
		filter.Limit = limit
	}
	if actor := c.Query("actor_id"); actor != "" {
		filter.ActorID = &actor
	}

	if fromDateStr := c.Query("from_date"); fromDateStr != "" {
		fromDate, err := time.Parse("2006-01-02", fromDateStr)
		if err != nil {
			return filter, apperror.Validation("invalid from_date format, use YYYY-MM-DD")
		}
		filter.FromDate = &fromDate
	}
	if toDateStr := c.Query("to_date"); toDateStr != "" {
		toDate, err := time.Parse("2006-01-02", toDateStr)
		if err != nil {
			return filter, apperror.Validation("invalid to_date format, use YYYY-MM-DD")
		}
		// Set to end of day
		endOfDay := toDate.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &endOfDay
	}
	return filter, nil
}

// ListActivities handles GET /activities
// @Summary List the activity log
// @Description Most recent entries first (staff only)
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param type query string false "registration, approval, rejection, update, deletion, user, event, news, security"
// @Param q query string false "Case-insensitive text search"
// @Param actor_id query string false "Filter by actor profile id"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Number of entries (default 50, max 500)"
// @Success 200 {array} Activity
// @Failure 403 {object} map[string]string
// @Router /api/v1/activities [get]
func (h *Handler) ListActivities(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.guard.Authorize(ctx, auth.SessionFrom(c), authz.ViewActivity); err != nil {
		apperror.Respond(c, err)
		return
	}

	filter, err := ParseFilter(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	rows, err := h.service.List(ctx, filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "count": len(rows)})
}

// GetStats handles GET /activities/stats
// @Summary Activity counts per type
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /api/v1/activities/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.guard.Authorize(ctx, auth.SessionFrom(c), authz.ViewActivity); err != nil {
		apperror.Respond(c, err)
		return
	}

	stats, err := h.service.Stats(ctx)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
