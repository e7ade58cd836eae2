package directory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListMembers godoc
// @Summary Public member directory
// @Description Every approved hotel, most recent first.
// @Tags Directory
// @Produce json
// @Param city query string false "City"
// @Param q query string false "Name or city"
// @Param min_stars query int false "Minimum star rating"
// @Success 200 {array} Listing
// @Router /api/v1/directory [get]
func (h *Handler) ListMembers(c *gin.Context) {
	minStars, _ := strconv.Atoi(c.Query("min_stars"))
	members, err := h.service.ListMembers(c.Request.Context(), Query{
		City:     c.Query("city"),
		Search:   c.Query("q"),
		MinStars: minStars,
	})
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	listings := make([]Listing, 0, len(members))
	for _, m := range members {
		listings = append(listings, ToListing(m))
	}
	c.JSON(http.StatusOK, gin.H{"data": listings, "count": len(listings)})
}
