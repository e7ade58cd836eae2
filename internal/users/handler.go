package users

import (
	"net/http"
	"strconv"
	"strings"

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

// =========================== USERS ===========================

// CreateUser godoc
// @Summary Create a console user with a temporary password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User"
// @Success 201 {object} CreatedUser
// @Failure 403 {object} map[string]string
// @Router /api/v1/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), auth.SessionFrom(c), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/v1/users?role=admin&search=&limit=20&page=1
// @Summary List console users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "member, admin or super-admin"
// @Param search query string false "Name or email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	filter := auth.ProfileFilter{
		Role:   auth.Role(strings.ToLower(c.Query("role"))),
		Search: c.Query("search"),
		Limit:  limit,
		Page:   page,
	}
	profiles, total, err := h.service.ListUsers(c.Request.Context(), auth.SessionFrom(c), filter)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  profiles,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// PATCH /api/v1/users/:id/role
// @Summary Change a user's role (super-admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param body body UpdateRoleRequest true "Role"
// @Success 200 {object} auth.Profile
// @Router /api/v1/users/{id}/role [patch]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateUserRole(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req.Role)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/v1/users/:id/password
// @Summary Force-set a user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param body body SetPasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Router /api/v1/users/{id}/password [post]
func (h *Handler) ForceSetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ForceSetPassword(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req.Password); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. The user must choose a new one at next sign-in."})
}
