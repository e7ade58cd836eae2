package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

// RequirePasswordChanged blocks accounts still on a staff-issued temporary
// password. The flag is read from the database on every request. Routes the
// user needs to change the password must not sit behind it.
func RequirePasswordChanged(profiles authz.ProfileSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := auth.SessionFrom(c)
		if !sess.Present() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperror.ErrUnauthenticated.Error()})
			return
		}

		p, err := profiles.FindByID(c.Request.Context(), sess.ProfileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperror.ErrUnauthenticated.Error()})
			return
		}
		if !p.PasswordChanged {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "please choose a new password before continuing",
				"code":  "password_change_required",
			})
			return
		}
		c.Next()
	}
}
