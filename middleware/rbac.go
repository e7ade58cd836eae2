package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

// ProfileKey holds the profile loaded by RequireCapability.
const ProfileKey = "profile"

// RequireCapability rejects the request early when the caller's stored role
// lacks cap. Services authorize again themselves; this only saves work on
// routes that are staff-only as a whole.
func RequireCapability(guard *authz.Guard, cap authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := guard.Authorize(c.Request.Context(), auth.SessionFrom(c), cap)
		if err != nil {
			apperror.Respond(c, err)
			c.Abort()
			return
		}
		c.Set(ProfileKey, p)
		c.Next()
	}
}
