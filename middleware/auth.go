package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
)

// AuthMiddleware requires a valid bearer token and stores the caller's
// Session. The token carries only the profile id; roles are looked up by
// the guard on every action.
func AuthMiddleware(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, present, ok := bearerToken(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		sess, err := authSvc.ParseAccessToken(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperror.Message(err)})
			return
		}

		c.Set(auth.SessionKey, sess)
		c.Next()
	}
}

// OptionalAuth sets the Session when a token is sent and lets anonymous
// callers through. A header that is sent but malformed or invalid is still
// rejected.
func OptionalAuth(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, present, ok := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		sess, err := authSvc.ParseAccessToken(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperror.Message(err)})
			return
		}

		c.Set(auth.SessionKey, sess)
		c.Next()
	}
}

// bearerToken reports whether an Authorization header was sent at all and,
// separately, whether it holds a usable bearer token.
func bearerToken(c *gin.Context) (token string, present, ok bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, false
	}
	return strings.TrimSpace(parts[1]), true, true
}
