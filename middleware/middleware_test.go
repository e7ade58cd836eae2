package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/config"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/internal/testutil"
)

type testEnv struct {
	router   *gin.Engine
	accounts auth.Service
	profiles auth.Repository
	guard    *authz.Guard
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t, &auth.Profile{})
	profiles := auth.NewRepository(db)
	cfg := &config.Config{JWTAccessSecret: "test-access-secret", JWTAccessTTLHours: 1}
	accounts := auth.NewService(profiles, auth.NewMemoryTokenStore(), &notification.MemoryPublisher{}, cfg, zap.NewNop())

	return &testEnv{
		router:   gin.New(),
		accounts: accounts,
		profiles: profiles,
		guard:    authz.NewGuard(profiles, zap.NewNop()),
	}
}

func (e *testEnv) login(t *testing.T, email string, role auth.Role, changed bool) string {
	t.Helper()
	ctx := context.Background()
	_, err := e.accounts.CreateProfile(ctx, auth.CreateProfileInput{
		DisplayName: email, Email: email, Password: "secret123", Role: role, PasswordChanged: changed,
	})
	require.NoError(t, err)
	res, err := e.accounts.Login(ctx, auth.LoginInput{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return res.AccessToken
}

func do(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t, "owner@seaside-inn.com", auth.RoleMember, true)

	env.router.GET("/protected", AuthMiddleware(env.accounts), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile_id": auth.SessionFrom(c).ProfileID})
	})

	w := do(env.router, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(env.router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(env.router, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	env := setupTestRouter(t)

	env.router.GET("/protected", OptionalAuth(env.accounts), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"signed_in": auth.SessionFrom(c).Present()})
	})

	w := do(env.router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"signed_in":false}`, w.Body.String())

	w = do(env.router, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func doWithHeader(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", header)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMalformedAuthorizationHeaderIsRejected(t *testing.T) {
	malformed := []string{"Basic xyz", "Bearer", "Bearer    ", "Token abc.def"}

	t.Run("optional", func(t *testing.T) {
		env := setupTestRouter(t)
		env.router.GET("/protected", OptionalAuth(env.accounts), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"signed_in": auth.SessionFrom(c).Present()})
		})

		for _, header := range malformed {
			w := doWithHeader(env.router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code, header)
			assert.Contains(t, w.Body.String(), "invalid Authorization header", header)
		}
	})

	t.Run("required", func(t *testing.T) {
		env := setupTestRouter(t)
		env.router.GET("/protected", AuthMiddleware(env.accounts), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		for _, header := range malformed {
			w := doWithHeader(env.router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code, header)
			assert.Contains(t, w.Body.String(), "invalid Authorization header", header)
		}

		w := do(env.router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing Authorization header")
	})
}

func TestRequireCapability(t *testing.T) {
	env := setupTestRouter(t)
	member := env.login(t, "owner@seaside-inn.com", auth.RoleMember, true)
	admin := env.login(t, "admin@association.org", auth.RoleAdmin, true)

	env.router.GET("/protected",
		AuthMiddleware(env.accounts),
		RequireCapability(env.guard, authz.ViewActivity),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	assert.Equal(t, http.StatusForbidden, do(env.router, member).Code)
	assert.Equal(t, http.StatusNoContent, do(env.router, admin).Code)
}

func TestRequirePasswordChanged(t *testing.T) {
	env := setupTestRouter(t)
	fresh := env.login(t, "new@association.org", auth.RoleAdmin, false)
	settled := env.login(t, "old@association.org", auth.RoleAdmin, true)

	env.router.GET("/protected",
		AuthMiddleware(env.accounts),
		RequirePasswordChanged(env.profiles),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	w := do(env.router, fresh)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "password_change_required")
	assert.Equal(t, http.StatusNoContent, do(env.router, settled).Code)
}

func TestAuditMiddlewareCarriesClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seen string
	router.GET("/protected", AuditMiddleware(), func(c *gin.Context) {
		seen = auditlog.ClientIP(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", seen)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.RemoteAddr = "198.51.100.2:4242"
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", seen)
}
