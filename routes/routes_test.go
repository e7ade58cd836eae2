package routes

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/sharath018/hotel-association-backend/internal/event"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
	"github.com/sharath018/hotel-association-backend/internal/news"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/internal/testutil"
	"github.com/sharath018/hotel-association-backend/pkg/storage"
)

const (
	adminEmail    = "root@association.org"
	adminPassword = "bootstrap-secret"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t, &auth.Profile{}, &hotel.Application{}, &auditlog.Activity{}, &event.Event{}, &news.Article{})
	cfg := &config.Config{JWTAccessSecret: "test-secret", JWTAccessTTLHours: 1, RateLimitPerMinute: 1000}
	tokens := auth.NewMemoryTokenStore()
	pub := &notification.MemoryPublisher{}

	profiles := auth.NewRepository(db)
	accounts := auth.NewService(profiles, tokens, pub, cfg, zap.NewNop())
	require.NoError(t, auth.SeedSuperAdmin(context.Background(), accounts, profiles, adminEmail, adminPassword, zap.NewNop()))

	store, err := storage.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	r := gin.New()
	Setup(r, cfg, Deps{DB: db, Tokens: tokens, Publisher: pub, Store: store, Logger: zap.NewNop()})
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	code, body := call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code, body)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	r := newRouter(t)
	code, body := call(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
}

func TestRegistrationReviewFlow(t *testing.T) {
	r := newRouter(t)

	code, body := call(t, r, http.MethodPost, "/api/v1/hotels", "", gin.H{
		"name":          "Harbor View Hotel",
		"city":          "Cebu",
		"contact_email": "frontdesk@harborview.ph",
		"star_rating":   3,
		"account": gin.H{
			"display_name": "Harbor View",
			"email":        "owner@harborview.ph",
			"password":     "harbor-pass",
		},
	})
	require.Equal(t, http.StatusCreated, code, body)
	app := body["application"].(map[string]any)
	assert.Equal(t, "pending", app["status"])
	id := app["id"].(string)

	// not listed until approved
	_, dir := call(t, r, http.MethodGet, "/api/v1/directory", "", nil)
	assert.EqualValues(t, 0, dir["count"])

	owner := login(t, r, "owner@harborview.ph", "harbor-pass")
	code, body = call(t, r, http.MethodPost, "/api/v1/hotels/"+id+"/approve", owner, nil)
	assert.Equal(t, http.StatusForbidden, code, body)
	assert.Equal(t, "error", body["level"])

	admin := login(t, r, adminEmail, adminPassword)
	code, body = call(t, r, http.MethodPost, "/api/v1/hotels/"+id+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, code, body)
	notice := body["notice"].(map[string]any)
	assert.Equal(t, "success", notice["level"])

	_, dir = call(t, r, http.MethodGet, "/api/v1/directory", "", nil)
	assert.EqualValues(t, 1, dir["count"])

	code, body = call(t, r, http.MethodGet, "/api/v1/activities", admin, nil)
	require.Equal(t, http.StatusOK, code, body)
	rows := body["data"].([]any)
	require.GreaterOrEqual(t, len(rows), 2)
	latest := rows[0].(map[string]any)
	assert.Equal(t, "approval", latest["type"])
	assert.Equal(t, "Harbor View Hotel was approved", latest["text"])
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newRouter(t)

	for _, path := range []string{"/api/v1/hotels", "/api/v1/activities", "/api/v1/users"} {
		code, _ := call(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestMemberCannotReadActivityLog(t *testing.T) {
	r := newRouter(t)

	code, _ := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"displayName": "Guest House",
		"email":       "owner@guesthouse.ph",
		"password":    "guest-pass",
	})
	require.Equal(t, http.StatusCreated, code)

	member := login(t, r, "owner@guesthouse.ph", "guest-pass")
	code, _ = call(t, r, http.MethodGet, "/api/v1/activities", member, nil)
	assert.Equal(t, http.StatusForbidden, code)
}
