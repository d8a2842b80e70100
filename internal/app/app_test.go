package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Auth:      config.AuthConfig{JWTSecret: testSecret},
		RateLimit: config.RateLimitConfig{RPS: 100, Burst: 100},
	}
	r := gin.New()
	api := mountRouter(r, cfg, prometheus.NewRegistry())
	api.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, contextutil.ExtractMetadata(c.Request.Context()))
	})
	return r
}

func signedToken(t *testing.T, userID, orgID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":         userID,
		"organization_id": orgID,
		"employee_id":     uuid.NewString(),
		"role":            "HR_MANAGER",
		"exp":             time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestMountRouter_RequestContextCarriesCaller(t *testing.T) {
	r := newTestRouter(t)
	userID := uuid.NewString()
	orgID := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, orgID))
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var meta contextutil.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "req-42", meta.RequestID)
	assert.Equal(t, userID, meta.UserID)
	assert.Equal(t, orgID, meta.OrganizationID)
}

func TestMountRouter_PublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	t.Run("healthz needs no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("negative api without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
