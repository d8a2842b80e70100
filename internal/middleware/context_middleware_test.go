package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var meta contextutil.Metadata
	r := gin.New()
	r.Use(RequestID())
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, "user-1")
		c.Set(tenant.ContextKey, "org-1")
		c.Next()
	})
	r.Use(ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		meta = contextutil.ExtractMetadata(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "rid-1")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, "rid-1", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", UserID: "user-1", OrganizationID: "org-1"}, meta)
	})

	t.Run("generates request id", func(t *testing.T) {
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
		assert.Equal(t, rec.Header().Get(HeaderRequestID), meta.RequestID)
	})
}
