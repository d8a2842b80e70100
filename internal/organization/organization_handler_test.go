package organization

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	organizationerrors "go-hrms/internal/organization/errors"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getFn       func(ctx context.Context, scope tenant.Scope) (OrganizationResponse, error)
	updateFn    func(ctx context.Context, scope tenant.Scope, patch OrganizationPatch) (OrganizationResponse, error)
	dashboardFn func(ctx context.Context, scope tenant.Scope) (DashboardStats, error)
}

func (f *fakeService) Get(ctx context.Context, scope tenant.Scope) (OrganizationResponse, error) {
	return f.getFn(ctx, scope)
}

func (f *fakeService) Update(ctx context.Context, scope tenant.Scope, patch OrganizationPatch) (OrganizationResponse, error) {
	return f.updateFn(ctx, scope, patch)
}

func (f *fakeService) GetDashboardStats(ctx context.Context, scope tenant.Scope) (DashboardStats, error) {
	return f.dashboardFn(ctx, scope)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestContext(method, path string, body []byte, orgID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if orgID != "" {
		c.Set(tenant.ContextKey, orgID)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandler_GetDashboardStats(t *testing.T) {
	orgID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{dashboardFn: func(_ context.Context, scope tenant.Scope) (DashboardStats, error) {
			assert.Equal(t, orgID, scope.String())
			return DashboardStats{TotalEmployees: 10, ActiveEmployees: 8, TodayAttendance: 6, AttendancePercentage: 75}, nil
		}}
		c, rec := newTestContext(http.MethodGet, "/organization/dashboard", nil, orgID)

		NewHandler(svc).GetDashboardStats(c)

		assert.Equal(t, http.StatusOK, rec.Code)
		var stats DashboardStats
		assert.NoError(t, json.Unmarshal(decode(t, rec).Data, &stats))
		assert.Equal(t, int64(75), stats.AttendancePercentage)
	})

	t.Run("negative unexpected error maps to 500", func(t *testing.T) {
		svc := &fakeService{dashboardFn: func(context.Context, tenant.Scope) (DashboardStats, error) {
			return DashboardStats{}, errors.New("connection reset")
		}}
		c, rec := newTestContext(http.MethodGet, "/organization/dashboard", nil, orgID)

		NewHandler(svc).GetDashboardStats(c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", decode(t, rec).Error.Code)
	})

	t.Run("negative missing organization context", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/organization/dashboard", nil, "")

		NewHandler(&fakeService{}).GetDashboardStats(c)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	orgID := uuid.NewString()

	t.Run("success passes only patched fields", func(t *testing.T) {
		svc := &fakeService{updateFn: func(_ context.Context, _ tenant.Scope, patch OrganizationPatch) (OrganizationResponse, error) {
			assert.NotNil(t, patch.Name)
			assert.Nil(t, patch.LogoURL)
			return OrganizationResponse{ID: orgID, Name: *patch.Name}, nil
		}}
		c, rec := newTestContext(http.MethodPut, "/organization", []byte(`{"name":"Acme","id":"ignored"}`), orgID)

		NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeService{updateFn: func(context.Context, tenant.Scope, OrganizationPatch) (OrganizationResponse, error) {
			return OrganizationResponse{}, organizationerrors.ErrOrganizationNotFound
		}}
		c, rec := newTestContext(http.MethodPut, "/organization", []byte(`{"logo_url":"x.png"}`), orgID)

		NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
	})

	t.Run("negative invalid body", func(t *testing.T) {
		c, rec := newTestContext(http.MethodPut, "/organization", []byte(`{"name":`), orgID)

		NewHandler(&fakeService{}).Update(c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
	})
}
