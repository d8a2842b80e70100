package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	rbacerrors "go-hrms/internal/rbac/errors"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	Service
	enforceFn    func(ctx context.Context, scope tenant.Scope, req EnforceRequest) (bool, error)
	assignRoleFn func(ctx context.Context, scope tenant.Scope, employeeID string, req AssignRoleRequest) error
}

func (f *fakeService) Enforce(ctx context.Context, scope tenant.Scope, req EnforceRequest) (bool, error) {
	return f.enforceFn(ctx, scope, req)
}

func (f *fakeService) AssignRole(ctx context.Context, scope tenant.Scope, employeeID string, req AssignRoleRequest) error {
	return f.assignRoleFn(ctx, scope, employeeID, req)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestRouter(orgID string, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(tenant.ContextKey, orgID)
		c.Next()
	})
	register(r)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	orgID := uuid.NewString()

	t.Run("success uses organization from context", func(t *testing.T) {
		svc := &fakeService{enforceFn: func(_ context.Context, scope tenant.Scope, req EnforceRequest) (bool, error) {
			assert.Equal(t, orgID, scope.String())
			return req.Resource == "employee" && req.Action == "read", nil
		}}
		h := NewHandler(svc)
		r := newTestRouter(orgID, func(r *gin.Engine) { r.POST("/rbac/enforce", h.Enforce) })

		body, _ := json.Marshal(map[string]string{
			"employee_id":     "emp-1",
			"organization_id": uuid.NewString(),
			"resource":        "employee",
			"action":          "read",
		})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		var resp EnforceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		h := NewHandler(&fakeService{})
		r := newTestRouter(orgID, func(r *gin.Engine) { r.POST("/rbac/enforce", h.Enforce) })

		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"employee"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_AssignRole(t *testing.T) {
	orgID := uuid.NewString()

	t.Run("negative employee not found", func(t *testing.T) {
		svc := &fakeService{assignRoleFn: func(context.Context, tenant.Scope, string, AssignRoleRequest) error {
			return rbacerrors.ErrEmployeeNotFound
		}}
		h := NewHandler(svc)
		r := newTestRouter(orgID, func(r *gin.Engine) { r.POST("/rbac/employees/:id/roles", h.AssignRole) })

		body := `{"role_id":"` + uuid.NewString() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/rbac/employees/"+uuid.NewString()+"/roles", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
