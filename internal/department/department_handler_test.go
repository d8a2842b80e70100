package department_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, scope tenant.Scope, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context, scope tenant.Scope) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, scope tenant.Scope, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, scope tenant.Scope, id string, patch department.DepartmentPatch) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, scope tenant.Scope, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, scope tenant.Scope, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, scope, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, scope tenant.Scope) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, scope)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, scope tenant.Scope, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, scope, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, scope tenant.Scope, id string, patch department.DepartmentPatch) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, scope, id, patch)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return f.DeleteFn(ctx, scope, id)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newContext(method, path, body, orgID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if orgID != "" {
		c.Set(tenant.ContextKey, orgID)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		orgID := uuid.NewString()
		svc := &fakeDepartmentService{
			CreateFn: func(_ context.Context, scope tenant.Scope, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, orgID, scope.String())
				return department.DepartmentResponse{ID: uuid.NewString(), Name: req.Name, OrganizationID: scope.String()}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/departments", `{"name":"HR"}`, orgID)

		department.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Ok)
	})

	t.Run("validation error", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/departments", `{}`, uuid.NewString())

		department.NewHandler(&fakeDepartmentService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})

	t.Run("missing organization", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/departments", `{"name":"HR"}`, "")

		department.NewHandler(&fakeDepartmentService{}).Create(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(context.Context, tenant.Scope, department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
			},
		}
		c, w := newContext(http.MethodPost, "/departments", `{"name":"HR"}`, uuid.NewString())

		department.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "CONFLICT", decode(t, w).Error.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	svc := &fakeDepartmentService{
		GetAllFn: func(context.Context, tenant.Scope) ([]department.DepartmentResponse, error) {
			return []department.DepartmentResponse{{Name: "A"}, {Name: "B"}}, nil
		},
	}
	c, w := newContext(http.MethodGet, "/departments", "", uuid.NewString())

	department.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []department.DepartmentResponse
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Len(t, got, 2)
}

func TestDepartmentHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeDepartmentService{
		GetByIDFn: func(_ context.Context, _ tenant.Scope, id string) (department.DepartmentResponse, error) {
			assert.Equal(t, "d-1", id)
			return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		},
	}
	c, w := newContext(http.MethodGet, "/departments/d-1", "", uuid.NewString())
	c.Params = gin.Params{{Key: "id", Value: "d-1"}}

	department.NewHandler(svc).GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentHandler_Update(t *testing.T) {
	svc := &fakeDepartmentService{
		UpdateFn: func(_ context.Context, _ tenant.Scope, id string, patch department.DepartmentPatch) (department.DepartmentResponse, error) {
			assert.Nil(t, patch.Name)
			assert.Equal(t, "people ops", *patch.Description)
			return department.DepartmentResponse{ID: id, Description: *patch.Description}, nil
		},
	}
	c, w := newContext(http.MethodPut, "/departments/d-1", `{"description":"people ops"}`, uuid.NewString())
	c.Params = gin.Params{{Key: "id", Value: "d-1"}}

	department.NewHandler(svc).Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("has employees", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(context.Context, tenant.Scope, string) error {
				return departmenterrors.ErrDepartmentHasEmployees
			},
		}
		c, w := newContext(http.MethodDelete, "/departments/d-1", "", uuid.NewString())
		c.Params = gin.Params{{Key: "id", Value: "d-1"}}

		department.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "CONFLICT", decode(t, w).Error.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(context.Context, tenant.Scope, string) error { return nil },
		}
		c, w := newContext(http.MethodDelete, "/departments/d-1", "", uuid.NewString())

		department.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
