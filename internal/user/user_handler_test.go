package user_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/tenant"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	provisionFn func(ctx context.Context, scope tenant.Scope, employeeID string, req user.ProvisionAccountRequest) (user.AccountResponse, error)
	setActiveFn func(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (user.AccountResponse, error)
	getFn       func(ctx context.Context, scope tenant.Scope, employeeID string) (user.AccountResponse, error)
}

func (f *fakeUserService) Provision(ctx context.Context, scope tenant.Scope, employeeID string, req user.ProvisionAccountRequest) (user.AccountResponse, error) {
	return f.provisionFn(ctx, scope, employeeID, req)
}
func (f *fakeUserService) SetActive(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (user.AccountResponse, error) {
	return f.setActiveFn(ctx, scope, employeeID, active)
}
func (f *fakeUserService) GetByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) (user.AccountResponse, error) {
	return f.getFn(ctx, scope, employeeID)
}

func newRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	orgID := uuid.NewString()
	r.Use(func(c *gin.Context) {
		c.Set(tenant.ContextKey, orgID)
		c.Next()
	})
	h := user.NewHandler(svc)
	g := r.Group("/employees/:id/account")
	g.GET("", h.Get)
	g.POST("", h.Provision)
	g.PATCH("", h.SetActive)
	return r
}

func TestUserHandler_Provision(t *testing.T) {
	empID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		svc := &fakeUserService{
			provisionFn: func(_ context.Context, _ tenant.Scope, id string, req user.ProvisionAccountRequest) (user.AccountResponse, error) {
				assert.Equal(t, empID, id)
				return user.AccountResponse{EmployeeID: id, Email: req.Email}, nil
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/"+empID+"/account",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"long-enough"}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("short password rejected by binding", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/"+empID+"/account",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"short"}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(&fakeUserService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeUserService{
			provisionFn: func(context.Context, tenant.Scope, string, user.ProvisionAccountRequest) (user.AccountResponse, error) {
				return user.AccountResponse{}, usererrors.ErrAccountExists
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/"+empID+"/account",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"long-enough"}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestUserHandler_SetActive(t *testing.T) {
	t.Run("missing flag", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/employees/x/account", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(&fakeUserService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("false is passed through", func(t *testing.T) {
		svc := &fakeUserService{
			setActiveFn: func(_ context.Context, _ tenant.Scope, _ string, active bool) (user.AccountResponse, error) {
				assert.False(t, active)
				return user.AccountResponse{IsActive: active}, nil
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/employees/x/account", bytes.NewBufferString(`{"is_active":false}`))
		req.Header.Set("Content-Type", "application/json")

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	svc := &fakeUserService{
		getFn: func(context.Context, tenant.Scope, string) (user.AccountResponse, error) {
			return user.AccountResponse{}, usererrors.ErrAccountNotFound
		},
	}
	w := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/x/account", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
