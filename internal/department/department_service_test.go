package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/testdb"
	"go-hrms/internal/tenant"

	departmentMock "go-hrms/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
	scope     tenant.Scope
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, _, sqlMock := testdb.Mock(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	scope, err := tenant.New(uuid.NewString())
	assert.NoError(t, err)

	return &serviceDeps{
		sqlMock:   sqlMock,
		service:   department.NewService(db, repo, rdb),
		repo:      repo,
		redismock: redisMock,
		scope:     scope,
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cacheKey := "departments:all:" + deps.scope.String()

		cached, _ := json.Marshal([]department.DepartmentResponse{
			{ID: "d-1", Name: "Engineering"},
			{ID: "d-2", Name: "People"},
		})
		deps.redismock.ExpectGet(cacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.GetAll(ctx, deps.scope)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Name)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		cacheKey := "departments:all:" + deps.scope.String()
		deptID := uuid.New()
		empID := uuid.New()

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAll(ctx, deps.scope).
			Return([]department.Department{{
				ID:             deptID,
				OrganizationID: deps.scope.OrganizationID(),
				Name:           "Finance",
				Employees:      []department.EmployeeRef{{ID: empID, FirstName: "Ada", Status: "ACTIVE"}},
			}}, nil)

		want := []department.DepartmentResponse{{
			ID:             deptID.String(),
			OrganizationID: deps.scope.String(),
			Name:           "Finance",
			EmployeeCount:  1,
			Employees:      []department.DepartmentEmployee{{ID: empID.String(), FirstName: "Ada", Status: "ACTIVE"}},
		}}
		payload, _ := json.Marshal(want)
		deps.redismock.ExpectSet(cacheKey, payload, 10*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, deps.scope)

		assert.NoError(t, err)
		assert.Equal(t, want, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet("departments:all:" + deps.scope.String()).RedisNil()
		deps.repo.EXPECT().FindAll(ctx, deps.scope).Return(nil, errors.New("db down"))

		resp, err := deps.service.GetAll(ctx, deps.scope)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("zero scope is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, tenant.Scope{})

		assert.ErrorIs(t, err, tenant.ErrUnscopedQuery)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success stamps organization and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, deps.scope.OrganizationID(), d.OrganizationID)
				assert.Equal(t, "Engineering", d.Name)
				return nil
			})
		deps.redismock.ExpectDel("departments:all:" + deps.scope.String()).SetVal(1)

		resp, err := deps.service.Create(ctx, deps.scope, department.CreateDepartmentRequest{Name: "  Engineering "})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.Equal(t, 0, resp.EmployeeCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(gorm.ErrDuplicatedKey)

		_, err := deps.service.Create(ctx, deps.scope, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
		assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, deps.scope, department.CreateDepartmentRequest{Name: "   "})

		assert.ErrorIs(t, err, departmenterrors.ErrNameRequired)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found in organization", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, deps.scope, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, deps.scope, id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, deps.scope, "nope")

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patch applies only provided fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		testdb.ExpectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(gomock.Any(), deps.scope, id.String()).
			Return(&department.Department{ID: id, Name: "Eng", Description: "builders"}, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), deps.scope, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ tenant.Scope, d *department.Department) error {
				assert.Equal(t, "Engineering", d.Name)
				assert.Equal(t, "builders", d.Description)
				return nil
			})
		deps.redismock.ExpectDel("departments:all:" + deps.scope.String()).SetVal(1)

		name := "Engineering"
		resp, err := deps.service.Update(ctx, deps.scope, id.String(), department.DepartmentPatch{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("other organization rolls back with not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		testdb.ExpectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), deps.scope, id).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		desc := "x"
		_, err := deps.service.Update(ctx, deps.scope, id, department.DepartmentPatch{Description: &desc})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("empty department is deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		testdb.ExpectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), deps.scope, id).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(gomock.Any(), deps.scope, id).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), deps.scope, id).Return(int64(1), nil)
		deps.redismock.ExpectDel("departments:all:" + deps.scope.String()).SetVal(1)

		err := deps.service.Delete(ctx, deps.scope, id)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("department with employees is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		testdb.ExpectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), deps.scope, id).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(gomock.Any(), deps.scope, id).Return(int64(3), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.Delete(ctx, deps.scope, id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentHasEmployees)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		testdb.ExpectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), deps.scope, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, deps.scope, id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
