package user_test

import (
	"context"
	"testing"

	"go-hrms/internal/shared/testdb"
	"go-hrms/internal/tenant"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	userMock "go-hrms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*userMock.MockRepository, sqlmock.Sqlmock, user.Service, tenant.Scope) {
	ctrl := gomock.NewController(t)
	db, _, sqlMock := testdb.Mock(t)
	mockRepo := userMock.NewMockRepository(ctrl)
	scope, err := tenant.New(uuid.NewString())
	require.NoError(t, err)
	return mockRepo, sqlMock, user.NewService(db, mockRepo), scope
}

func TestUserService_Provision(t *testing.T) {
	ctx := context.Background()
	req := user.ProvisionAccountRequest{Email: " Ada@Example.com ", Password: "s3cret-pass"}

	t.Run("success hashes password", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, true)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().EmployeeInScope(gomock.Any(), scope, empID).Return(true, nil)
		repo.EXPECT().FindByEmployee(gomock.Any(), scope, empID).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(false, nil)
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, scope.OrganizationID(), u.OrganizationID)
				assert.Equal(t, user.RoleEmployee, u.Role)
				assert.True(t, u.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
				return nil
			})

		resp, err := svc.Provision(ctx, scope, empID, req)

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.Email)
		assert.Equal(t, empID, resp.EmployeeID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("employee of another organization", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().EmployeeInScope(gomock.Any(), scope, empID).Return(false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Provision(ctx, scope, empID, req)

		assert.ErrorIs(t, err, usererrors.ErrEmployeeNotFound)
	})

	t.Run("second account is a conflict", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().EmployeeInScope(gomock.Any(), scope, empID).Return(true, nil)
		repo.EXPECT().FindByEmployee(gomock.Any(), scope, empID).Return(&user.User{}, nil)

		_, err := svc.Provision(ctx, scope, empID, req)

		assert.ErrorIs(t, err, usererrors.ErrAccountExists)
	})

	t.Run("email already used", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().EmployeeInScope(gomock.Any(), scope, empID).Return(true, nil)
		repo.EXPECT().FindByEmployee(gomock.Any(), scope, empID).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(true, nil)

		_, err := svc.Provision(ctx, scope, empID, req)

		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, _, svc, scope := setup(t)

		_, err := svc.Provision(ctx, scope, uuid.NewString(), user.ProvisionAccountRequest{
			Email:    "a@b.co",
			Password: "long-enough",
			Role:     "ROOT",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, true)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().SetActive(gomock.Any(), scope, empID, false).Return(int64(1), nil)
		repo.EXPECT().FindByEmployee(gomock.Any(), scope, empID).Return(&user.User{Email: "a@b.co", IsActive: false}, nil)

		resp, err := svc.SetActive(ctx, scope, empID, false)

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("no account", func(t *testing.T) {
		repo, sqlMock, svc, scope := setup(t)
		empID := uuid.NewString()

		testdb.ExpectTx(t, sqlMock, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().SetActive(gomock.Any(), scope, empID, true).Return(int64(0), nil)

		_, err := svc.SetActive(ctx, scope, empID, true)

		assert.ErrorIs(t, err, usererrors.ErrAccountNotFound)
	})
}

func TestUserService_GetByEmployee(t *testing.T) {
	repo, _, svc, scope := setup(t)
	empID := uuid.NewString()
	repo.EXPECT().FindByEmployee(gomock.Any(), scope, empID).Return(&user.User{
		Role:     user.RoleHRManager,
		Employee: &user.UserEmployee{EmployeeCode: "EMP-000004"},
	}, nil)

	resp, err := svc.GetByEmployee(context.Background(), scope, empID)

	require.NoError(t, err)
	assert.Equal(t, "EMP-000004", resp.EmployeeCode)
	assert.Equal(t, user.RoleHRManager, resp.Role)
}
