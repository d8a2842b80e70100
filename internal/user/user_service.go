package user

import (
	"context"
	"errors"
	"strings"

	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Provision(ctx context.Context, scope tenant.Scope, employeeID string, req ProvisionAccountRequest) (AccountResponse, error)
	SetActive(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (AccountResponse, error)
	GetByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) (AccountResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	cost   int
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, cost: bcrypt.DefaultCost, logger: l}
}

// Provision creates the login account of an employee. One account per employee;
// email is unique across organizations.
func (s *service) Provision(
	ctx context.Context,
	scope tenant.Scope,
	employeeID string,
	req ProvisionAccountRequest,
) (AccountResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("provision account requested",
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", employeeID),
	)

	if err := scope.Validate(); err != nil {
		return AccountResponse{}, err
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return AccountResponse{}, usererrors.ErrEmployeeNotFound
	}
	if len(req.Password) < minPasswordLength {
		return AccountResponse{}, usererrors.ErrPasswordTooShort
	}
	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	if role != RoleAdmin && role != RoleHRManager && role != RoleEmployee {
		return AccountResponse{}, usererrors.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return AccountResponse{}, err
	}

	u := &User{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		EmployeeID:     empID,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   string(hash),
		Role:           role,
		IsActive:       true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		ok, err := qtx.EmployeeInScope(ctx, scope, employeeID)
		if err != nil {
			return err
		}
		if !ok {
			return usererrors.ErrEmployeeNotFound
		}

		_, err = qtx.FindByEmployee(ctx, scope, employeeID)
		switch {
		case err == nil:
			return usererrors.ErrAccountExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		taken, err := qtx.EmailTaken(ctx, u.Email)
		if err != nil {
			return err
		}
		if taken {
			return usererrors.ErrEmailTaken
		}

		return mapRepositoryError(qtx.Create(ctx, u))
	})
	if err != nil {
		l.Warn("provision account failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AccountResponse{}, err
	}

	l.Info("provision account success",
		zap.String("employee_id", employeeID),
		zap.String("role", role),
	)
	return mapToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (AccountResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return AccountResponse{}, usererrors.ErrAccountNotFound
	}

	var updated User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		affected, err := qtx.SetActive(ctx, scope, employeeID, active)
		if err != nil {
			return err
		}
		if affected == 0 {
			return usererrors.ErrAccountNotFound
		}

		u, err := qtx.FindByEmployee(ctx, scope, employeeID)
		if err != nil {
			return mapRepositoryError(err)
		}
		updated = *u
		return nil
	})
	if err != nil {
		l.Warn("set account active failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AccountResponse{}, err
	}

	l.Info("set account active success",
		zap.String("employee_id", employeeID),
		zap.Bool("is_active", active),
	)
	return mapToResponse(updated), nil
}

func (s *service) GetByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) (AccountResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AccountResponse{}, usererrors.ErrAccountNotFound
	}

	u, err := s.repo.FindByEmployee(ctx, scope, employeeID)
	if err != nil {
		return AccountResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func mapToResponse(u User) AccountResponse {
	resp := AccountResponse{
		ID:         u.ID.String(),
		EmployeeID: u.EmployeeID.String(),
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
	if u.Employee != nil {
		resp.EmployeeCode = u.Employee.EmployeeCode
	}
	return resp
}
