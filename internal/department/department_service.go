package department

import (
	"context"
	"strings"
	"time"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/cache"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const departmentsCacheTTL = 10 * time.Minute

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, scope tenant.Scope) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, scope tenant.Scope, id string) (DepartmentResponse, error)
	Update(ctx context.Context, scope tenant.Scope, id string, patch DepartmentPatch) (DepartmentResponse, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	scope tenant.Scope,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("name", req.Name),
	)

	if err := scope.Validate(); err != nil {
		return DepartmentResponse{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrNameRequired
	}

	dept := &Department{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, dept)
	})
	if err != nil {
		s.logger.Error("create department failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, scope)
	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, scope tenant.Scope) ([]DepartmentResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	cacheKey := cache.DepartmentsKey(scope.String())
	var cached []DepartmentResponse
	if cache.GetJSON(ctx, s.rdb, cacheKey, &cached) {
		return cached, nil
	}

	depts, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("get all departments failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	res := mapToListResponse(depts)
	cache.SetJSON(ctx, s.rdb, cacheKey, res, departmentsCacheTTL)
	return res, nil
}

func (s *service) GetByID(ctx context.Context, scope tenant.Scope, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
	}

	dept, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	patch DepartmentPatch,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update department requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("department_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return DepartmentResponse{}, departmenterrors.ErrNameRequired
	}

	var updated Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByID(ctx, scope, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		if patch.Name != nil {
			dept.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			dept.Description = strings.TrimSpace(*patch.Description)
		}
		dept.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, scope, dept); err != nil {
			return mapRepositoryError(err)
		}
		updated = *dept
		return nil
	})
	if err != nil {
		s.logger.Warn("update department failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx, scope)
	s.logger.Info("update department success", zap.String("request_id", rid))
	return mapToResponse(updated), nil
}

// Delete removes a department only while no employee references it. The check
// and the delete share one transaction; the employees.department_id foreign key
// rejects a concurrent assignment.
func (s *service) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete department requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("department_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrDepartmentNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, scope, id); err != nil {
			return mapRepositoryError(err)
		}

		count, err := qtx.CountEmployees(ctx, scope, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return departmenterrors.ErrDepartmentHasEmployees
		}

		affected, err := qtx.Delete(ctx, scope, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if affected == 0 {
			return departmenterrors.ErrDepartmentNotFound
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("delete department failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidate(ctx, scope)
	s.logger.Info("delete department success", zap.String("request_id", rid))
	return nil
}

func (s *service) invalidate(ctx context.Context, scope tenant.Scope) {
	cache.Invalidate(ctx, s.rdb, cache.DepartmentsKey(scope.String()))
}

func mapToResponse(dept Department) DepartmentResponse {
	employees := make([]DepartmentEmployee, len(dept.Employees))
	for i, e := range dept.Employees {
		employees[i] = DepartmentEmployee{
			ID:           e.ID.String(),
			EmployeeCode: e.EmployeeCode,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Designation:  e.Designation,
			Status:       e.Status,
		}
	}
	return DepartmentResponse{
		ID:             dept.ID.String(),
		OrganizationID: dept.OrganizationID.String(),
		Name:           dept.Name,
		Description:    dept.Description,
		EmployeeCount:  len(employees),
		Employees:      employees,
		CreatedAt:      dept.CreatedAt,
		UpdatedAt:      dept.UpdatedAt,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
