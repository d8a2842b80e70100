package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/cache"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const optionsCacheTTL = time.Hour

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, scope tenant.Scope, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, scope tenant.Scope) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, scope tenant.Scope) ([]EmployeeOption, error)
	GetByID(ctx context.Context, scope tenant.Scope, id string) (EmployeeResponse, error)
	Update(ctx context.Context, scope tenant.Scope, id string, patch EmployeePatch) (EmployeeResponse, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	scope tenant.Scope,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("department_id", req.DepartmentID),
	)

	if err := scope.Validate(); err != nil {
		return EmployeeResponse{}, err
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return EmployeeResponse{}, employeeerrors.ErrFirstNameRequired
	}
	joiningDate, err := time.Parse(dateLayout, req.JoiningDate)
	if err != nil {
		s.logger.Warn("create employee invalid joining_date",
			zap.String("joining_date", req.JoiningDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}
	if req.Salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}

	empl := &Employee{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		EmployeeCode:   strings.TrimSpace(req.EmployeeCode),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Designation:    strings.TrimSpace(req.Designation),
		Salary:         req.Salary,
		JoiningDate:    joiningDate,
		Status:         status,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		deptID, err := s.resolveDepartment(ctx, qtx, scope, req.DepartmentID)
		if err != nil {
			return err
		}
		managerID, err := s.resolveManager(ctx, qtx, scope, empl.ID.String(), req.ManagerID)
		if err != nil {
			return err
		}
		empl.DepartmentID = deptID
		empl.ManagerID = managerID

		if empl.EmployeeCode == "" {
			next, err := s.counter.WithTx(tx).GetNextValue(ctx, scope, counter.EmployeeCode)
			if err != nil {
				s.logger.Error("create employee generate code failed", zap.Error(err))
				return err
			}
			empl.EmployeeCode = fmt.Sprintf("EMP-%06d", next)
		}

		if err := qtx.Create(ctx, empl); err != nil {
			s.logger.Error("create employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		if s.outbox == nil {
			return nil
		}
		event := events.EmployeeCreatedEvent{
			EventType:      events.EmployeeCreatedType,
			RequestID:      rid,
			EmployeeID:     empl.ID.String(),
			OrganizationID: scope.String(),
			EmployeeCode:   empl.EmployeeCode,
			DepartmentID:   uuidString(empl.DepartmentID),
			OccurredAt:     s.now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(), event.EventType, events.EmployeeLifecycleTopic, event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidate(ctx, scope)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, scope tenant.Scope) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("organization_id", scope.String()))

	empls, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, scope tenant.Scope) ([]EmployeeOption, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	cacheKey := cache.EmployeeOptionsKey(scope.String())
	var cached []EmployeeOption
	if cache.GetJSON(ctx, s.rdb, cacheKey, &cached) {
		return cached, nil
	}

	// Concurrent misses for one organization share a single query.
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		empls, err := s.repo.FindOptions(ctx, scope)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		opts := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			opts[i] = EmployeeOption{ID: e.ID.String(), EmployeeCode: e.EmployeeCode, FullName: e.FullName()}
		}
		cache.SetJSON(ctx, s.rdb, cacheKey, opts, optionsCacheTTL)
		return opts, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, scope tenant.Scope, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	patch EmployeePatch,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	var updated Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByID(ctx, scope, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		if err := s.applyPatch(ctx, qtx, scope, empl, patch); err != nil {
			return err
		}
		empl.UpdatedAt = s.now().UTC()

		if err := qtx.Update(ctx, scope, empl); err != nil {
			s.logger.Error("update employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		updated = *empl
		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidate(ctx, scope)
	s.logger.Info("update employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return mapToResponse(updated), nil
}

func (s *service) applyPatch(ctx context.Context, qtx Repository, scope tenant.Scope, empl *Employee, patch EmployeePatch) error {
	if patch.FirstName != nil {
		name := strings.TrimSpace(*patch.FirstName)
		if name == "" {
			return employeeerrors.ErrFirstNameRequired
		}
		empl.FirstName = name
	}
	if patch.LastName != nil {
		empl.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		empl.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		empl.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Designation != nil {
		empl.Designation = strings.TrimSpace(*patch.Designation)
	}
	if patch.Salary != nil {
		if patch.Salary.IsNegative() {
			return employeeerrors.ErrNegativeSalary
		}
		empl.Salary = *patch.Salary
	}
	if patch.JoiningDate != nil {
		d, err := time.Parse(dateLayout, *patch.JoiningDate)
		if err != nil {
			return employeeerrors.ErrInvalidJoiningDate
		}
		empl.JoiningDate = d
	}
	if patch.Status != nil {
		if !ValidStatus(*patch.Status) {
			return employeeerrors.ErrInvalidStatus
		}
		empl.Status = *patch.Status
	}
	if patch.DepartmentID != nil {
		deptID, err := s.resolveDepartment(ctx, qtx, scope, *patch.DepartmentID)
		if err != nil {
			return err
		}
		empl.DepartmentID = deptID
		empl.Department = nil
	}
	if patch.ManagerID != nil {
		managerID, err := s.resolveManager(ctx, qtx, scope, empl.ID.String(), *patch.ManagerID)
		if err != nil {
			return err
		}
		empl.ManagerID = managerID
		empl.Manager = nil
	}
	return nil
}

// resolveDepartment returns nil for an empty id, otherwise the id after checking
// it belongs to the caller's organization.
func (s *service) resolveDepartment(ctx context.Context, qtx Repository, scope tenant.Scope, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, employeeerrors.ErrDepartmentNotInOrg
	}
	ok, err := qtx.DepartmentExists(ctx, scope, raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("department not found in organization",
			zap.String("organization_id", scope.String()),
			zap.String("department_id", raw),
		)
		return nil, employeeerrors.ErrDepartmentNotInOrg
	}
	return &id, nil
}

func (s *service) resolveManager(ctx context.Context, qtx Repository, scope tenant.Scope, employeeID, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if raw == employeeID {
		return nil, employeeerrors.ErrSelfManager
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, employeeerrors.ErrManagerNotInOrg
	}
	ok, err := qtx.Exists(ctx, scope, raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, employeeerrors.ErrManagerNotInOrg
	}
	return &id, nil
}

func (s *service) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, scope, id); err != nil {
			return mapRepositoryError(err)
		}
		affected, err := qtx.Delete(ctx, scope, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if affected == 0 {
			return employeeerrors.ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidate(ctx, scope)
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return nil
}

// invalidate drops the option list and the department list, which embeds employees.
func (s *service) invalidate(ctx context.Context, scope tenant.Scope) {
	cache.Invalidate(ctx, s.rdb,
		cache.EmployeeOptionsKey(scope.String()),
		cache.DepartmentsKey(scope.String()),
	)
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		OrganizationID: empl.OrganizationID.String(),
		EmployeeCode:   empl.EmployeeCode,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		FullName:       empl.FullName(),
		Email:          empl.Email,
		Phone:          empl.Phone,
		Designation:    empl.Designation,
		Salary:         empl.Salary,
		JoiningDate:    empl.JoiningDate.Format(dateLayout),
		Status:         empl.Status,
		DepartmentID:   uuidString(empl.DepartmentID),
		ManagerID:      uuidString(empl.ManagerID),
		CreatedAt:      empl.CreatedAt,
		UpdatedAt:      empl.UpdatedAt,
	}
	if empl.Department != nil {
		resp.Department = &DepartmentSummary{ID: empl.Department.ID.String(), Name: empl.Department.Name}
	}
	if empl.Manager != nil {
		m := Employee{FirstName: empl.Manager.FirstName, LastName: empl.Manager.LastName}
		resp.Manager = &ManagerSummary{
			ID:           empl.Manager.ID.String(),
			EmployeeCode: empl.Manager.EmployeeCode,
			FullName:     m.FullName(),
		}
	}
	if empl.Account != nil {
		resp.Account = &AccountSummary{
			Email:    empl.Account.Email,
			Role:     empl.Account.Role,
			IsActive: empl.Account.IsActive,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
