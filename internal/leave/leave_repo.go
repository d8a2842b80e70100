package leave

import (
	"context"
	"time"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateLeaveType(ctx context.Context, lt *LeaveType) error
	FindLeaveTypes(ctx context.Context, scope tenant.Scope) ([]LeaveType, error)
	LeaveTypeExists(ctx context.Context, scope tenant.Scope, id string) (bool, error)
	EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error)
	Create(ctx context.Context, lr *LeaveRequest) error
	FindAll(ctx context.Context, scope tenant.Scope, status string) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]LeaveRequest, error)
	FindPending(ctx context.Context, scope tenant.Scope) ([]LeaveRequest, error)
	FindByID(ctx context.Context, scope tenant.Scope, id string) (*LeaveRequest, error)
	FindByIDForEmployee(ctx context.Context, scope tenant.Scope, id, employeeID string) (*LeaveRequest, error)
	Transition(ctx context.Context, scope tenant.Scope, id uuid.UUID, status string, approverID *uuid.UUID, at time.Time) (int64, error)
	CountPending(ctx context.Context, scope tenant.Scope) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateLeaveType(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindLeaveTypes(ctx context.Context, scope tenant.Scope) ([]LeaveType, error) {
	types := make([]LeaveType, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) LeaveTypeExists(ctx context.Context, scope tenant.Scope, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Scopes(scope.Apply).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveEmployee{}).
		Scopes(scope.Apply).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lr).Error
}

// scoped reaches the tenant through the owning employee.
func (r *repository) scoped(ctx context.Context, scope tenant.Scope) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Scopes(scope.On("employees"))
}

func (r *repository) withRelations(ctx context.Context, scope tenant.Scope) *gorm.DB {
	return r.scoped(ctx, scope).
		Preload("LeaveType").
		Preload("Employee")
}

func (r *repository) FindAll(ctx context.Context, scope tenant.Scope, status string) ([]LeaveRequest, error) {
	q := r.withRelations(ctx, scope)
	if status != "" {
		q = q.Where("leave_requests.status = ?", status)
	}

	requests := make([]LeaveRequest, 0)
	err := q.Order("leave_requests.created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]LeaveRequest, error) {
	requests := make([]LeaveRequest, 0)
	err := r.withRelations(ctx, scope).
		Where("leave_requests.employee_id = ?", employeeID).
		Order("leave_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPending(ctx context.Context, scope tenant.Scope) ([]LeaveRequest, error) {
	requests := make([]LeaveRequest, 0)
	err := r.withRelations(ctx, scope).
		Where("leave_requests.status = ?", StatusPending).
		Order("leave_requests.created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, scope tenant.Scope, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.withRelations(ctx, scope).First(&lr, "leave_requests.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// FindByIDForEmployee only matches a request filed by employeeID.
func (r *repository) FindByIDForEmployee(ctx context.Context, scope tenant.Scope, id, employeeID string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.withRelations(ctx, scope).
		Where("leave_requests.employee_id = ?", employeeID).
		First(&lr, "leave_requests.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// Transition moves a PENDING request to status. A request that is no longer
// PENDING, or belongs to another organization, is left untouched and reported
// as zero affected rows.
func (r *repository) Transition(
	ctx context.Context,
	scope tenant.Scope,
	id uuid.UUID,
	status string,
	approverID *uuid.UUID,
	at time.Time,
) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	owners := r.db.Model(&LeaveEmployee{}).
		Select("id").
		Where("organization_id = ?", scope.OrganizationID())

	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Where("employee_id IN (?)", owners).
		Updates(map[string]any{
			"status":      status,
			"approver_id": approverID,
			"decided_at":  at,
			"updated_at":  at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CountPending(ctx context.Context, scope tenant.Scope) (int64, error) {
	var count int64
	err := r.scoped(ctx, scope).
		Where("leave_requests.status = ?", StatusPending).
		Count(&count).Error
	return count, err
}
