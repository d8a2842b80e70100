package employee

import (
	"context"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, scope tenant.Scope) ([]Employee, error)
	FindOptions(ctx context.Context, scope tenant.Scope) ([]Employee, error)
	FindByID(ctx context.Context, scope tenant.Scope, id string) (*Employee, error)
	Update(ctx context.Context, scope tenant.Scope, empl *Employee) error
	Delete(ctx context.Context, scope tenant.Scope, id string) (int64, error)
	DepartmentExists(ctx context.Context, scope tenant.Scope, departmentID string) (bool, error)
	Exists(ctx context.Context, scope tenant.Scope, id string) (bool, error)
	CountAll(ctx context.Context, scope tenant.Scope) (int64, error)
	CountByStatus(ctx context.Context, scope tenant.Scope, status string) (int64, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) withRelations(ctx context.Context, scope tenant.Scope) *gorm.DB {
	return r.db.WithContext(ctx).
		Scopes(scope.On("employees")).
		Preload("Department").
		Preload("Manager").
		Preload("Account")
}

func (r *repository) FindAll(ctx context.Context, scope tenant.Scope) ([]Employee, error) {
	empls := make([]Employee, 0)
	err := r.withRelations(ctx, scope).
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptions(ctx context.Context, scope tenant.Scope) ([]Employee, error) {
	empls := make([]Employee, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Select("id", "employee_code", "first_name", "last_name").
		Where("status <> ?", StatusTerminated).
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, scope tenant.Scope, id string) (*Employee, error) {
	var empl Employee
	err := r.withRelations(ctx, scope).First(&empl, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// Update writes the mutable columns only; organization and employee code are fixed at creation.
func (r *repository) Update(ctx context.Context, scope tenant.Scope, empl *Employee) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(scope.Apply).
		Where("id = ?", empl.ID).
		Updates(map[string]any{
			"first_name":    empl.FirstName,
			"last_name":     empl.LastName,
			"email":         empl.Email,
			"phone":         empl.Phone,
			"designation":   empl.Designation,
			"salary":        empl.Salary,
			"joining_date":  empl.JoiningDate,
			"status":        empl.Status,
			"department_id": empl.DepartmentID,
			"manager_id":    empl.ManagerID,
			"updated_at":    empl.UpdatedAt,
		}).Error
}

func (r *repository) Delete(ctx context.Context, scope tenant.Scope, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DepartmentExists(ctx context.Context, scope tenant.Scope, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DepartmentRef{}).
		Scopes(scope.Apply).
		Where("id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Exists(ctx context.Context, scope tenant.Scope, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(scope.Apply).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountAll(ctx context.Context, scope tenant.Scope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(scope.Apply).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, scope tenant.Scope, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(scope.Apply).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
