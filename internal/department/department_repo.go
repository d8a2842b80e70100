package department

import (
	"context"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, scope tenant.Scope) ([]Department, error)
	FindByID(ctx context.Context, scope tenant.Scope, id string) (*Department, error)
	Update(ctx context.Context, scope tenant.Scope, dept *Department) error
	CountEmployees(ctx context.Context, scope tenant.Scope, id string) (int64, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) (int64, error)
	Count(ctx context.Context, scope tenant.Scope) (int64, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Omit("Employees").Create(dept).Error
}

func preloadEmployees(db *gorm.DB) *gorm.DB {
	return db.Order("first_name ASC, last_name ASC")
}

func (r *repository) FindAll(ctx context.Context, scope tenant.Scope) ([]Department, error) {
	depts := make([]Department, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Preload("Employees", preloadEmployees).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, scope tenant.Scope, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Preload("Employees", preloadEmployees).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, scope tenant.Scope, dept *Department) error {
	return r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(scope.Apply).
		Where("id = ?", dept.ID).
		Updates(map[string]any{
			"name":        dept.Name,
			"description": dept.Description,
			"updated_at":  dept.UpdatedAt,
		}).Error
}

func (r *repository) CountEmployees(ctx context.Context, scope tenant.Scope, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Scopes(scope.Apply).
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, scope tenant.Scope, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Delete(&Department{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) Count(ctx context.Context, scope tenant.Scope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(scope.Apply).
		Count(&count).Error
	return count, err
}
