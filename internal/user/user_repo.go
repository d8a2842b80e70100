package user

import (
	"context"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) (*User, error)
	EmployeeInScope(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	SetActive(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (int64, error)
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (r *repository) FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Preload("Employee").
		First(&u, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) EmployeeInScope(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserEmployee{}).
		Scopes(scope.Apply).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// EmailTaken is global: an email identifies one account across all organizations.
func (r *repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SetActive(ctx context.Context, scope tenant.Scope, employeeID string, active bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Scopes(scope.Apply).
		Where("employee_id = ?", employeeID).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}
