package rbac

import (
	"context"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(ctx context.Context, scope tenant.Scope) ([]EmployeeRoleRow, error)
	GetRolePermissions(ctx context.Context, scope tenant.Scope) ([]RolePermissionRow, error)

	ListRoles(ctx context.Context, scope tenant.Scope) ([]Role, error)
	FindRoleByID(ctx context.Context, scope tenant.Scope, id string) (*Role, error)
	CreateRole(ctx context.Context, role *Role, permissionIDs []uuid.UUID) error
	AssignRole(ctx context.Context, scope tenant.Scope, employeeID, roleID uuid.UUID) error
	EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID uuid.UUID) (bool, error)

	ListPermissions(ctx context.Context) ([]Permission, error)
	CountPermissions(ctx context.Context, ids []uuid.UUID) (int64, error)
	SeedPermissions(ctx context.Context, perms []Permission) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetEmployeeRoles(ctx context.Context, scope tenant.Scope) ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow

	err := r.db.WithContext(ctx).
		Table("employee_roles").
		Select("employee_roles.employee_id, employee_roles.role_id").
		Joins("JOIN roles ON roles.id = employee_roles.role_id").
		Scopes(scope.On("roles")).
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions(ctx context.Context, scope tenant.Scope) ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.WithContext(ctx).
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Scopes(scope.On("roles")).
		Scan(&result).Error

	return result, err
}

func (r *repository) ListRoles(ctx context.Context, scope tenant.Scope) ([]Role, error) {
	var result []Role
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Order("name ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) FindRoleByID(ctx context.Context, scope tenant.Scope, id string) (*Role, error) {
	var result Role
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role, permissionIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}

		links := make([]RolePermission, 0, len(permissionIDs))
		for _, pID := range permissionIDs {
			links = append(links, RolePermission{RoleID: role.ID, PermissionID: pID})
		}
		return tx.Create(&links).Error
	})
}

func (r *repository) AssignRole(ctx context.Context, scope tenant.Scope, employeeID, roleID uuid.UUID) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&EmployeeRole{EmployeeID: employeeID, RoleID: roleID}).Error
}

func (r *repository) EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(scope.Apply).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var result []Permission
	err := r.db.WithContext(ctx).Order("category, label").Find(&result).Error
	return result, err
}

func (r *repository) CountPermissions(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Permission{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

// SeedPermissions inserts the catalogue entries that are not present yet.
func (r *repository) SeedPermissions(ctx context.Context, perms []Permission) error {
	if len(perms) == 0 {
		return nil
	}
	rows := make([]Permission, len(perms))
	for i, p := range perms {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		rows[i] = p
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource"}, {Name: "action"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}
