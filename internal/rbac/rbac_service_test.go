package rbac

import (
	"context"
	"errors"
	"testing"

	rbacerrors "go-hrms/internal/rbac/errors"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/tenant"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository
	employeeRoles   map[string][]EmployeeRoleRow
	rolePermissions map[string][]RolePermissionRow
	loadErr         error

	findRoleFn   func(id string) (*Role, error)
	employeeSeen bool
	assigned     []EmployeeRole
	createRoleFn func(role *Role, ids []uuid.UUID) error
	permCount    int64
}

func (f *fakeRepo) GetEmployeeRoles(_ context.Context, scope tenant.Scope) ([]EmployeeRoleRow, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.employeeRoles[scope.String()], nil
}

func (f *fakeRepo) GetRolePermissions(_ context.Context, scope tenant.Scope) ([]RolePermissionRow, error) {
	return f.rolePermissions[scope.String()], nil
}

func (f *fakeRepo) FindRoleByID(_ context.Context, _ tenant.Scope, id string) (*Role, error) {
	return f.findRoleFn(id)
}

func (f *fakeRepo) EmployeeExists(context.Context, tenant.Scope, uuid.UUID) (bool, error) {
	return f.employeeSeen, nil
}

func (f *fakeRepo) AssignRole(_ context.Context, _ tenant.Scope, employeeID, roleID uuid.UUID) error {
	f.assigned = append(f.assigned, EmployeeRole{EmployeeID: employeeID, RoleID: roleID})
	return nil
}

func (f *fakeRepo) CountPermissions(context.Context, []uuid.UUID) (int64, error) {
	return f.permCount, nil
}

func (f *fakeRepo) CreateRole(_ context.Context, role *Role, ids []uuid.UUID) error {
	return f.createRoleFn(role, ids)
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return e
}

func mustScope(t *testing.T, id uuid.UUID) tenant.Scope {
	t.Helper()
	scope, err := tenant.New(id.String())
	assert.NoError(t, err)
	return scope
}

func TestService_Can(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()
	repo := &fakeRepo{
		employeeRoles: map[string][]EmployeeRoleRow{
			orgA.String(): {{EmployeeID: "emp-hr", RoleID: "role-hr"}, {EmployeeID: "emp-staff", RoleID: "role-staff"}},
			orgB.String(): {{EmployeeID: "emp-hr", RoleID: "role-viewer"}},
		},
		rolePermissions: map[string][]RolePermissionRow{
			orgA.String(): {
				{RoleID: "role-hr", Resource: "leave", Action: "approve"},
				{RoleID: "role-staff", Resource: "leave", Action: "read"},
			},
			orgB.String(): {{RoleID: "role-viewer", Resource: "employee", Action: "read"}},
		},
	}
	svc := NewService(repo, newTestEnforcer(t))
	ctx := context.Background()

	t.Run("elevated role may approve", func(t *testing.T) {
		allowed, err := svc.Can(ctx, mustScope(t, orgA), "emp-hr", "leave", "approve")

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("staff may not approve", func(t *testing.T) {
		allowed, err := svc.Can(ctx, mustScope(t, orgA), "emp-staff", "leave", "approve")

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("roles do not leak across organizations", func(t *testing.T) {
		allowed, err := svc.Can(ctx, mustScope(t, orgB), "emp-hr", "leave", "approve")

		assert.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = svc.Enforce(ctx, mustScope(t, orgB), EnforceRequest{EmployeeID: "emp-hr", Resource: "employee", Action: "read"})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative zero scope", func(t *testing.T) {
		_, err := svc.Can(ctx, tenant.Scope{}, "emp-hr", "leave", "approve")

		assert.ErrorIs(t, err, tenant.ErrUnscopedQuery)
	})

	t.Run("negative policy load failure", func(t *testing.T) {
		failing := NewService(&fakeRepo{loadErr: errors.New("db down")}, newTestEnforcer(t))

		allowed, err := failing.Can(ctx, mustScope(t, orgA), "emp-hr", "leave", "approve")

		assert.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestService_AssignRole(t *testing.T) {
	orgID := uuid.New()
	roleID := uuid.New()
	empID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			employeeSeen: true,
			findRoleFn:   func(string) (*Role, error) { return &Role{ID: roleID, OrganizationID: orgID}, nil },
		}
		svc := NewService(repo, newTestEnforcer(t))

		err := svc.AssignRole(context.Background(), mustScope(t, orgID), empID.String(), AssignRoleRequest{RoleID: roleID.String()})

		assert.NoError(t, err)
		assert.Equal(t, []EmployeeRole{{EmployeeID: empID, RoleID: roleID}}, repo.assigned)
	})

	t.Run("negative employee outside organization", func(t *testing.T) {
		svc := NewService(&fakeRepo{employeeSeen: false}, newTestEnforcer(t))

		err := svc.AssignRole(context.Background(), mustScope(t, orgID), empID.String(), AssignRoleRequest{RoleID: roleID.String()})

		assert.ErrorIs(t, err, rbacerrors.ErrEmployeeNotFound)
	})

	t.Run("negative role outside organization", func(t *testing.T) {
		repo := &fakeRepo{
			employeeSeen: true,
			findRoleFn:   func(string) (*Role, error) { return nil, gorm.ErrRecordNotFound },
		}
		svc := NewService(repo, newTestEnforcer(t))

		err := svc.AssignRole(context.Background(), mustScope(t, orgID), empID.String(), AssignRoleRequest{RoleID: roleID.String()})

		assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
	})
}

func TestService_CreateRole(t *testing.T) {
	orgID := uuid.New()
	permID := uuid.New()

	t.Run("success stamps organization", func(t *testing.T) {
		var saved *Role
		repo := &fakeRepo{
			permCount: 1,
			createRoleFn: func(role *Role, ids []uuid.UUID) error {
				saved = role
				assert.Equal(t, []uuid.UUID{permID}, ids)
				return nil
			},
		}
		svc := NewService(repo, newTestEnforcer(t))

		resp, err := svc.CreateRole(context.Background(), mustScope(t, orgID), CreateRoleRequest{
			Name:          "HR",
			PermissionIDs: []string{permID.String()},
		})

		assert.NoError(t, err)
		assert.Equal(t, "HR", resp.Name)
		assert.Equal(t, orgID, saved.OrganizationID)
	})

	t.Run("negative unknown permission", func(t *testing.T) {
		svc := NewService(&fakeRepo{permCount: 0}, newTestEnforcer(t))

		_, err := svc.CreateRole(context.Background(), mustScope(t, orgID), CreateRoleRequest{
			Name:          "HR",
			PermissionIDs: []string{permID.String()},
		})

		assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		repo := &fakeRepo{createRoleFn: func(*Role, []uuid.UUID) error { return gorm.ErrDuplicatedKey }}
		svc := NewService(repo, newTestEnforcer(t))

		_, err := svc.CreateRole(context.Background(), mustScope(t, orgID), CreateRoleRequest{Name: "HR"})

		assert.ErrorIs(t, err, rbacerrors.ErrRoleNameExists)
	})
}
