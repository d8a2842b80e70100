package rbac

import (
	"context"
	"errors"
	"sync"

	rbacerrors "go-hrms/internal/rbac/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadOrganizationPolicy(ctx context.Context, scope tenant.Scope) error
	Enforce(ctx context.Context, scope tenant.Scope, req EnforceRequest) (bool, error)
	Can(ctx context.Context, scope tenant.Scope, employeeID, resource, action string) (bool, error)

	ListRoles(ctx context.Context, scope tenant.Scope) ([]RoleResponse, error)
	CreateRole(ctx context.Context, scope tenant.Scope, req CreateRoleRequest) (RoleResponse, error)
	AssignRole(ctx context.Context, scope tenant.Scope, employeeID string, req AssignRoleRequest) error
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	SeedPermissions(ctx context.Context) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadOrganizationPolicy(ctx context.Context, scope tenant.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked(ctx, scope)
}

// loadPolicyUnlocked replaces the enforcer's policy with the organization's rows.
// The enforcer only ever holds a single organization at a time.
func (s *service) loadPolicyUnlocked(ctx context.Context, scope tenant.Scope) error {
	s.enforcer.ClearPolicy()
	domain := scope.String()

	employeeRoles, err := s.repo.GetEmployeeRoles(ctx, scope)
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, domain); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(ctx, scope)
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, domain, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("organization_id", domain),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(ctx context.Context, scope tenant.Scope, req EnforceRequest) (bool, error) {
	return s.Can(ctx, scope, req.EmployeeID, req.Resource, req.Action)
}

func (s *service) Can(ctx context.Context, scope tenant.Scope, employeeID, resource, action string) (bool, error) {
	if err := scope.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadPolicyUnlocked(ctx, scope); err != nil {
		s.logger.Error("rbac load policy failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("organization_id", scope.String()),
			zap.Error(err),
		)
		return false, err
	}

	allowed, err := s.enforcer.Enforce(employeeID, scope.String(), resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed", zap.Error(err))
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employeeID),
		zap.String("organization_id", scope.String()),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context, scope tenant.Scope) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx, scope)
	if err != nil {
		s.logger.Error("list roles failed", zap.Error(err))
		return nil, err
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		resp = append(resp, mapRoleToResponse(r))
	}
	return resp, nil
}

func (s *service) CreateRole(ctx context.Context, scope tenant.Scope, req CreateRoleRequest) (RoleResponse, error) {
	s.logger.Debug("create role requested",
		zap.String("organization_id", scope.String()),
		zap.String("name", req.Name),
	)

	permIDs := make([]uuid.UUID, 0, len(req.PermissionIDs))
	for _, raw := range req.PermissionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return RoleResponse{}, rbacerrors.ErrUnknownPermission
		}
		permIDs = append(permIDs, id)
	}

	if len(permIDs) > 0 {
		count, err := s.repo.CountPermissions(ctx, permIDs)
		if err != nil {
			s.logger.Error("create role count permissions failed", zap.Error(err))
			return RoleResponse{}, err
		}
		if count != int64(len(permIDs)) {
			s.logger.Warn("create role unknown permission", zap.Strings("permission_ids", req.PermissionIDs))
			return RoleResponse{}, rbacerrors.ErrUnknownPermission
		}
	}

	role := &Role{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		Name:           req.Name,
		Description:    req.Description,
	}
	if err := s.repo.CreateRole(ctx, role, permIDs); err != nil {
		if apperror.IsUniqueViolation(err) {
			return RoleResponse{}, rbacerrors.ErrRoleNameExists
		}
		s.logger.Error("create role persist failed", zap.Error(err))
		return RoleResponse{}, err
	}

	s.logger.Info("create role success", zap.String("role_id", role.ID.String()))
	return mapRoleToResponse(*role), nil
}

func (s *service) AssignRole(ctx context.Context, scope tenant.Scope, employeeID string, req AssignRoleRequest) error {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return rbacerrors.ErrEmployeeNotFound
	}

	exists, err := s.repo.EmployeeExists(ctx, scope, empID)
	if err != nil {
		return err
	}
	if !exists {
		return rbacerrors.ErrEmployeeNotFound
	}

	role, err := s.repo.FindRoleByID(ctx, scope, req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}

	if err := s.repo.AssignRole(ctx, scope, empID, role.ID); err != nil {
		s.logger.Error("assign role failed", zap.Error(err))
		return err
	}

	s.logger.Info("assign role success",
		zap.String("employee_id", employeeID),
		zap.String("role_id", role.ID.String()),
	)
	return nil
}

func (s *service) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		resp = append(resp, PermissionResponse{
			ID:       p.ID.String(),
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return resp, nil
}

func (s *service) SeedPermissions(ctx context.Context) error {
	if err := s.repo.SeedPermissions(ctx, DefaultPermissions); err != nil {
		s.logger.Error("seed permissions failed", zap.Error(err))
		return err
	}
	return nil
}

func mapRoleToResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
	}
}
