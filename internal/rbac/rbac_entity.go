package rbac

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roles_org_name"`
	Name           string    `gorm:"not null;uniqueIndex:idx_roles_org_name"`
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource string    `gorm:"not null;uniqueIndex:idx_permissions_resource_action"`
	Action   string    `gorm:"not null;uniqueIndex:idx_permissions_resource_action"`
	Label    string
	Category string
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

// Catalogue of permissions checked by the route guards.
var DefaultPermissions = []Permission{
	{Resource: "organization", Action: "read", Label: "View organization", Category: "organization"},
	{Resource: "organization", Action: "update", Label: "Update organization", Category: "organization"},
	{Resource: "department", Action: "read", Label: "View departments", Category: "department"},
	{Resource: "department", Action: "create", Label: "Create departments", Category: "department"},
	{Resource: "department", Action: "update", Label: "Update departments", Category: "department"},
	{Resource: "department", Action: "delete", Label: "Delete departments", Category: "department"},
	{Resource: "employee", Action: "read", Label: "View employees", Category: "employee"},
	{Resource: "employee", Action: "create", Label: "Create employees", Category: "employee"},
	{Resource: "employee", Action: "update", Label: "Update employees", Category: "employee"},
	{Resource: "employee", Action: "delete", Label: "Delete employees", Category: "employee"},
	{Resource: "employee", Action: "manage_account", Label: "Manage employee accounts", Category: "employee"},
	{Resource: "leave", Action: "read", Label: "View all leave requests", Category: "leave"},
	{Resource: "leave", Action: "create", Label: "File leave on behalf of employees", Category: "leave"},
	{Resource: "leave", Action: "approve", Label: "Approve or reject leave", Category: "leave"},
	{Resource: "leave", Action: "manage", Label: "Review the pending leave queue", Category: "leave"},
	{Resource: "leave_type", Action: "create", Label: "Create leave types", Category: "leave"},
	{Resource: "attendance", Action: "read_all", Label: "View everyone's attendance", Category: "attendance"},
	{Resource: "role", Action: "read", Label: "View roles", Category: "rbac"},
	{Resource: "role", Action: "manage", Label: "Manage roles", Category: "rbac"},
}
