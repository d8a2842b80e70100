package app

import (
	"go-hrms/internal/attendance"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/organization"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"gorm.io/gorm"
)

// models lists the owning struct of every table. Reference structs that map
// onto the same tables (employee refs, account refs) are left out so they
// never alter columns.
func models() []any {
	return []any{
		&organization.Organization{},
		&department.Department{},
		&employee.Employee{},
		&user.User{},
		&leave.LeaveType{},
		&leave.LeaveRequest{},
		&attendance.Attendance{},
		&rbac.Role{},
		&rbac.Permission{},
		&rbac.RolePermission{},
		&rbac.EmployeeRole{},
		&counter.OrganizationCounter{},
		&kafka.OutboxEvent{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}
