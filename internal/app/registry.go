package app

import (
	"context"

	"go-hrms/internal/attendance"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/organization"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	api *gin.RouterGroup,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(db)
	organizationRepo := organization.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	userRepo := user.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.SeedPermissions(ctx); err != nil {
		return err
	}

	// --- Services ---
	organizationService := organization.NewService(db, organizationRepo, organization.DashboardSources{
		Employees:   employeeRepo,
		Departments: departmentRepo,
		Attendance:  attendanceRepo,
		Leaves:      leaveRepo,
	})
	departmentService := department.NewService(db, departmentRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	userService := user.NewService(db, userRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)

	// --- Handlers ---
	organizationHandler := organization.NewHandler(organizationService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService, rbacService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	organization.RegisterRoutes(api, organizationHandler, rbacService)
	department.RegisterRoutes(api, departmentHandler, rbacService)
	employee.RegisterRoutes(api, employeeHandler, rbacService)
	user.RegisterRoutes(api, userHandler, rbacService)
	leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	attendance.RegisterRoutes(api, attendanceHandler)
	rbac.RegisterRoutes(api, rbacHandler, rbacService)

	return nil
}
