package organization

import (
	"context"
	"math"
	"strings"
	"time"

	organizationerrors "go-hrms/internal/organization/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const StatusActive = "ACTIVE"

type EmployeeCounter interface {
	CountAll(ctx context.Context, scope tenant.Scope) (int64, error)
	CountByStatus(ctx context.Context, scope tenant.Scope, status string) (int64, error)
}

type DepartmentCounter interface {
	Count(ctx context.Context, scope tenant.Scope) (int64, error)
}

type AttendanceCounter interface {
	CountOnDate(ctx context.Context, scope tenant.Scope, date time.Time) (int64, error)
}

type LeaveCounter interface {
	CountPending(ctx context.Context, scope tenant.Scope) (int64, error)
}

// DashboardSources are the read-only aggregates behind the dashboard.
type DashboardSources struct {
	Employees   EmployeeCounter
	Departments DepartmentCounter
	Attendance  AttendanceCounter
	Leaves      LeaveCounter
}

//go:generate mockgen -source=organization_service.go -destination=mock/organization_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, scope tenant.Scope) (OrganizationResponse, error)
	Update(ctx context.Context, scope tenant.Scope, patch OrganizationPatch) (OrganizationResponse, error)
	GetDashboardStats(ctx context.Context, scope tenant.Scope) (DashboardStats, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	sources DashboardSources
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, sources DashboardSources, logger ...*zap.Logger) Service {
	l := zap.L().Named("organization.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("organization.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		sources: sources,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Get(ctx context.Context, scope tenant.Scope) (OrganizationResponse, error) {
	s.logger.Debug("get organization requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("organization_id", scope.String()),
	)

	org, err := s.repo.FindByScope(ctx, scope)
	if err != nil {
		s.logger.Warn("get organization failed", zap.Error(err))
		return OrganizationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*org), nil
}

func (s *service) Update(ctx context.Context, scope tenant.Scope, patch OrganizationPatch) (OrganizationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update organization requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
	)

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		s.logger.Warn("update organization empty name", zap.String("request_id", rid))
		return OrganizationResponse{}, organizationerrors.ErrNameRequired
	}

	var updated Organization
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		org, err := qtx.FindByScope(ctx, scope)
		if err != nil {
			return mapRepositoryError(err)
		}

		if patch.Name != nil {
			org.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.LogoURL != nil {
			org.LogoURL = strings.TrimSpace(*patch.LogoURL)
		}
		org.UpdatedAt = s.now().UTC()

		if err := qtx.Update(ctx, org); err != nil {
			return err
		}
		updated = *org
		return nil
	})
	if err != nil {
		s.logger.Error("update organization failed", zap.String("request_id", rid), zap.Error(err))
		return OrganizationResponse{}, err
	}

	s.logger.Info("update organization success", zap.String("request_id", rid))
	return mapToResponse(updated), nil
}

// GetDashboardStats runs the five counts concurrently. The first failure cancels
// the others and fails the whole aggregate.
func (s *service) GetDashboardStats(ctx context.Context, scope tenant.Scope) (DashboardStats, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("get dashboard stats requested",
		zap.String("request_id", rid),
		zap.String("organization_id", scope.String()),
	)

	if err := scope.Validate(); err != nil {
		return DashboardStats{}, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalEmployees, err = s.sources.Employees.CountAll(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveEmployees, err = s.sources.Employees.CountByStatus(gctx, scope, StatusActive)
		return err
	})
	g.Go(func() (err error) {
		stats.Departments, err = s.sources.Departments.Count(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		stats.TodayAttendance, err = s.sources.Attendance.CountOnDate(gctx, scope, today)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingLeaves, err = s.sources.Leaves.CountPending(gctx, scope)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("get dashboard stats failed", zap.String("request_id", rid), zap.Error(err))
		return DashboardStats{}, err
	}

	stats.AttendancePercentage = attendancePercentage(stats.TotalEmployees, stats.ActiveEmployees, stats.TodayAttendance)

	s.logger.Info("get dashboard stats success",
		zap.String("request_id", rid),
		zap.Int64("total_employees", stats.TotalEmployees),
		zap.Int64("attendance_percentage", stats.AttendancePercentage),
	)
	return stats, nil
}

// attendancePercentage is zero whenever there is nobody to divide by, including
// organizations that have employees but none ACTIVE.
func attendancePercentage(total, active, present int64) int64 {
	if total == 0 || active == 0 {
		return 0
	}
	return int64(math.Round(float64(present) / float64(active) * 100))
}

func mapToResponse(o Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID.String(),
		Name:      o.Name,
		LogoURL:   o.LogoURL,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
