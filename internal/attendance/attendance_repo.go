package attendance

import (
	"context"
	"time"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, scope tenant.Scope, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, scope tenant.Scope) ([]Attendance, error)
	FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]Attendance, error)
	UpdateClockOut(ctx context.Context, scope tenant.Scope, a *Attendance) error
	EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error)
	CountOnDate(ctx context.Context, scope tenant.Scope, date time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, scope tenant.Scope, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", day(date)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, scope tenant.Scope) ([]Attendance, error) {
	rows := make([]Attendance, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Preload("Employee").
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]Attendance, error) {
	rows := make([]Attendance, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.Apply).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateClockOut(ctx context.Context, scope tenant.Scope, a *Attendance) error {
	return r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(scope.Apply).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"clock_out":  a.ClockOut,
			"latitude":   a.Latitude,
			"longitude":  a.Longitude,
			"notes":      a.Notes,
			"updated_at": a.UpdatedAt,
		}).Error
}

func (r *repository) EmployeeExists(ctx context.Context, scope tenant.Scope, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Scopes(scope.Apply).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountOnDate(ctx context.Context, scope tenant.Scope, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(scope.Apply).
		Where("attendance_date = ?", day(date)).
		Count(&count).Error
	return count, err
}

// day normalises t to midnight UTC, the value stored in attendance_date.
func day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
