package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock-ins after 09:15 UTC are LATE.
const (
	lateHour   = 9
	lateMinute = 15
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, scope tenant.Scope, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, scope tenant.Scope, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, scope tenant.Scope, actorID string, canReadAll bool) ([]AttendanceResponse, error)
	CountOnDate(ctx context.Context, scope tenant.Scope, date time.Time) (int64, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, scope tenant.Scope, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := scope.Validate(); err != nil {
		return AttendanceResponse{}, err
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	now := s.now().UTC()
	today := day(now)

	status := StatusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = StatusLate
	}
	source := strings.ToUpper(strings.TrimSpace(req.Source))
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		EmployeeID:     empID,
		AttendanceDate: today,
		ClockIn:        now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		ok, err := qtx.EmployeeExists(ctx, scope, employeeID)
		if err != nil {
			return err
		}
		if !ok {
			return attendanceerrors.ErrEmployeeNotFound
		}

		_, err = qtx.FindByEmployeeAndDate(ctx, scope, employeeID, today)
		switch {
		case err == nil:
			return attendanceerrors.ErrAlreadyClockedIn
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := qtx.Create(ctx, row); err != nil {
			// Two clock-ins racing past the lookup.
			if apperror.IsUniqueViolation(err) {
				return attendanceerrors.ErrAlreadyClockedIn
			}
			return err
		}
		return nil
	})
	if err != nil {
		l.Warn("clock in failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	l.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, scope tenant.Scope, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := scope.Validate(); err != nil {
		return AttendanceResponse{}, err
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}

	now := s.now().UTC()

	var row *Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		row, err = qtx.FindByEmployeeAndDate(ctx, scope, employeeID, day(now))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrNotClockedIn
			}
			return err
		}
		if row.ClockOut != nil {
			return attendanceerrors.ErrAlreadyClockedOut
		}

		row.ClockOut = &now
		row.UpdatedAt = now
		if req.Latitude != nil {
			row.Latitude = req.Latitude
		}
		if req.Longitude != nil {
			row.Longitude = req.Longitude
		}
		if req.Notes != nil {
			row.Notes = req.Notes
		}
		return qtx.UpdateClockOut(ctx, scope, row)
	})
	if err != nil {
		l.Warn("clock out failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	l.Info("clock out success", zap.String("employee_id", employeeID))
	return mapToResponse(*row), nil
}

// GetAll returns the whole organization's records for callers holding
// attendance:read_all and only the caller's own records otherwise.
func (s *service) GetAll(ctx context.Context, scope tenant.Scope, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx, scope)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return []AttendanceResponse{}, nil
		}
		rows, err = s.repo.FindByEmployee(ctx, scope, actorID)
	}
	if err != nil {
		s.logger.Error("get attendance failed", zap.Bool("read_all", canReadAll), zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) CountOnDate(ctx context.Context, scope tenant.Scope, date time.Time) (int64, error) {
	return s.repo.CountOnDate(ctx, scope, date)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if a.Employee != nil {
		resp.EmployeeCode = a.Employee.EmployeeCode
		resp.EmployeeName = strings.TrimSpace(a.Employee.FirstName + " " + a.Employee.LastName)
	}
	return resp
}
