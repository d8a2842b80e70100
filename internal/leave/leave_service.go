package leave

import (
	"context"
	"strings"
	"time"

	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateLeaveType(ctx context.Context, scope tenant.Scope, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetLeaveTypes(ctx context.Context, scope tenant.Scope) ([]LeaveTypeResponse, error)
	CreateRequest(ctx context.Context, scope tenant.Scope, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]LeaveResponse, error)
	GetPendingRequests(ctx context.Context, scope tenant.Scope) ([]LeaveResponse, error)
	GetAll(ctx context.Context, scope tenant.Scope, status *string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, scope tenant.Scope, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, scope tenant.Scope, id, approverID string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	CancelRequest(ctx context.Context, scope tenant.Scope, id, employeeID string) (LeaveResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, now: time.Now, logger: l}
}

func (s *service) CreateLeaveType(ctx context.Context, scope tenant.Scope, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("organization_id", scope.String()),
		zap.String("name", req.Name),
	)

	if err := scope.Validate(); err != nil {
		return LeaveTypeResponse{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return LeaveTypeResponse{}, leaveerrors.ErrNameRequired
	}
	if req.DaysAllowed < 0 {
		return LeaveTypeResponse{}, leaveerrors.ErrNegativeDaysAllowed
	}

	lt := &LeaveType{
		ID:             uuid.New(),
		OrganizationID: scope.OrganizationID(),
		Name:           name,
		DaysAllowed:    req.DaysAllowed,
		CarryForward:   req.CarryForward,
		IsPaid:         req.IsPaid,
	}
	if err := s.repo.CreateLeaveType(ctx, lt); err != nil {
		s.logger.Warn("create leave type failed", zap.String("name", name), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()))
	return mapToLeaveTypeResponse(*lt), nil
}

func (s *service) GetLeaveTypes(ctx context.Context, scope tenant.Scope) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindLeaveTypes(ctx, scope)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToLeaveTypeResponse(lt)
	}
	return resp, nil
}

func (s *service) CreateRequest(
	ctx context.Context,
	scope tenant.Scope,
	employeeID string,
	req CreateLeaveRequest,
) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create leave request requested",
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if err := scope.Validate(); err != nil {
		return LeaveResponse{}, err
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	// Ownership is checked before the payload so a foreign employee is always NotFound.
	var lr *LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		ok, err := qtx.EmployeeExists(ctx, scope, employeeID)
		if err != nil {
			return err
		}
		if !ok {
			return leaveerrors.ErrEmployeeNotFound
		}

		ok, err = qtx.LeaveTypeExists(ctx, scope, req.LeaveTypeID)
		if err != nil {
			return err
		}
		if !ok {
			return leaveerrors.ErrLeaveTypeNotFound
		}

		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return err
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return err
		}
		if endDate.Before(startDate) {
			l.Warn("create leave request invalid range",
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
			return leaveerrors.ErrInvalidDateRange
		}

		lr = &LeaveRequest{
			ID:          uuid.New(),
			EmployeeID:  empID,
			LeaveTypeID: typeID,
			StartDate:   startDate,
			EndDate:     endDate,
			TotalDays:   inclusiveDays(startDate, endDate),
			Reason:      strings.TrimSpace(req.Reason),
			Status:      StatusPending,
		}
		return mapRepositoryError(qtx.Create(ctx, lr))
	})
	if err != nil {
		l.Warn("create leave request failed", zap.String("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("create leave request success",
		zap.String("leave_request_id", lr.ID.String()),
		zap.Int("total_days", lr.TotalDays),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetByEmployee(ctx context.Context, scope tenant.Scope, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return []LeaveResponse{}, nil
	}
	requests, err := s.repo.FindByEmployee(ctx, scope, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetPendingRequests(ctx context.Context, scope tenant.Scope) ([]LeaveResponse, error) {
	requests, err := s.repo.FindPending(ctx, scope)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetAll(ctx context.Context, scope tenant.Scope, status *string) ([]LeaveResponse, error) {
	filter := ""
	if status != nil {
		filter = strings.ToUpper(strings.TrimSpace(*status))
		if !ValidStatus(filter) {
			return nil, leaveerrors.ErrInvalidStatusFilter
		}
	}

	requests, err := s.repo.FindAll(ctx, scope, filter)
	if err != nil {
		s.logger.Error("get all leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, scope tenant.Scope, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	lr, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lr), nil
}

func (s *service) UpdateStatus(
	ctx context.Context,
	scope tenant.Scope,
	id, approverID string,
	req UpdateLeaveStatusRequest,
) (LeaveResponse, error) {
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	approver, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrApproverRequired
	}
	return s.transition(ctx, scope, id, nil, req.Status, &approver, events.LeaveRequestDecidedType)
}

// CancelRequest is only visible to the requester; anyone else gets NotFound.
func (s *service) CancelRequest(ctx context.Context, scope tenant.Scope, id, employeeID string) (LeaveResponse, error) {
	requester, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return s.transition(ctx, scope, id, &requester, StatusCancelled, nil, events.LeaveRequestCanceledType)
}

func (s *service) transition(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	requester *uuid.UUID,
	status string,
	approver *uuid.UUID,
	eventType string,
) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("transition leave request requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("target_status", status),
	)

	if err := scope.Validate(); err != nil {
		return LeaveResponse{}, err
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	var updated LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var lr *LeaveRequest
		var err error
		if requester != nil {
			lr, err = qtx.FindByIDForEmployee(ctx, scope, id, requester.String())
		} else {
			lr, err = qtx.FindByID(ctx, scope, id)
		}
		if err != nil {
			return mapRepositoryError(err)
		}
		if lr.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}

		at := s.now().UTC()
		affected, err := qtx.Transition(ctx, scope, leaveID, status, approver, at)
		if err != nil {
			return err
		}
		// Lost a race with another decision.
		if affected == 0 {
			return leaveerrors.ErrLeaveNotPending
		}

		lr.Status = status
		lr.ApproverID = approver
		lr.DecidedAt = &at
		lr.UpdatedAt = at
		updated = *lr

		return s.writeEvent(ctx, tx, scope, rid, eventType, *lr, approver)
	})
	if err != nil {
		l.Warn("transition leave request failed",
			zap.String("leave_request_id", id),
			zap.String("target_status", status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l.Info("transition leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("status", status),
	)
	return mapToResponse(updated), nil
}

func (s *service) writeEvent(
	ctx context.Context,
	tx *gorm.DB,
	scope tenant.Scope,
	rid, eventType string,
	lr LeaveRequest,
	approver *uuid.UUID,
) error {
	if s.outbox == nil {
		return nil
	}

	actorID := lr.EmployeeID.String()
	if approver != nil {
		actorID = approver.String()
	}
	event := events.LeaveRequestDecidedEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveRequestID: lr.ID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		OrganizationID: scope.String(),
		Status:         lr.Status,
		ActorID:        actorID,
		OccurredAt:     *lr.DecidedAt,
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, "leave_request", lr.ID.String(), eventType, events.LeaveLifecycleTopic, event)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("leave request outbox persist failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           lt.ID.String(),
		Name:         lt.Name,
		DaysAllowed:  lt.DaysAllowed,
		CarryForward: lt.CarryForward,
		IsPaid:       lt.IsPaid,
	}
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:          lr.ID.String(),
		EmployeeID:  lr.EmployeeID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		StartDate:   lr.StartDate.Format(dateLayout),
		EndDate:     lr.EndDate.Format(dateLayout),
		TotalDays:   lr.TotalDays,
		Reason:      lr.Reason,
		Status:      lr.Status,
		DecidedAt:   lr.DecidedAt,
		CreatedAt:   lr.CreatedAt,
	}
	if lr.Employee != nil {
		resp.EmployeeCode = lr.Employee.EmployeeCode
		resp.EmployeeName = lr.Employee.FullName()
	}
	if lr.LeaveType != nil {
		resp.LeaveTypeName = lr.LeaveType.Name
	}
	if lr.ApproverID != nil {
		v := lr.ApproverID.String()
		resp.ApproverID = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
