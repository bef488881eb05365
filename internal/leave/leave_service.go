package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/events"
	leaveerrors "go-ems/internal/leave/errors"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/keylock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetLeavesFilterRequest) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, approverID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	BalanceOf(ctx context.Context, companyID, employeeID string, leaveType Type) (int, error)
	Balances(ctx context.Context, companyID, employeeID string) (BalanceResponse, error)
	PaidLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	locks     *keylock.Locker
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		locks:     keylock.New(),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

// application is a validated create or update request.
type application struct {
	leaveType  Type
	startDate  time.Time
	endDate    time.Time
	totalDays  int
	handoverTo *uuid.UUID
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func validateApplication(leaveType, startDate, endDate string, handoverTo *string) (application, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(leaveType)))
	if !t.Valid() {
		return application{}, leaveerrors.ErrInvalidLeaveType
	}
	start, err := parseDate(startDate)
	if err != nil {
		return application{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return application{}, err
	}
	if end.Before(start) {
		return application{}, leaveerrors.ErrInvalidDateRange
	}

	app := application{
		leaveType: t,
		startDate: start,
		endDate:   end,
		totalDays: TotalDays(start, end),
	}
	if handoverTo != nil && *handoverTo != "" {
		id, err := uuid.Parse(*handoverTo)
		if err != nil {
			return application{}, leaveerrors.ErrInvalidHandoverTo
		}
		app.handoverTo = &id
	}
	return app, nil
}

func employeeKey(companyID, employeeID string) string {
	return companyID + ":" + employeeID
}

func (s *service) Apply(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorID
	}
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	app, err := validateApplication(req.LeaveType, req.StartDate, req.EndDate, req.HandoverTo)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	unlock := s.locks.Lock(employeeKey(companyID, employeeID))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := s.employees.WithTx(tx).FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return LeaveResponse{}, mapEmployeeError(err)
	}
	if empl.EmploymentStatus == employee.StatusTerminated {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotActive
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, employeeID, app.startDate, app.endDate, nil)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap", zap.String("request_id", rid), zap.String("employee_id", employeeID))
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	if !balancesOf(empl).Sufficient(app.leaveType, app.totalDays) {
		s.logger.Warn("apply leave insufficient balance",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.String("leave_type", string(app.leaveType)),
			zap.Int("requested_days", app.totalDays),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	l := &Leave{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeID:       employeeUUID,
		LeaveType:        app.leaveType,
		StartDate:        app.startDate,
		EndDate:          app.endDate,
		TotalDays:        app.totalDays,
		Reason:           strings.TrimSpace(req.Reason),
		IsPaid:           isPaid,
		HandoverTo:       app.handoverTo,
		HandoverNotes:    req.HandoverNotes,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		DocumentPath:     req.DocumentPath,
		Status:           StatusPending,
		CreatedBy:        actorUUID,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetLeavesFilterRequest) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, companyID, Filter{
		EmployeeID: filter.EmployeeID,
		Status:     Status(filter.Status),
	})
	if err != nil {
		s.logger.Error("get leaves failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]LeaveResponse, len(leaves))
	for i := range leaves {
		resp[i] = mapToResponse(&leaves[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(l), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("leave_id", id),
	)

	app, err := validateApplication(req.LeaveType, req.StartDate, req.EndDate, req.HandoverTo)
	if err != nil {
		s.logger.Warn("update leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	current, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	employeeID := current.EmployeeID.String()

	unlock := s.locks.Lock(employeeKey(companyID, employeeID))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrOnlyPendingEditable
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, employeeID, app.startDate, app.endDate, &id)
	if err != nil {
		s.logger.Error("update leave overlap check failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	empl, err := s.employees.WithTx(tx).FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return LeaveResponse{}, mapEmployeeError(err)
	}
	if !balancesOf(empl).Sufficient(app.leaveType, app.totalDays) {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l.LeaveType = app.leaveType
	l.StartDate = app.startDate
	l.EndDate = app.endDate
	l.TotalDays = app.totalDays
	l.Reason = strings.TrimSpace(req.Reason)
	if req.IsPaid != nil {
		l.IsPaid = *req.IsPaid
	}
	l.HandoverTo = app.handoverTo
	l.HandoverNotes = req.HandoverNotes
	l.EmergencyContact = req.EmergencyContact
	l.EmergencyPhone = req.EmergencyPhone
	l.DocumentPath = req.DocumentPath

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave updated", zap.String("request_id", rid), zap.String("leave_id", id))
	return mapToResponse(l), nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
		zap.String("leave_id", id),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	current, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	employeeID := current.EmployeeID.String()

	unlock := s.locks.Lock(employeeKey(companyID, employeeID))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	etx := s.employees.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !l.Status.CanTransitionTo(StatusApproved) {
		s.logger.Warn("approve leave invalid status",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if l.LeaveType.Tracked() {
		empl, err := etx.FindByIDAndCompany(ctx, companyID, employeeID)
		if err != nil {
			return LeaveResponse{}, mapEmployeeError(err)
		}
		next, err := balancesOf(empl).Debit(l.LeaveType, l.TotalDays)
		if err != nil {
			s.logger.Warn("approve leave insufficient balance",
				zap.String("request_id", rid),
				zap.String("leave_id", id),
				zap.String("leave_type", string(l.LeaveType)),
				zap.Int("total_days", l.TotalDays),
			)
			return LeaveResponse{}, err
		}
		next.writeTo(empl)
		if err := etx.UpdateLeaveBalances(ctx, empl); err != nil {
			s.logger.Error("approve leave debit failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	now := s.now()
	l.Status = StatusApproved
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := s.emit(ctx, tx, events.LeaveApprovedEventType, l, approverID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave approved",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(l), nil
}

func (s *service) Reject(ctx context.Context, companyID, approverID, id, rejectionReason string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("reject leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
		zap.String("leave_id", id),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !l.Status.CanTransitionTo(StatusRejected) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	// Status first, so a finalized leave reports the invalid transition.
	reason := strings.TrimSpace(rejectionReason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	// The reviewer is recorded in the approval columns either way.
	now := s.now()
	l.Status = StatusRejected
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	l.RejectionReason = &reason
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave rejected", zap.String("request_id", rid), zap.String("leave_id", id))
	return mapToResponse(l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("cancel leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("leave_id", id),
	)

	current, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	employeeID := current.EmployeeID.String()

	unlock := s.locks.Lock(employeeKey(companyID, employeeID))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	etx := s.employees.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status == StatusCancelled {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyCancelled
	}
	if !l.Status.CanTransitionTo(StatusCancelled) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	wasApproved := l.Status == StatusApproved
	if wasApproved && l.LeaveType.Tracked() {
		empl, err := etx.FindByIDAndCompany(ctx, companyID, employeeID)
		if err != nil {
			return LeaveResponse{}, mapEmployeeError(err)
		}
		balancesOf(empl).Credit(l.LeaveType, l.TotalDays).writeTo(empl)
		if err := etx.UpdateLeaveBalances(ctx, empl); err != nil {
			s.logger.Error("cancel leave credit failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	now := s.now()
	l.Status = StatusCancelled
	l.CancelledAt = &now
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if wasApproved {
		if err := s.emit(ctx, tx, events.LeaveCancelledEventType, l, actorID); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave cancelled",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.Bool("credited", wasApproved),
	)
	return mapToResponse(l), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.Status == StatusApproved {
		return leaveerrors.ErrApprovedLeaveNotDeletable
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.logger.Info("leave deleted", zap.String("request_id", rid), zap.String("leave_id", id))
	return nil
}

// BalanceOf returns 0 for types without a stored balance.
func (s *service) BalanceOf(ctx context.Context, companyID, employeeID string, leaveType Type) (int, error) {
	if !leaveType.Valid() {
		return 0, leaveerrors.ErrInvalidLeaveType
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return 0, mapEmployeeError(err)
	}
	return balancesOf(empl).Of(leaveType), nil
}

func (s *service) Balances(ctx context.Context, companyID, employeeID string) (BalanceResponse, error) {
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return BalanceResponse{}, mapEmployeeError(err)
	}
	b := balancesOf(empl)
	return BalanceResponse{
		EmployeeID: employeeID,
		Annual:     b.Annual,
		Sick:       b.Sick,
		Casual:     b.Casual,
	}, nil
}

// PaidLeaveDays counts approved paid leave days falling inside [from, to].
func (s *service) PaidLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	leaves, err := s.repo.FindApprovedInRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		s.logger.Error("paid leave days lookup failed",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return 0, err
	}

	days := 0
	for _, l := range leaves {
		if l.IsPaid {
			days += OverlapDays(l.StartDate, l.EndDate, from, to)
		}
	}
	return days, nil
}

func (s *service) emit(ctx context.Context, tx *sql.Tx, eventType string, l *Leave, actorID string) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  l.TotalDays,
		ActorID:    actorID,
		OccurredAt: s.now(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, kafka.AggregateLeave, l.ID.String(), eventType, events.LeaveLifecycleTopic, event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(l *Leave) LeaveResponse {
	return LeaveResponse{
		ID:               l.ID.String(),
		CompanyID:        l.CompanyID.String(),
		EmployeeID:       l.EmployeeID.String(),
		LeaveType:        l.LeaveType,
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		TotalDays:        l.TotalDays,
		Reason:           l.Reason,
		IsPaid:           l.IsPaid,
		HandoverTo:       uuidString(l.HandoverTo),
		HandoverNotes:    l.HandoverNotes,
		EmergencyContact: l.EmergencyContact,
		EmergencyPhone:   l.EmergencyPhone,
		DocumentPath:     l.DocumentPath,
		Status:           l.Status,
		CreatedBy:        l.CreatedBy.String(),
		ApprovedBy:       uuidString(l.ApprovedBy),
		ApprovedAt:       formatTimestamp(l.ApprovedAt),
		RejectionReason:  l.RejectionReason,
		CancelledAt:      formatTimestamp(l.CancelledAt),
	}
}
