package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/metrics"
	"github.com/hrms-api/internal/repository"
	"github.com/hrms-api/internal/validate"
)

// LeaveList is one page of leave requests with the status counts of the
// whole filtered set.
type LeaveList struct {
	Requests  []domain.LeaveRequest
	Employees map[int64]domain.Employee
	Summary   dto.LeaveSummary
	Total     int64
	Page      repository.Page
}

// LeaveBalance is an employee's current counters plus the days taken this year.
type LeaveBalance struct {
	EmployeeID int64
	Year       int
	Available  domain.LeaveBalance
	Taken      map[domain.LeaveType]float64
}

// LeaveService defines the leave operations
type LeaveService interface {
	Apply(ctx context.Context, actor domain.Actor, req *dto.ApplyLeaveRequest) (*domain.LeaveRequest, error)
	Decide(ctx context.Context, actor domain.Actor, id int64, req *dto.DecideLeaveRequest) (*domain.LeaveRequest, error)
	Cancel(ctx context.Context, actor domain.Actor, id int64) error
	ListMine(ctx context.Context, actor domain.Actor, query *dto.LeaveQuery) (*LeaveList, error)
	ListAll(ctx context.Context, actor domain.Actor, query *dto.LeaveQuery) (*LeaveList, error)
	// Balance reports the caller's balance, or another employee's for staff.
	Balance(ctx context.Context, actor domain.Actor, employeeID *int64) (*LeaveBalance, error)
}

type leaveService struct {
	leaveRepo repository.LeaveRepository
	empRepo   repository.EmployeeRepository
	clock     *calendar.Clock
	applying  *keyedMutex
}

// NewLeaveService creates a new service instance
func NewLeaveService(leaveRepo repository.LeaveRepository, empRepo repository.EmployeeRepository, clock *calendar.Clock) LeaveService {
	return &leaveService{
		leaveRepo: leaveRepo,
		empRepo:   empRepo,
		clock:     clock,
		applying:  newKeyedMutex(),
	}
}

func (s *leaveService) Apply(ctx context.Context, actor domain.Actor, req *dto.ApplyLeaveRequest) (*domain.LeaveRequest, error) {
	if err := authz.Authorize(actor, authz.ApplyLeave); err != nil {
		return nil, err
	}

	leaveType := domain.LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return nil, domain.NewValidationError("leave type must be paid, sick or unpaid")
	}
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if !validate.DateRange(start, end) {
		return nil, domain.ErrInvalidRange
	}
	if start.Before(s.clock.Today()) {
		return nil, domain.ErrPastDate
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	if req.IsHalfDay && !start.Equal(end) {
		return nil, domain.ErrHalfDaySpan
	}
	if !req.IsHalfDay && req.HalfDaySession != "" {
		return nil, domain.NewValidationError("half-day session requires a half-day leave")
	}

	days, err := calendar.DaysForRequest(start, end, req.IsHalfDay)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, domain.ErrNoWorkingDays
	}

	unlock := s.applying.Lock(actor.EmployeeID)
	defer unlock()

	active, err := s.leaveRepo.ListActiveForEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("list active leaves: %w", err)
	}
	requested := calendar.Interval{Start: start, End: end}
	for _, existing := range active {
		if calendar.Overlaps(requested, calendar.Interval{Start: existing.StartDate, End: existing.EndDate}) {
			return nil, domain.ErrOverlap
		}
	}

	emp, err := s.empRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.LeaveBalance.Covers(leaveType, days) {
		return nil, domain.ErrInsufficientBalance
	}

	leave := &domain.LeaveRequest{
		EmployeeID: actor.EmployeeID,
		Type:       leaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		IsHalfDay:  req.IsHalfDay,
		Reason:     reason,
		Status:     domain.LeavePending,
	}
	if req.IsHalfDay {
		leave.HalfDaySession = req.HalfDaySession
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}

	metrics.LeaveEvents.WithLabelValues("apply").Inc()
	return leave, nil
}

func (s *leaveService) Decide(ctx context.Context, actor domain.Actor, id int64, req *dto.DecideLeaveRequest) (*domain.LeaveRequest, error) {
	if err := authz.Authorize(actor, authz.DecideLeave); err != nil {
		return nil, err
	}

	status := domain.LeaveStatus(req.Status)
	if status != domain.LeaveApproved && status != domain.LeaveRejected {
		return nil, domain.ErrInvalidDecision
	}

	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.EmployeeID == actor.EmployeeID {
		return nil, domain.ErrSelfReview
	}
	if leave.Status != domain.LeavePending {
		return nil, domain.ErrAlreadyDecided
	}

	err = s.leaveRepo.Decide(ctx, id, repository.LeaveDecision{
		Status:          status,
		ReviewerID:      actor.EmployeeID,
		At:              s.clock.Now(),
		RejectionReason: strings.TrimSpace(req.RejectionReason),
		Type:            leave.Type,
		Days:            leave.Days,
		EmployeeID:      leave.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	metrics.LeaveEvents.WithLabelValues(string(status)).Inc()
	return s.leaveRepo.GetByID(ctx, id)
}

func (s *leaveService) Cancel(ctx context.Context, actor domain.Actor, id int64) error {
	if err := authz.Authorize(actor, authz.CancelLeave); err != nil {
		return err
	}

	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Someone else's request is reported as missing.
	if leave.EmployeeID != actor.EmployeeID {
		return domain.ErrLeaveNotFound
	}
	if leave.Status != domain.LeavePending {
		return domain.ErrNotPending
	}
	if !s.clock.Today().Before(leave.StartDate) {
		return domain.ErrAlreadyStarted
	}

	if err := s.leaveRepo.DeleteIfPending(ctx, id); err != nil {
		return err
	}

	metrics.LeaveEvents.WithLabelValues("cancel").Inc()
	return nil
}

func (s *leaveService) ListMine(ctx context.Context, actor domain.Actor, query *dto.LeaveQuery) (*LeaveList, error) {
	if err := authz.Authorize(actor, authz.ViewOwnLeaves); err != nil {
		return nil, err
	}

	scoped := *query
	scoped.EmployeeID = &actor.EmployeeID
	return s.list(ctx, &scoped)
}

func (s *leaveService) ListAll(ctx context.Context, actor domain.Actor, query *dto.LeaveQuery) (*LeaveList, error) {
	if err := authz.Authorize(actor, authz.ViewAllLeaves); err != nil {
		return nil, err
	}
	return s.list(ctx, query)
}

func (s *leaveService) Balance(ctx context.Context, actor domain.Actor, employeeID *int64) (*LeaveBalance, error) {
	if err := authz.Authorize(actor, authz.ViewOwnBalance); err != nil {
		return nil, err
	}

	target := actor.EmployeeID
	if employeeID != nil && *employeeID != actor.EmployeeID {
		if !authz.Allowed(actor.Role, authz.ViewAllLeaves) {
			return nil, domain.ErrForbidden
		}
		target = *employeeID
	}

	emp, err := s.empRepo.GetByID(ctx, target)
	if err != nil {
		return nil, err
	}

	year := s.clock.Today().Year()
	from, _ := calendar.MonthBounds(year, time.January)
	_, to := calendar.MonthBounds(year, time.December)
	taken, err := s.leaveRepo.SumApprovedDays(ctx, target, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum approved leave: %w", err)
	}

	return &LeaveBalance{
		EmployeeID: target,
		Year:       year,
		Available:  emp.LeaveBalance,
		Taken:      taken,
	}, nil
}

func (s *leaveService) list(ctx context.Context, query *dto.LeaveQuery) (*LeaveList, error) {
	filter, err := leaveFilter(query)
	if err != nil {
		return nil, err
	}
	page := Page(query.Page, query.Limit)

	requests, total, err := s.leaveRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	counts, err := s.leaveRepo.CountByStatus(ctx, filter.WithoutStatus())
	if err != nil {
		return nil, fmt.Errorf("count leaves: %w", err)
	}

	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.EmployeeID
	}
	employees, err := loadEmployees(ctx, s.empRepo, ids)
	if err != nil {
		return nil, err
	}

	summary := dto.LeaveSummary{
		Pending:  counts[domain.LeavePending],
		Approved: counts[domain.LeaveApproved],
		Rejected: counts[domain.LeaveRejected],
	}
	summary.Total = summary.Pending + summary.Approved + summary.Rejected

	return &LeaveList{
		Requests:  requests,
		Employees: employees,
		Summary:   summary,
		Total:     total,
		Page:      page,
	}, nil
}

func leaveFilter(query *dto.LeaveQuery) (repository.LeaveFilter, error) {
	from, to, err := parseRange(query.StartDate, query.EndDate)
	if err != nil {
		return repository.LeaveFilter{}, err
	}

	filter := repository.LeaveFilter{
		EmployeeID: query.EmployeeID,
		From:       from,
		To:         to,
	}
	if query.Status != "" {
		status := domain.LeaveStatus(query.Status)
		switch status {
		case domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected:
		default:
			return repository.LeaveFilter{}, domain.NewValidationError("status must be pending, approved or rejected")
		}
		filter.Status = &status
	}
	if query.LeaveType != "" {
		leaveType := domain.LeaveType(query.LeaveType)
		if !leaveType.Valid() {
			return repository.LeaveFilter{}, domain.NewValidationError("leave type must be paid, sick or unpaid")
		}
		filter.Type = &leaveType
	}
	return filter, nil
}
