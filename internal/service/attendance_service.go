package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/metrics"
	"github.com/hrms-api/internal/report"
	"github.com/hrms-api/internal/repository"
)

// AttendanceList is one page of attendance records with the status counts of
// the whole filtered set.
type AttendanceList struct {
	Records   []domain.AttendanceRecord
	Employees map[int64]domain.Employee
	Summary   dto.AttendanceSummary
	Total     int64
	Page      repository.Page
}

// AttendanceService defines the attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error)
	CheckOut(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error)
	// Today returns the caller's record for today, or nil when there is none.
	Today(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error)
	Upsert(ctx context.Context, actor domain.Actor, employeeID int64, req *dto.UpsertAttendanceRequest) (*domain.AttendanceRecord, error)
	ListMine(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) (*AttendanceList, error)
	ListAll(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) (*AttendanceList, error)
	Export(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) ([]byte, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	empRepo        repository.EmployeeRepository
	clock          *calendar.Clock
}

// NewAttendanceService creates a new service instance
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, empRepo repository.EmployeeRepository, clock *calendar.Clock) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		empRepo:        empRepo,
		clock:          clock,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error) {
	if err := authz.Authorize(actor, authz.CheckIn); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := calendar.DateOf(now)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
	switch {
	case errors.Is(err, domain.ErrAttendanceNotFound):
		rec = domain.NewAttendanceRecord(actor.EmployeeID, today, domain.AttendancePresent, &now, nil, "")
		err = s.attendanceRepo.Create(ctx, rec)
		if err == nil {
			metrics.AttendanceEvents.WithLabelValues("check_in").Inc()
			return rec, nil
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("create attendance: %w", err)
		}
		// A concurrent request created today's record first.
		rec, err = s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	// An existing record without check-in was created administratively.
	if rec.CheckIn != nil {
		return nil, domain.ErrAlreadyCheckedIn
	}
	if err := s.attendanceRepo.SetCheckIn(ctx, rec.ID, now); err != nil {
		return nil, err
	}

	metrics.AttendanceEvents.WithLabelValues("check_in").Inc()
	return s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
}

func (s *attendanceService) CheckOut(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error) {
	if err := authz.Authorize(actor, authz.CheckOut); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := calendar.DateOf(now)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return nil, domain.ErrNotCheckedIn
		}
		return nil, err
	}
	if rec.CheckIn == nil {
		return nil, domain.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	hours := domain.HoursWorked(*rec.CheckIn, now)
	if err := s.attendanceRepo.SetCheckOut(ctx, rec.ID, now, hours); err != nil {
		return nil, err
	}

	metrics.AttendanceEvents.WithLabelValues("check_out").Inc()
	return s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
}

func (s *attendanceService) Today(ctx context.Context, actor domain.Actor) (*domain.AttendanceRecord, error) {
	if err := authz.Authorize(actor, authz.ViewOwnAttendance); err != nil {
		return nil, err
	}

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	if errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, nil
	}
	return rec, err
}

func (s *attendanceService) Upsert(ctx context.Context, actor domain.Actor, employeeID int64, req *dto.UpsertAttendanceRequest) (*domain.AttendanceRecord, error) {
	if err := authz.Authorize(actor, authz.UpsertAttendance); err != nil {
		return nil, err
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	status := domain.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, domain.NewValidationError("status must be present, absent, half-day or leave")
	}
	checkIn, err := parseTimestamp(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseTimestamp(req.CheckOut)
	if err != nil {
		return nil, err
	}

	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rec := domain.NewAttendanceRecord(employeeID, date, status, checkIn, checkOut, req.Note)
	if err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}

	metrics.AttendanceEvents.WithLabelValues("upsert").Inc()
	return rec, nil
}

func (s *attendanceService) ListMine(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) (*AttendanceList, error) {
	if err := authz.Authorize(actor, authz.ViewOwnAttendance); err != nil {
		return nil, err
	}

	scoped := *query
	scoped.EmployeeID = &actor.EmployeeID
	return s.list(ctx, &scoped, Page(query.Page, query.Limit))
}

func (s *attendanceService) ListAll(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) (*AttendanceList, error) {
	if err := authz.Authorize(actor, authz.ViewAllAttendance); err != nil {
		return nil, err
	}
	return s.list(ctx, query, Page(query.Page, query.Limit))
}

func (s *attendanceService) Export(ctx context.Context, actor domain.Actor, query *dto.AttendanceQuery) ([]byte, error) {
	if err := authz.Authorize(actor, authz.ExportAttendance); err != nil {
		return nil, err
	}

	result, err := s.list(ctx, query, repository.Page{Page: 1, Limit: exportLimit})
	if err != nil {
		return nil, err
	}
	if result.Total > int64(exportLimit) {
		return nil, &domain.Error{
			Kind:    domain.KindValidation,
			Code:    "EXPORT_TOO_LARGE",
			Message: fmt.Sprintf("export matches %d records, narrow the filter to at most %d", result.Total, exportLimit),
		}
	}
	return report.AttendanceSheet(result.Records, result.Employees, s.clock.Location())
}

func (s *attendanceService) list(ctx context.Context, query *dto.AttendanceQuery, page repository.Page) (*AttendanceList, error) {
	filter, err := attendanceFilter(query)
	if err != nil {
		return nil, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	// Summary counts cover the filtered set regardless of the status filter.
	counts, err := s.attendanceRepo.CountByStatus(ctx, filter.WithoutStatus())
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.EmployeeID
	}
	employees, err := loadEmployees(ctx, s.empRepo, ids)
	if err != nil {
		return nil, err
	}

	summary := dto.AttendanceSummary{
		Present: counts[domain.AttendancePresent],
		Absent:  counts[domain.AttendanceAbsent],
		HalfDay: counts[domain.AttendanceHalfDay],
		Leave:   counts[domain.AttendanceLeave],
	}
	summary.Total = summary.Present + summary.Absent + summary.HalfDay + summary.Leave

	return &AttendanceList{
		Records:   records,
		Employees: employees,
		Summary:   summary,
		Total:     total,
		Page:      page,
	}, nil
}

func attendanceFilter(query *dto.AttendanceQuery) (repository.AttendanceFilter, error) {
	from, to, err := parseRange(query.StartDate, query.EndDate)
	if err != nil {
		return repository.AttendanceFilter{}, err
	}

	filter := repository.AttendanceFilter{
		EmployeeID: query.EmployeeID,
		From:       from,
		To:         to,
	}
	if query.Status != "" {
		status := domain.AttendanceStatus(query.Status)
		if !status.Valid() {
			return repository.AttendanceFilter{}, domain.NewValidationError("status must be present, absent, half-day or leave")
		}
		filter.Status = &status
	}
	return filter, nil
}

func parseTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, domain.ErrInvalidTimestamp
	}
	return &t, nil
}
