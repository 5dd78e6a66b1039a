package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/repository"
)

// DashboardService defines the landing-page counters
type DashboardService interface {
	// Stats returns *dto.AdminDashboard for staff and *dto.EmployeeDashboard
	// for everyone else.
	Stats(ctx context.Context, actor domain.Actor) (any, error)
}

type dashboardService struct {
	empRepo        repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	clock          *calendar.Clock
}

// NewDashboardService creates a new service instance
func NewDashboardService(empRepo repository.EmployeeRepository, attendanceRepo repository.AttendanceRepository, leaveRepo repository.LeaveRepository, clock *calendar.Clock) DashboardService {
	return &dashboardService{
		empRepo:        empRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		clock:          clock,
	}
}

func (s *dashboardService) Stats(ctx context.Context, actor domain.Actor) (any, error) {
	if err := authz.Authorize(actor, authz.ViewDashboard); err != nil {
		return nil, err
	}
	if authz.Allowed(actor.Role, authz.ViewAllAttendance) {
		return s.adminStats(ctx)
	}
	return s.employeeStats(ctx, actor)
}

func (s *dashboardService) adminStats(ctx context.Context) (*dto.AdminDashboard, error) {
	role := domain.RoleEmployee
	workforce := repository.EmployeeFilter{Role: &role, ActiveOnly: true}
	total, err := s.empRepo.Count(ctx, workforce)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	leaves, err := s.leaveRepo.CountByStatus(ctx, repository.LeaveFilter{})
	if err != nil {
		return nil, fmt.Errorf("count leaves: %w", err)
	}

	// Presence is counted over the same active employee accounts as the total.
	ids := make([]int64, 0, total)
	if total > 0 {
		employees, _, err := s.empRepo.List(ctx, workforce, repository.Page{Page: 1, Limit: int(total)})
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		for _, emp := range employees {
			ids = append(ids, emp.ID)
		}
	}

	today := s.clock.Today()
	attendance, err := s.attendanceRepo.CountByStatus(ctx, repository.AttendanceFilter{EmployeeIDs: ids, From: &today, To: &today})
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	present := attendance[domain.AttendancePresent]
	absent := total - present
	if absent < 0 {
		absent = 0
	}

	return &dto.AdminDashboard{
		TotalEmployees: total,
		PendingLeaves:  leaves[domain.LeavePending],
		PresentToday:   present,
		AbsentToday:    absent,
	}, nil
}

func (s *dashboardService) employeeStats(ctx context.Context, actor domain.Actor) (*dto.EmployeeDashboard, error) {
	stats := &dto.EmployeeDashboard{AttendanceStatus: string(domain.AttendanceAbsent)}

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, s.clock.Today())
	switch {
	case err == nil:
		stats.AttendanceStatus = string(rec.Status)
		stats.CheckInTime = rec.CheckIn
	case !errors.Is(err, domain.ErrAttendanceNotFound):
		return nil, err
	}

	leaves, err := s.leaveRepo.CountByStatus(ctx, repository.LeaveFilter{EmployeeID: &actor.EmployeeID})
	if err != nil {
		return nil, fmt.Errorf("count leaves: %w", err)
	}
	stats.PendingLeaves = leaves[domain.LeavePending]
	stats.ApprovedLeaves = leaves[domain.LeaveApproved]
	return stats, nil
}
