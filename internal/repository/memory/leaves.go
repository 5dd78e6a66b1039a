package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

type leaves struct{ s *Store }

func copyLeave(req *domain.LeaveRequest) *domain.LeaveRequest {
	c := *req
	c.ReviewedAt = cloneTime(req.ReviewedAt)
	if req.ReviewedBy != nil {
		id := *req.ReviewedBy
		c.ReviewedBy = &id
	}
	return &c
}

func (r *leaves) Create(_ context.Context, req *domain.LeaveRequest) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLeave++
	now := s.now()
	req.ID = s.nextLeave
	req.CreatedAt = now
	req.UpdatedAt = now
	s.leaves[req.ID] = copyLeave(req)
	return nil
}

func (r *leaves) GetByID(_ context.Context, id int64) (*domain.LeaveRequest, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaves[id]
	if !ok {
		return nil, domain.ErrLeaveNotFound
	}
	return copyLeave(req), nil
}

func (r *leaves) ListActiveForEmployee(_ context.Context, employeeID int64) ([]domain.LeaveRequest, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]domain.LeaveRequest, 0)
	for _, req := range s.leaves {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status == domain.LeavePending || req.Status == domain.LeaveApproved {
			active = append(active, *copyLeave(req))
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartDate.Before(active[j].StartDate)
	})
	return active, nil
}

// Decide checks both the request and the balance before touching either, so
// a failed approval leaves the store unchanged.
func (r *leaves) Decide(_ context.Context, id int64, d repository.LeaveDecision) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaves[id]
	if !ok {
		return domain.ErrLeaveNotFound
	}
	if req.Status != domain.LeavePending {
		return domain.ErrAlreadyDecided
	}

	var emp *domain.Employee
	var balance domain.LeaveBalance
	if d.Status == domain.LeaveApproved {
		emp, ok = s.employees[d.EmployeeID]
		if !ok {
			return domain.ErrEmployeeNotFound
		}
		var err error
		balance, err = emp.LeaveBalance.Consume(d.Type, d.Days)
		if err != nil {
			return err
		}
	}

	now := s.now()
	reviewer := d.ReviewerID
	at := d.At
	req.Status = d.Status
	req.ReviewedBy = &reviewer
	req.ReviewedAt = &at
	if d.Status == domain.LeaveRejected {
		req.RejectionReason = d.RejectionReason
	}
	req.UpdatedAt = now

	if emp != nil {
		emp.LeaveBalance = balance
		emp.UpdatedAt = now
	}
	return nil
}

func (r *leaves) DeleteIfPending(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaves[id]
	if !ok || req.Status != domain.LeavePending {
		return domain.ErrNotPending
	}
	delete(s.leaves, id)
	return nil
}

func (r *leaves) List(_ context.Context, filter repository.LeaveFilter, page repository.Page) ([]domain.LeaveRequest, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.LeaveRequest, 0)
	for _, req := range s.leaves {
		if filter.Matches(req) {
			matched = append(matched, *copyLeave(req))
		}
	}
	sortByCreated(matched,
		func(l domain.LeaveRequest) time.Time { return l.CreatedAt },
		func(l domain.LeaveRequest) int64 { return l.ID })

	start, end := paginate(len(matched), page)
	return matched[start:end], int64(len(matched)), nil
}

func (r *leaves) CountByStatus(_ context.Context, filter repository.LeaveFilter) (map[domain.LeaveStatus]int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[domain.LeaveStatus]int64)
	for _, req := range s.leaves {
		if filter.Matches(req) {
			counts[req.Status]++
		}
	}
	return counts, nil
}

func (r *leaves) SumApprovedDays(_ context.Context, employeeID int64, from, to time.Time) (map[domain.LeaveType]float64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[domain.LeaveType]float64)
	for _, req := range s.leaves {
		if req.EmployeeID != employeeID || req.Status != domain.LeaveApproved {
			continue
		}
		if req.StartDate.Before(from) || req.StartDate.After(to) {
			continue
		}
		sums[req.Type] += req.Days
	}
	return sums, nil
}
