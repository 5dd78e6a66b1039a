package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

type attendance struct{ s *Store }

func copyAttendance(rec *domain.AttendanceRecord) *domain.AttendanceRecord {
	c := *rec
	c.CheckIn = cloneTime(rec.CheckIn)
	c.CheckOut = cloneTime(rec.CheckOut)
	return &c
}

// find must be called with the store lock held.
func (r *attendance) find(employeeID int64, date time.Time) *domain.AttendanceRecord {
	for _, rec := range r.s.attendance {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			return rec
		}
	}
	return nil
}

func (r *attendance) Create(_ context.Context, rec *domain.AttendanceRecord) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.find(rec.EmployeeID, rec.Date) != nil {
		return domain.ErrDuplicateKey
	}
	s.nextAttendance++
	now := s.now()
	rec.ID = s.nextAttendance
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.attendance[rec.ID] = copyAttendance(rec)
	return nil
}

func (r *attendance) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (*domain.AttendanceRecord, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := r.find(employeeID, date)
	if rec == nil {
		return nil, domain.ErrAttendanceNotFound
	}
	return copyAttendance(rec), nil
}

func (r *attendance) SetCheckIn(_ context.Context, id int64, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.attendance[id]
	if !ok {
		return domain.ErrAttendanceNotFound
	}
	if rec.CheckIn != nil {
		return domain.ErrAlreadyCheckedIn
	}
	rec.CheckIn = &at
	rec.Status = domain.AttendancePresent
	rec.UpdatedAt = s.now()
	return nil
}

func (r *attendance) SetCheckOut(_ context.Context, id int64, at time.Time, hoursWorked float64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.attendance[id]
	if !ok {
		return domain.ErrAttendanceNotFound
	}
	if rec.CheckIn == nil || rec.CheckOut != nil {
		return domain.ErrAlreadyCheckedOut
	}
	rec.CheckOut = &at
	rec.HoursWorked = hoursWorked
	rec.UpdatedAt = s.now()
	return nil
}

func (r *attendance) Upsert(_ context.Context, rec *domain.AttendanceRecord) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing := r.find(rec.EmployeeID, rec.Date); existing != nil {
		existing.Status = rec.Status
		existing.CheckIn = cloneTime(rec.CheckIn)
		existing.CheckOut = cloneTime(rec.CheckOut)
		existing.HoursWorked = rec.HoursWorked
		existing.Note = rec.Note
		existing.UpdatedAt = now
		*rec = *copyAttendance(existing)
		return nil
	}

	s.nextAttendance++
	rec.ID = s.nextAttendance
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.attendance[rec.ID] = copyAttendance(rec)
	return nil
}

func (r *attendance) List(_ context.Context, filter repository.AttendanceFilter, page repository.Page) ([]domain.AttendanceRecord, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.AttendanceRecord, 0)
	for _, rec := range s.attendance {
		if filter.Matches(rec) {
			matched = append(matched, *copyAttendance(rec))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	start, end := paginate(len(matched), page)
	return matched[start:end], int64(len(matched)), nil
}

func (r *attendance) CountByStatus(_ context.Context, filter repository.AttendanceFilter) (map[domain.AttendanceStatus]int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[domain.AttendanceStatus]int64)
	for _, rec := range s.attendance {
		if filter.Matches(rec) {
			counts[rec.Status]++
		}
	}
	return counts, nil
}
