// Package memory implements the repository interfaces on top of process
// memory. Every operation runs under a single store-wide mutex, so the
// compare-and-set transitions of the gorm repositories hold here as well.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

// Store holds all entities of one in-memory deployment.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	employees  map[int64]*domain.Employee
	attendance map[int64]*domain.AttendanceRecord
	leaves     map[int64]*domain.LeaveRequest
	payroll    map[int64]*domain.PayrollRecord

	nextEmployee   int64
	nextAttendance int64
	nextLeave      int64
	nextPayroll    int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:        time.Now,
		employees:  make(map[int64]*domain.Employee),
		attendance: make(map[int64]*domain.AttendanceRecord),
		leaves:     make(map[int64]*domain.LeaveRequest),
		payroll:    make(map[int64]*domain.PayrollRecord),
	}
}

// Employees returns the employee repository view of the store.
func (s *Store) Employees() repository.EmployeeRepository { return &employees{s} }

// Attendance returns the attendance repository view of the store.
func (s *Store) Attendance() repository.AttendanceRepository { return &attendance{s} }

// Leaves returns the leave repository view of the store.
func (s *Store) Leaves() repository.LeaveRepository { return &leaves{s} }

// Payroll returns the payroll repository view of the store.
func (s *Store) Payroll() repository.PayrollRepository { return &payroll{s} }

// paginate returns the page window of a slice of length n.
func paginate(n int, page repository.Page) (int, int) {
	start := page.Offset()
	if start > n {
		start = n
	}
	end := n
	if page.Limit > 0 && start+page.Limit < n {
		end = start + page.Limit
	}
	return start, end
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sortByCreated[T any](items []T, created func(T) time.Time, id func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}
