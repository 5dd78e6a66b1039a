package repository

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
)

// Page selects a slice of an ordered result set.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// AttendanceFilter narrows attendance queries. Nil fields do not filter.
type AttendanceFilter struct {
	EmployeeID *int64
	// EmployeeIDs restricts records to a set of employees; an empty non-nil
	// slice matches nothing.
	EmployeeIDs []int64
	From       *time.Time
	To         *time.Time
	Status     *domain.AttendanceStatus
}

// WithoutStatus returns the filter with the status condition removed.
func (f AttendanceFilter) WithoutStatus() AttendanceFilter {
	f.Status = nil
	return f
}

// Matches reports whether rec satisfies the filter.
func (f AttendanceFilter) Matches(rec *domain.AttendanceRecord) bool {
	if f.EmployeeID != nil && rec.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.EmployeeIDs != nil && !slices.Contains(f.EmployeeIDs, rec.EmployeeID) {
		return false
	}
	if f.From != nil && rec.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.Date.After(*f.To) {
		return false
	}
	if f.Status != nil && rec.Status != *f.Status {
		return false
	}
	return true
}

func (f AttendanceFilter) scope(db *gorm.DB) *gorm.DB {
	if f.EmployeeID != nil {
		db = db.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.EmployeeIDs != nil {
		if len(f.EmployeeIDs) == 0 {
			return db.Where("1 = 0")
		}
		db = db.Where("employee_id IN ?", f.EmployeeIDs)
	}
	if f.From != nil {
		db = db.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("date <= ?", *f.To)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	return db
}

// LeaveFilter narrows leave queries. A date range selects requests that lie
// entirely inside it.
type LeaveFilter struct {
	EmployeeID *int64
	Status     *domain.LeaveStatus
	Type       *domain.LeaveType
	From       *time.Time
	To         *time.Time
}

// WithoutStatus returns the filter with the status condition removed.
func (f LeaveFilter) WithoutStatus() LeaveFilter {
	f.Status = nil
	return f
}

// Matches reports whether req satisfies the filter.
func (f LeaveFilter) Matches(req *domain.LeaveRequest) bool {
	if f.EmployeeID != nil && req.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && req.Status != *f.Status {
		return false
	}
	if f.Type != nil && req.Type != *f.Type {
		return false
	}
	if f.From != nil && req.StartDate.Before(*f.From) {
		return false
	}
	if f.To != nil && req.EndDate.After(*f.To) {
		return false
	}
	return true
}

func (f LeaveFilter) scope(db *gorm.DB) *gorm.DB {
	if f.EmployeeID != nil {
		db = db.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		db = db.Where("leave_type = ?", *f.Type)
	}
	if f.From != nil {
		db = db.Where("start_date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("end_date <= ?", *f.To)
	}
	return db
}

// PayrollFilter narrows payroll queries.
type PayrollFilter struct {
	EmployeeID    *int64
	Month         *int
	Year          *int
	PaymentStatus *domain.PaymentStatus
}

// Matches reports whether rec satisfies the filter.
func (f PayrollFilter) Matches(rec *domain.PayrollRecord) bool {
	if f.EmployeeID != nil && rec.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Month != nil && rec.Month != *f.Month {
		return false
	}
	if f.Year != nil && rec.Year != *f.Year {
		return false
	}
	if f.PaymentStatus != nil && rec.PaymentStatus != *f.PaymentStatus {
		return false
	}
	return true
}

func (f PayrollFilter) scope(db *gorm.DB) *gorm.DB {
	if f.EmployeeID != nil {
		db = db.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Month != nil {
		db = db.Where("month = ?", *f.Month)
	}
	if f.Year != nil {
		db = db.Where("year = ?", *f.Year)
	}
	if f.PaymentStatus != nil {
		db = db.Where("payment_status = ?", *f.PaymentStatus)
	}
	return db
}

// EmployeeFilter narrows employee queries.
type EmployeeFilter struct {
	Search     string
	Department string
	Role       *domain.Role
	ActiveOnly bool
}

// Matches reports whether emp satisfies the filter.
func (f EmployeeFilter) Matches(emp *domain.Employee) bool {
	if f.Department != "" && emp.Department != f.Department {
		return false
	}
	if f.Role != nil && emp.Role != *f.Role {
		return false
	}
	if f.ActiveOnly && !emp.IsActive {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		for _, field := range []string{emp.EmployeeCode, emp.Email, emp.FirstName, emp.LastName} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
	return true
}

func (f EmployeeFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	if f.Role != nil {
		db = db.Where("role = ?", *f.Role)
	}
	if f.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where(
			"(LOWER(employee_code) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)",
			like, like, like, like,
		)
	}
	return db
}

// translateError maps driver-level failures onto domain errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateKey
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return domain.ErrDuplicateKey
	}
	return err
}
