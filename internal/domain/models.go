package domain

import (
	"time"
)

// Role is the access level of an account.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	EmployeeID int64
	Role       Role
}

// LeaveBalance holds the per-type leave counters of an employee, in days.
type LeaveBalance struct {
	Paid   float64 `json:"paid" gorm:"not null;default:0"`
	Sick   float64 `json:"sick" gorm:"not null;default:0"`
	Unpaid float64 `json:"unpaid" gorm:"not null;default:0"`
}

// Employee is an account of the organization
type Employee struct {
	ID             int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeCode   string       `json:"employeeCode" gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string       `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash   string       `json:"-" gorm:"type:varchar(255);not null"`
	Role           Role         `json:"role" gorm:"type:varchar(20);not null"`
	FirstName      string       `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName       string       `json:"lastName" gorm:"type:varchar(100)"`
	Phone          string       `json:"phone" gorm:"type:varchar(30)"`
	Address        string       `json:"address" gorm:"type:text"`
	Department     string       `json:"department" gorm:"type:varchar(100);index"`
	Designation    string       `json:"designation" gorm:"type:varchar(100)"`
	EmploymentType string       `json:"employmentType" gorm:"type:varchar(20)"`
	DateOfJoining  *time.Time   `json:"dateOfJoining" gorm:"type:date"`
	LeaveBalance   LeaveBalance `json:"leaveBalance" gorm:"embedded;embeddedPrefix:leave_balance_"`
	IsActive       bool         `json:"isActive" gorm:"not null"`
	LastLoginAt    *time.Time   `json:"lastLoginAt"`
	CreatedAt      time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// AttendanceStatus is the outcome of a working day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half-day"
	AttendanceLeave   AttendanceStatus = "leave"
)

// AttendanceRecord is the attendance of one employee on one calendar date.
type AttendanceRecord struct {
	ID          int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64            `json:"employeeId" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date        time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date;index"`
	CheckIn     *time.Time       `json:"checkIn"`
	CheckOut    *time.Time       `json:"checkOut"`
	Status      AttendanceStatus `json:"status" gorm:"type:varchar(20);not null"`
	HoursWorked float64          `json:"hoursWorked" gorm:"not null;default:0"`
	Note        string           `json:"note" gorm:"type:text"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// LeaveType is the kind of leave being requested.
type LeaveType string

const (
	LeavePaid   LeaveType = "paid"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is an application for time off.
type LeaveRequest struct {
	ID              int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64       `json:"employeeId" gorm:"not null;index:idx_leave_employee_dates"`
	Type            LeaveType   `json:"leaveType" gorm:"column:leave_type;type:varchar(20);not null"`
	StartDate       time.Time   `json:"startDate" gorm:"type:date;not null;index:idx_leave_employee_dates"`
	EndDate         time.Time   `json:"endDate" gorm:"type:date;not null;index:idx_leave_employee_dates"`
	Days            float64     `json:"days" gorm:"not null"`
	IsHalfDay       bool        `json:"isHalfDay" gorm:"not null;default:false"`
	HalfDaySession  string      `json:"halfDaySession,omitempty" gorm:"type:varchar(20)"`
	Reason          string      `json:"reason" gorm:"type:text;not null"`
	Status          LeaveStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ReviewedBy      *int64      `json:"reviewedBy"`
	ReviewedAt      *time.Time  `json:"reviewedAt"`
	RejectionReason string      `json:"rejectionReason,omitempty" gorm:"type:text"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// PaymentStatus is the settlement state of a payroll record.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PayrollRecord is the salary statement of one employee for one month.
type PayrollRecord struct {
	ID              int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64         `json:"employeeId" gorm:"not null;uniqueIndex:idx_payroll_period"`
	Month           int           `json:"month" gorm:"not null;uniqueIndex:idx_payroll_period"`
	Year            int           `json:"year" gorm:"not null;uniqueIndex:idx_payroll_period"`
	BasicSalary     float64       `json:"basicSalary" gorm:"not null"`
	Allowances      LineItems     `json:"allowances" gorm:"type:text;not null"`
	Deductions      LineItems     `json:"deductions" gorm:"type:text;not null"`
	TotalAllowances float64       `json:"totalAllowances" gorm:"not null"`
	TotalDeductions float64       `json:"totalDeductions" gorm:"not null"`
	NetSalary       float64       `json:"netSalary" gorm:"not null"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);not null"`
	PaymentMethod   string        `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentDate     *time.Time    `json:"paymentDate" gorm:"type:date"`
	Remarks         string        `json:"remarks" gorm:"type:text"`
	GeneratedBy     int64         `json:"generatedBy" gorm:"not null"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM
func (PayrollRecord) TableName() string {
	return "payroll_records"
}
