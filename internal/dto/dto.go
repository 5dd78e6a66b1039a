package dto

import (
	"time"
)

// RegisterRequest - self-service account creation
type RegisterRequest struct {
	EmployeeCode string `json:"employeeCode" validate:"required,max=50"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
}

// LoginRequest - credentials exchange for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest - fields an employee may change on their own account
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}

// LeaveBalanceInput - replacement leave counters
type LeaveBalanceInput struct {
	Paid   float64 `json:"paid" validate:"min=0"`
	Sick   float64 `json:"sick" validate:"min=0"`
	Unpaid float64 `json:"unpaid" validate:"min=0"`
}

// UpdateEmployeeRequest - job details maintained by HR
type UpdateEmployeeRequest struct {
	FirstName      *string            `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName       *string            `json:"lastName" validate:"omitempty,max=100"`
	Phone          *string            `json:"phone" validate:"omitempty,max=30"`
	Address        *string            `json:"address" validate:"omitempty,max=500"`
	Department     *string            `json:"department" validate:"omitempty,max=100"`
	Designation    *string            `json:"designation" validate:"omitempty,max=100"`
	EmploymentType *string            `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract intern"`
	DateOfJoining  *string            `json:"dateOfJoining" validate:"omitempty,datetime=2006-01-02"`
	LeaveBalance   *LeaveBalanceInput `json:"leaveBalance"`
}

// ChangeRoleRequest - admin role assignment
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=employee hr admin"`
}

// EmployeeQuery - list filters for employees
type EmployeeQuery struct {
	Search     string
	Department string
	Role       string `validate:"omitempty,oneof=employee hr admin"`
	Page       int    `validate:"min=1"`
	Limit      int    `validate:"min=1,max=100"`
}

// UpsertAttendanceRequest - administrative write of one attendance day
type UpsertAttendanceRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string  `json:"status" validate:"required,oneof=present absent half-day leave"`
	CheckIn  *string `json:"checkIn" validate:"omitempty"`
	CheckOut *string `json:"checkOut" validate:"omitempty"`
	Note     string  `json:"note" validate:"omitempty,max=500"`
}

// AttendanceQuery - list filters for attendance
type AttendanceQuery struct {
	EmployeeID *int64 `validate:"omitempty,min=1"`
	StartDate  string `validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `validate:"omitempty,datetime=2006-01-02"`
	Status     string `validate:"omitempty,oneof=present absent half-day leave"`
	Page       int    `validate:"min=1"`
	Limit      int    `validate:"min=1,max=100"`
}

// ApplyLeaveRequest - new leave application
type ApplyLeaveRequest struct {
	LeaveType      string `json:"leaveType" validate:"required,oneof=paid sick unpaid"`
	StartDate      string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason         string `json:"reason" validate:"max=1000"`
	IsHalfDay      bool   `json:"isHalfDay"`
	HalfDaySession string `json:"halfDaySession" validate:"omitempty,oneof=first-half second-half"`
}

// DecideLeaveRequest - review outcome
type DecideLeaveRequest struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejectionReason" validate:"omitempty,max=1000"`
}

// LeaveQuery - list filters for leave requests
type LeaveQuery struct {
	EmployeeID *int64 `validate:"omitempty,min=1"`
	Status     string `validate:"omitempty,oneof=pending approved rejected"`
	LeaveType  string `validate:"omitempty,oneof=paid sick unpaid"`
	StartDate  string `validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `validate:"omitempty,datetime=2006-01-02"`
	Page       int    `validate:"min=1"`
	Limit      int    `validate:"min=1,max=100"`
}

// LineItemInput - one allowance or deduction
type LineItemInput struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"min=0"`
}

// GeneratePayrollRequest - new monthly payroll record
type GeneratePayrollRequest struct {
	EmployeeID    int64           `json:"employeeId" validate:"required,min=1"`
	Month         int             `json:"month" validate:"required,min=1,max=12"`
	Year          int             `json:"year" validate:"required,min=2000,max=2100"`
	BasicSalary   float64         `json:"basicSalary" validate:"min=0"`
	Allowances    []LineItemInput `json:"allowances" validate:"omitempty,dive"`
	Deductions    []LineItemInput `json:"deductions" validate:"omitempty,dive"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=bank-transfer cash cheque"`
	Remarks       string          `json:"remarks" validate:"omitempty,max=1000"`
}

// UpdatePayrollRequest - partial payroll update. EmployeeID, Month and Year
// are decoded only to reject attempts to change them.
type UpdatePayrollRequest struct {
	EmployeeID    *int64           `json:"employeeId"`
	Month         *int             `json:"month"`
	Year          *int             `json:"year"`
	BasicSalary   *float64         `json:"basicSalary" validate:"omitempty,min=0"`
	Allowances    *[]LineItemInput `json:"allowances" validate:"omitempty,dive"`
	Deductions    *[]LineItemInput `json:"deductions" validate:"omitempty,dive"`
	PaymentStatus *string          `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed"`
	PaymentMethod *string          `json:"paymentMethod" validate:"omitempty,oneof=bank-transfer cash cheque"`
	PaymentDate   *string          `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
	Remarks       *string          `json:"remarks" validate:"omitempty,max=1000"`
}

// PayrollQuery - list filters for payroll records
type PayrollQuery struct {
	EmployeeID    *int64 `validate:"omitempty,min=1"`
	Month         *int   `validate:"omitempty,min=1,max=12"`
	Year          *int   `validate:"omitempty,min=2000,max=2100"`
	PaymentStatus string `validate:"omitempty,oneof=pending paid failed"`
	Page          int    `validate:"min=1"`
	Limit         int    `validate:"min=1,max=100"`
}

// Response - success envelope
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data"`
	Summary    any         `json:"summary,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Totals     any         `json:"totals,omitempty"`
}

// ErrorResponse - error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Pagination - page metadata of a list response
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count for total rows.
func NewPagination(total int64, page, limit int) *Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return &Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// AttendanceSummary - status counts of a filtered attendance set
type AttendanceSummary struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	HalfDay int64 `json:"halfDay"`
	Leave   int64 `json:"leave"`
	Total   int64 `json:"total"`
}

// LeaveSummary - status counts of a filtered leave set
type LeaveSummary struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// PayrollTotals - sums over one page of payroll records
type PayrollTotals struct {
	TotalBasic      float64 `json:"totalBasic"`
	TotalAllowances float64 `json:"totalAllowances"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNetSalary  float64 `json:"totalNetSalary"`
}

// LeaveBalanceResponse - current counters and days taken this year
type LeaveBalanceResponse struct {
	EmployeeID int64              `json:"employeeId"`
	Year       int                `json:"year"`
	Available  LeaveBalanceInput  `json:"available"`
	Taken      map[string]float64 `json:"taken"`
}

// EmployeeRef - short employee reference embedded in records
type EmployeeRef struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
	Department   string `json:"department,omitempty"`
}

// EmployeeResponse - employee account as returned to clients
type EmployeeResponse struct {
	ID             int64             `json:"id"`
	EmployeeCode   string            `json:"employeeCode"`
	Email          string            `json:"email"`
	Role           string            `json:"role"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Phone          string            `json:"phone,omitempty"`
	Address        string            `json:"address,omitempty"`
	Department     string            `json:"department,omitempty"`
	Designation    string            `json:"designation,omitempty"`
	EmploymentType string            `json:"employmentType,omitempty"`
	DateOfJoining  *string           `json:"dateOfJoining,omitempty"`
	LeaveBalance   LeaveBalanceInput `json:"leaveBalance"`
	IsActive       bool              `json:"isActive"`
	LastLoginAt    *time.Time        `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// AuthResponse - issued token with the account it belongs to
type AuthResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// AttendanceResponse - one attendance day
type AttendanceResponse struct {
	ID          int64        `json:"id"`
	EmployeeID  int64        `json:"employeeId"`
	Employee    *EmployeeRef `json:"employee,omitempty"`
	Date        string       `json:"date"`
	CheckIn     *time.Time   `json:"checkIn"`
	CheckOut    *time.Time   `json:"checkOut"`
	Status      string       `json:"status"`
	HoursWorked float64      `json:"hoursWorked"`
	Note        string       `json:"note,omitempty"`
}

// LeaveResponse - one leave request
type LeaveResponse struct {
	ID              int64        `json:"id"`
	EmployeeID      int64        `json:"employeeId"`
	Employee        *EmployeeRef `json:"employee,omitempty"`
	LeaveType       string       `json:"leaveType"`
	StartDate       string       `json:"startDate"`
	EndDate         string       `json:"endDate"`
	Days            float64      `json:"days"`
	IsHalfDay       bool         `json:"isHalfDay"`
	HalfDaySession  string       `json:"halfDaySession,omitempty"`
	Reason          string       `json:"reason"`
	Status          string       `json:"status"`
	ReviewedBy      *int64       `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewedAt,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// PayrollResponse - one payroll record
type PayrollResponse struct {
	ID              int64           `json:"id"`
	EmployeeID      int64           `json:"employeeId"`
	Employee        *EmployeeRef    `json:"employee,omitempty"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	BasicSalary     float64         `json:"basicSalary"`
	Allowances      []LineItemInput `json:"allowances"`
	Deductions      []LineItemInput `json:"deductions"`
	TotalAllowances float64         `json:"totalAllowances"`
	TotalDeductions float64         `json:"totalDeductions"`
	NetSalary       float64         `json:"netSalary"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentDate     *string         `json:"paymentDate,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	GeneratedBy     int64           `json:"generatedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AdminDashboard - organization-wide counters
type AdminDashboard struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PendingLeaves  int64 `json:"pendingLeaves"`
	PresentToday   int64 `json:"presentToday"`
	AbsentToday    int64 `json:"absentToday"`
}

// EmployeeDashboard - counters of the calling employee
type EmployeeDashboard struct {
	AttendanceStatus string     `json:"attendanceStatus"`
	CheckInTime      *time.Time `json:"checkInTime"`
	PendingLeaves    int64      `json:"pendingLeaves"`
	ApprovedLeaves   int64      `json:"approvedLeaves"`
}
