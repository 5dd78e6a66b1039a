package handler

import (
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
)

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		Email:          emp.Email,
		Role:           string(emp.Role),
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		Phone:          emp.Phone,
		Address:        emp.Address,
		Department:     emp.Department,
		Designation:    emp.Designation,
		EmploymentType: emp.EmploymentType,
		LeaveBalance:   toBalanceInput(emp.LeaveBalance),
		IsActive:       emp.IsActive,
		LastLoginAt:    emp.LastLoginAt,
		CreatedAt:      emp.CreatedAt,
	}
	if emp.DateOfJoining != nil {
		d := calendar.FormatDate(*emp.DateOfJoining)
		resp.DateOfJoining = &d
	}
	return resp
}

func toBalanceInput(b domain.LeaveBalance) dto.LeaveBalanceInput {
	return dto.LeaveBalanceInput{Paid: b.Paid, Sick: b.Sick, Unpaid: b.Unpaid}
}

// toEmployeeRef returns nil when the employee was not loaded.
func toEmployeeRef(employees map[int64]domain.Employee, id int64) *dto.EmployeeRef {
	emp, ok := employees[id]
	if !ok {
		return nil
	}
	return &dto.EmployeeRef{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.FullName(),
		Department:   emp.Department,
	}
}

func toAttendanceResponse(rec *domain.AttendanceRecord, employees map[int64]domain.Employee) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		Employee:    toEmployeeRef(employees, rec.EmployeeID),
		Date:        calendar.FormatDate(rec.Date),
		CheckIn:     rec.CheckIn,
		CheckOut:    rec.CheckOut,
		Status:      string(rec.Status),
		HoursWorked: rec.HoursWorked,
		Note:        rec.Note,
	}
}

func toLeaveResponse(req *domain.LeaveRequest, employees map[int64]domain.Employee) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		Employee:        toEmployeeRef(employees, req.EmployeeID),
		LeaveType:       string(req.Type),
		StartDate:       calendar.FormatDate(req.StartDate),
		EndDate:         calendar.FormatDate(req.EndDate),
		Days:            req.Days,
		IsHalfDay:       req.IsHalfDay,
		HalfDaySession:  req.HalfDaySession,
		Reason:          req.Reason,
		Status:          string(req.Status),
		ReviewedBy:      req.ReviewedBy,
		ReviewedAt:      req.ReviewedAt,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt,
	}
}

func toPayrollResponse(rec *domain.PayrollRecord, employees map[int64]domain.Employee) dto.PayrollResponse {
	resp := dto.PayrollResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		Employee:        toEmployeeRef(employees, rec.EmployeeID),
		Month:           rec.Month,
		Year:            rec.Year,
		BasicSalary:     rec.BasicSalary,
		Allowances:      toLineItems(rec.Allowances),
		Deductions:      toLineItems(rec.Deductions),
		TotalAllowances: rec.TotalAllowances,
		TotalDeductions: rec.TotalDeductions,
		NetSalary:       rec.NetSalary,
		PaymentStatus:   string(rec.PaymentStatus),
		PaymentMethod:   rec.PaymentMethod,
		Remarks:         rec.Remarks,
		GeneratedBy:     rec.GeneratedBy,
		CreatedAt:       rec.CreatedAt,
	}
	if rec.PaymentDate != nil {
		d := calendar.FormatDate(*rec.PaymentDate)
		resp.PaymentDate = &d
	}
	return resp
}

func toLineItems(items domain.LineItems) []dto.LineItemInput {
	out := make([]dto.LineItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemInput{Name: it.Name, Amount: it.Amount})
	}
	return out
}
