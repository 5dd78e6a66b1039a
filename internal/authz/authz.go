// Package authz is the single role gate consulted by every service operation.
package authz

import (
	"github.com/hrms-api/internal/domain"
)

// Operation names a gated action.
type Operation string

const (
	CheckIn           Operation = "attendance.check_in"
	CheckOut          Operation = "attendance.check_out"
	ViewOwnAttendance Operation = "attendance.read_own"
	ViewAllAttendance Operation = "attendance.read_all"
	UpsertAttendance  Operation = "attendance.write"
	ExportAttendance  Operation = "attendance.export"

	ApplyLeave     Operation = "leave.apply"
	CancelLeave    Operation = "leave.cancel"
	ViewOwnLeaves  Operation = "leave.read_own"
	ViewAllLeaves  Operation = "leave.read_all"
	DecideLeave    Operation = "leave.decide"
	ViewOwnBalance Operation = "leave.balance_own"

	ViewOwnPayroll  Operation = "payroll.read_own"
	ViewAllPayroll  Operation = "payroll.read_all"
	GeneratePayroll Operation = "payroll.generate"
	UpdatePayroll   Operation = "payroll.update"
	DeletePayroll   Operation = "payroll.delete"

	ViewOwnProfile     Operation = "profile.read"
	UpdateOwnProfile   Operation = "profile.write"
	ViewDashboard      Operation = "dashboard.read"
	ViewEmployees      Operation = "employees.read"
	UpdateEmployee     Operation = "employees.write"
	ChangeRole         Operation = "employees.role"
	DeactivateEmployee Operation = "employees.deactivate"
)

var (
	anyRole = []domain.Role{domain.RoleEmployee, domain.RoleHR, domain.RoleAdmin}
	staff   = []domain.Role{domain.RoleHR, domain.RoleAdmin}
	admin   = []domain.Role{domain.RoleAdmin}
)

var table = map[Operation][]domain.Role{
	CheckIn:           anyRole,
	CheckOut:          anyRole,
	ViewOwnAttendance: anyRole,
	ViewAllAttendance: staff,
	UpsertAttendance:  staff,
	ExportAttendance:  staff,

	ApplyLeave:     anyRole,
	CancelLeave:    anyRole,
	ViewOwnLeaves:  anyRole,
	ViewAllLeaves:  staff,
	DecideLeave:    staff,
	ViewOwnBalance: anyRole,

	ViewOwnPayroll:  anyRole,
	ViewAllPayroll:  staff,
	GeneratePayroll: staff,
	UpdatePayroll:   staff,
	DeletePayroll:   staff,

	ViewOwnProfile:     anyRole,
	UpdateOwnProfile:   anyRole,
	ViewDashboard:      anyRole,
	ViewEmployees:      staff,
	UpdateEmployee:     staff,
	ChangeRole:         admin,
	DeactivateEmployee: admin,
}

// Allowed reports whether role may perform op. Unknown operations and roles
// are denied.
func Allowed(role domain.Role, op Operation) bool {
	for _, r := range table[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns domain.ErrForbidden unless the actor may perform op.
func Authorize(actor domain.Actor, op Operation) error {
	if actor.EmployeeID == 0 {
		return domain.ErrUnauthenticated
	}
	if !Allowed(actor.Role, op) {
		return domain.ErrForbidden
	}
	return nil
}

// Operations lists every gated operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	return ops
}
