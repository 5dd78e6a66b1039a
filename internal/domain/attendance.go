package domain

import (
	"math"
	"time"
)

// HoursWorked returns the hours between check-in and check-out rounded to two
// decimals. A check-out earlier than the check-in yields 0.
func HoursWorked(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

// NewAttendanceRecord builds a record for the given calendar date and derives
// HoursWorked from the check-in/check-out pair when both are set.
func NewAttendanceRecord(employeeID int64, date time.Time, status AttendanceStatus, checkIn, checkOut *time.Time, note string) *AttendanceRecord {
	rec := &AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Note:       note,
	}
	if checkIn != nil && checkOut != nil {
		rec.HoursWorked = HoursWorked(*checkIn, *checkOut)
	}
	return rec
}

// Valid reports whether s is one of the known attendance statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return true
	}
	return false
}
