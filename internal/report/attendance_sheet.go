package report

import (
	"fmt"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Attendance"

var attendanceHeaders = []string{"Date", "Employee Code", "Name", "Department", "Status", "Check In", "Check Out", "Hours Worked", "Note"}

// AttendanceSheet renders attendance rows as an XLSX workbook. Check-in and
// check-out times are printed in loc.
func AttendanceSheet(records []domain.AttendanceRecord, employees map[int64]domain.Employee, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range attendanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(attendanceSheet, cell, header)
	}

	for i, rec := range records {
		row := i + 2
		emp := employees[rec.EmployeeID]
		values := []any{
			rec.Date.Format("2006-01-02"),
			emp.EmployeeCode,
			emp.FullName(),
			emp.Department,
			string(rec.Status),
			clockTime(rec.CheckIn, loc),
			clockTime(rec.CheckOut, loc),
			rec.HoursWorked,
			rec.Note,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(attendanceSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func clockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}
