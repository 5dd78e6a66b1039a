// Package report renders payslips and attendance exports.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/jung-kurt/gofpdf/v2"
)

// Payslip is the data printed on one payslip.
type Payslip struct {
	OrgName  string
	Employee domain.Employee
	Record   domain.PayrollRecord
	Issued   time.Time
}

// RenderPayslip renders p as a single-page A4 PDF.
func RenderPayslip(p Payslip) ([]byte, error) {
	rec := p.Record
	period := time.Date(rec.Year, time.Month(rec.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, p.OrgName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 6, fmt.Sprintf("Payslip for %s", period.Format("January 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Issued: %s", p.Issued.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Employee", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", p.Employee.FullName()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Code: %s", p.Employee.EmployeeCode), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Department: %s", p.Employee.Department), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Designation: %s", p.Employee.Designation), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	lineTable(pdf, "Earnings", append(domain.LineItems{{Name: "Basic salary", Amount: rec.BasicSalary}}, rec.Allowances...))
	lineTable(pdf, "Deductions", rec.Deductions)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Total allowances", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, amount(rec.TotalAllowances), "1", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Total deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, amount(rec.TotalDeductions), "1", 1, "R", false, 0, "")

	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(95, 10, "Net salary", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 10, amount(rec.NetSalary), "1", 1, "R", true, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	status := fmt.Sprintf("Payment: %s via %s", rec.PaymentStatus, rec.PaymentMethod)
	if rec.PaymentDate != nil {
		status += fmt.Sprintf(" on %s", rec.PaymentDate.Format("02-Jan-2006"))
	}
	pdf.CellFormat(190, 6, status, "", 1, "L", false, 0, "")
	if rec.Remarks != "" {
		pdf.MultiCell(190, 6, "Remarks: "+rec.Remarks, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func lineTable(pdf *gofpdf.Fpdf, title string, items domain.LineItems) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, title, "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(items) == 0 {
		pdf.CellFormat(190, 6, "None", "1", 1, "C", false, 0, "")
	}
	for _, item := range items {
		pdf.CellFormat(140, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, amount(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func amount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
