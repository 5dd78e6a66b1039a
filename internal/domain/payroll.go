package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// LineItem is a named allowance or deduction.
type LineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// LineItems is an ordered list of line items stored as a JSON column.
type LineItems []LineItem

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported line items source %T", src)
	}
	return json.Unmarshal(data, l)
}

// Total sums the amounts.
func (l LineItems) Total() float64 {
	var sum float64
	for _, item := range l {
		sum += item.Amount
	}
	return Round2(sum)
}

func (l LineItems) hasNegative() bool {
	for _, item := range l {
		if item.Amount < 0 {
			return true
		}
	}
	return false
}

// ComputeNet returns basic plus allowances minus deductions. A negative result is
// rejected with ErrNegativeNet.
func ComputeNet(basic float64, allowances, deductions LineItems) (float64, error) {
	if basic < 0 || allowances.hasNegative() || deductions.hasNegative() {
		return 0, ErrNegativeAmount
	}
	net := Round2(basic + allowances.Total() - deductions.Total())
	if net < 0 {
		return 0, ErrNegativeNet
	}
	return net, nil
}

// NewPayrollRecord builds a pending payroll record with its totals derived.
func NewPayrollRecord(employeeID int64, month, year int, basic float64, allowances, deductions LineItems, generatedBy int64) (*PayrollRecord, error) {
	rec := &PayrollRecord{
		EmployeeID:    employeeID,
		Month:         month,
		Year:          year,
		PaymentStatus: PaymentPending,
		PaymentMethod: "bank-transfer",
		GeneratedBy:   generatedBy,
	}
	if err := rec.SetAmounts(basic, allowances, deductions); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetAmounts replaces the salary components and recomputes every total.
// The record is left untouched on error.
func (p *PayrollRecord) SetAmounts(basic float64, allowances, deductions LineItems) error {
	if allowances == nil {
		allowances = LineItems{}
	}
	if deductions == nil {
		deductions = LineItems{}
	}
	net, err := ComputeNet(basic, allowances, deductions)
	if err != nil {
		return err
	}
	p.BasicSalary = Round2(basic)
	p.Allowances = allowances
	p.Deductions = deductions
	p.TotalAllowances = allowances.Total()
	p.TotalDeductions = deductions.Total()
	p.NetSalary = net
	return nil
}

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Round2 rounds a money or day amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
