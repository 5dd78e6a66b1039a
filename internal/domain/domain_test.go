package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hrms-api/internal/domain"
)

func TestComputeNet(t *testing.T) {
	net, err := domain.ComputeNet(50000,
		domain.LineItems{{Name: "HRA", Amount: 10000}},
		domain.LineItems{{Name: "PF", Amount: 5000}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net != 55000 {
		t.Errorf("expected 55000, got %v", net)
	}
}

func TestComputeNet_Negative(t *testing.T) {
	_, err := domain.ComputeNet(1000, nil, domain.LineItems{{Name: "Loan", Amount: 1500}})
	if !errors.Is(err, domain.ErrNegativeNet) {
		t.Errorf("expected ErrNegativeNet, got %v", err)
	}
}

func TestComputeNet_NegativeLineItem(t *testing.T) {
	_, err := domain.ComputeNet(1000, domain.LineItems{{Name: "Bonus", Amount: -1}}, nil)
	if !errors.Is(err, domain.ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestNewPayrollRecord_Totals(t *testing.T) {
	rec, err := domain.NewPayrollRecord(1, 3, 2024, 30000.5,
		domain.LineItems{{Name: "HRA", Amount: 2000.25}, {Name: "Travel", Amount: 500}},
		domain.LineItems{{Name: "Tax", Amount: 1000.75}},
		9,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TotalAllowances != 2500.25 {
		t.Errorf("expected total allowances 2500.25, got %v", rec.TotalAllowances)
	}
	if rec.TotalDeductions != 1000.75 {
		t.Errorf("expected total deductions 1000.75, got %v", rec.TotalDeductions)
	}
	if rec.NetSalary != 31500 {
		t.Errorf("expected net 31500, got %v", rec.NetSalary)
	}
	if rec.PaymentStatus != domain.PaymentPending {
		t.Errorf("expected pending payment status, got %s", rec.PaymentStatus)
	}
}

func TestSetAmounts_KeepsRecordOnError(t *testing.T) {
	rec, _ := domain.NewPayrollRecord(1, 3, 2024, 1000, nil, nil, 9)

	err := rec.SetAmounts(1000, nil, domain.LineItems{{Name: "Fine", Amount: 5000}})
	if !errors.Is(err, domain.ErrNegativeNet) {
		t.Fatalf("expected ErrNegativeNet, got %v", err)
	}
	if rec.NetSalary != 1000 || len(rec.Deductions) != 0 {
		t.Errorf("record changed after failed update: %+v", rec)
	}
}

func TestLineItems_ValueScan(t *testing.T) {
	items := domain.LineItems{{Name: "HRA", Amount: 10}}
	v, err := items.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scanned domain.LineItems
	if err := scanned.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scanned) != 1 || scanned[0].Name != "HRA" || scanned[0].Amount != 10 {
		t.Errorf("unexpected scan result: %+v", scanned)
	}

	if err := scanned.Scan(nil); err != nil || len(scanned) != 0 {
		t.Errorf("expected empty items from NULL, got %+v (%v)", scanned, err)
	}
}

func TestHoursWorked(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	if got := domain.HoursWorked(in, in.Add(8*time.Hour+20*time.Minute)); got != 8.33 {
		t.Errorf("expected 8.33, got %v", got)
	}
	if got := domain.HoursWorked(in, in.Add(-time.Hour)); got != 0 {
		t.Errorf("expected clock skew to clamp to 0, got %v", got)
	}
}

func TestNewAttendanceRecord_DerivesHours(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	in := date.Add(9 * time.Hour)
	out := date.Add(17*time.Hour + 30*time.Minute)

	rec := domain.NewAttendanceRecord(1, date, domain.AttendancePresent, &in, &out, "")
	if rec.HoursWorked != 8.5 {
		t.Errorf("expected 8.5 hours, got %v", rec.HoursWorked)
	}

	rec = domain.NewAttendanceRecord(1, date, domain.AttendancePresent, &in, nil, "")
	if rec.HoursWorked != 0 {
		t.Errorf("expected 0 hours without check-out, got %v", rec.HoursWorked)
	}
}

func TestLeaveBalance_Consume(t *testing.T) {
	b := domain.LeaveBalance{Paid: 2, Sick: 1}

	b, err := b.Consume(domain.LeavePaid, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Paid != 0.5 {
		t.Errorf("expected 0.5 paid days left, got %v", b.Paid)
	}

	if _, err := b.Consume(domain.LeaveSick, 2); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}

	b, err = b.Consume(domain.LeaveUnpaid, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Unpaid != 3 {
		t.Errorf("expected 3 unpaid days taken, got %v", b.Unpaid)
	}
}

func TestKindOf(t *testing.T) {
	if domain.KindOf(domain.ErrOverlap) != domain.KindRejected {
		t.Errorf("expected rejected kind for overlap")
	}
	if domain.KindOf(errors.New("boom")) != 0 {
		t.Errorf("expected zero kind for plain errors")
	}
}
