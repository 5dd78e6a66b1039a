package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
	"github.com/hrms-api/internal/repository/memory"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Employee{}, &domain.AttendanceRecord{}, &domain.LeaveRequest{}, &domain.PayrollRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createEmployee(t *testing.T, repo repository.EmployeeRepository, code string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{
		EmployeeCode: code,
		Email:        code + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleEmployee,
		FirstName:    "Test",
		IsActive:     true,
		LeaveBalance: domain.LeaveBalance{Paid: 2, Sick: 1},
	}
	if err := repo.Create(context.Background(), emp); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return emp
}

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	repo := repository.NewEmployeeRepository(openTestDB(t))
	createEmployee(t, repo, "EMP001")

	dup := &domain.Employee{EmployeeCode: "EMP002", Email: "EMP001@example.com", PasswordHash: "x", Role: domain.RoleEmployee, FirstName: "Dup", IsActive: true}
	err := repo.Create(context.Background(), dup)
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestEmployeeRepository_ListSearch(t *testing.T) {
	repo := repository.NewEmployeeRepository(openTestDB(t))
	ctx := context.Background()
	createEmployee(t, repo, "alpha")
	createEmployee(t, repo, "beta")

	list, total, err := repo.List(ctx, repository.EmployeeFilter{Search: "ALP"}, repository.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 result, got total=%d len=%d", total, len(list))
	}
	if list[0].EmployeeCode != "alpha" {
		t.Errorf("expected alpha, got %s", list[0].EmployeeCode)
	}
}

func TestAttendanceRepository_UniquePerDay(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	day := date(2024, 3, 4)
	first := domain.NewAttendanceRecord(emp.ID, day, domain.AttendanceAbsent, nil, nil, "")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := domain.NewAttendanceRecord(emp.ID, day, domain.AttendancePresent, nil, nil, "")
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestAttendanceRepository_CheckInCheckOutOnce(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	day := date(2024, 3, 4)
	rec := domain.NewAttendanceRecord(emp.ID, day, domain.AttendanceAbsent, nil, nil, "")
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := time.Date(2024, 3, 4, 4, 0, 0, 0, time.UTC)
	if err := repo.SetCheckIn(ctx, rec.ID, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SetCheckIn(ctx, rec.ID, in); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}

	out := in.Add(8 * time.Hour)
	if err := repo.SetCheckOut(ctx, rec.ID, out, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SetCheckOut(ctx, rec.ID, out, 8); !errors.Is(err, domain.ErrAlreadyCheckedOut) {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}

	stored, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.AttendancePresent {
		t.Errorf("expected present, got %s", stored.Status)
	}
	if stored.HoursWorked != 8 {
		t.Errorf("expected 8 hours, got %v", stored.HoursWorked)
	}
}

func TestAttendanceRepository_UpsertOverwrites(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	day := date(2024, 3, 4)
	rec := domain.NewAttendanceRecord(emp.ID, day, domain.AttendanceAbsent, nil, nil, "sick")
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstID := rec.ID

	rec = domain.NewAttendanceRecord(emp.ID, day, domain.AttendanceLeave, nil, nil, "approved leave")
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != firstID {
		t.Errorf("expected id %d, got %d", firstID, rec.ID)
	}

	list, total, err := repo.List(ctx, repository.AttendanceFilter{EmployeeID: &emp.ID}, repository.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", total)
	}
	if list[0].Status != domain.AttendanceLeave || list[0].Note != "approved leave" {
		t.Errorf("expected overwritten record, got %+v", list[0])
	}
}

func TestAttendanceRepository_CountByStatus(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	statuses := []domain.AttendanceStatus{domain.AttendancePresent, domain.AttendancePresent, domain.AttendanceAbsent}
	for i, status := range statuses {
		rec := domain.NewAttendanceRecord(emp.ID, date(2024, 3, 4+i), status, nil, nil, "")
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	from := date(2024, 3, 5)
	counts, err := repo.CountByStatus(ctx, repository.AttendanceFilter{EmployeeID: &emp.ID, From: &from})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[domain.AttendancePresent] != 1 || counts[domain.AttendanceAbsent] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestLeaveRepository_DecideChargesBalanceOnce(t *testing.T) {
	db := openTestDB(t)
	employees := repository.NewEmployeeRepository(db)
	emp := createEmployee(t, employees, "EMP001")
	repo := repository.NewLeaveRepository(db)
	ctx := context.Background()

	req := &domain.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       domain.LeavePaid,
		StartDate:  date(2024, 3, 4),
		EndDate:    date(2024, 3, 5),
		Days:       2,
		Reason:     "family",
		Status:     domain.LeavePending,
	}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decision := repository.LeaveDecision{
		Status:     domain.LeaveApproved,
		ReviewerID: 99,
		At:         time.Now(),
		Type:       req.Type,
		Days:       req.Days,
		EmployeeID: emp.ID,
	}
	if err := repo.Decide(ctx, req.ID, decision); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Decide(ctx, req.ID, decision); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}

	stored, _ := employees.GetByID(ctx, emp.ID)
	if stored.LeaveBalance.Paid != 0 {
		t.Errorf("expected paid balance 0, got %v", stored.LeaveBalance.Paid)
	}
}

func TestEmployeeRepository_UpdateKeepsConcurrentBalanceCharge(t *testing.T) {
	db := openTestDB(t)
	store := memory.NewStore()

	backends := []struct {
		name      string
		employees repository.EmployeeRepository
		leaves    repository.LeaveRepository
	}{
		{"gorm", repository.NewEmployeeRepository(db), repository.NewLeaveRepository(db)},
		{"memory", store.Employees(), store.Leaves()},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			emp := createEmployee(t, b.employees, "EMP001")

			stale, err := b.employees.GetByID(ctx, emp.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			req := &domain.LeaveRequest{
				EmployeeID: emp.ID,
				Type:       domain.LeavePaid,
				StartDate:  date(2024, 3, 4),
				EndDate:    date(2024, 3, 5),
				Days:       2,
				Reason:     "family",
				Status:     domain.LeavePending,
			}
			if err := b.leaves.Create(ctx, req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = b.leaves.Decide(ctx, req.ID, repository.LeaveDecision{
				Status:     domain.LeaveApproved,
				ReviewerID: 99,
				At:         time.Now(),
				Type:       req.Type,
				Days:       req.Days,
				EmployeeID: emp.ID,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			now := time.Now()
			stale.Role = domain.RoleHR
			stale.IsActive = false
			stale.LastLoginAt = &now
			stale.Designation = "not written"
			if err := b.employees.Update(ctx, stale, repository.FieldRole, repository.FieldIsActive, repository.FieldLastLoginAt); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, err := b.employees.GetByID(ctx, emp.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stored.LeaveBalance.Paid != 0 {
				t.Errorf("expected charged paid balance 0, got %v", stored.LeaveBalance.Paid)
			}
			if stored.Role != domain.RoleHR || stored.IsActive || stored.LastLoginAt == nil {
				t.Errorf("expected role, active flag and last login to be written, got %+v", stored)
			}
			if stored.Designation != "" {
				t.Errorf("expected designation untouched, got %q", stored.Designation)
			}
		})
	}
}

func TestEmployeeRepository_UpdateMissing(t *testing.T) {
	repo := repository.NewEmployeeRepository(openTestDB(t))

	err := repo.Update(context.Background(), &domain.Employee{ID: 42, Role: domain.RoleHR}, repository.FieldRole)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestLeaveRepository_DecideInsufficientBalanceRollsBack(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewLeaveRepository(db)
	ctx := context.Background()

	req := &domain.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       domain.LeaveSick,
		StartDate:  date(2024, 3, 4),
		EndDate:    date(2024, 3, 6),
		Days:       3,
		Reason:     "flu",
		Status:     domain.LeavePending,
	}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.Decide(ctx, req.ID, repository.LeaveDecision{
		Status:     domain.LeaveApproved,
		ReviewerID: 99,
		At:         time.Now(),
		Type:       req.Type,
		Days:       req.Days,
		EmployeeID: emp.ID,
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, req.ID)
	if stored.Status != domain.LeavePending {
		t.Errorf("expected request to stay pending, got %s", stored.Status)
	}
}

func TestLeaveRepository_DeleteIfPending(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewLeaveRepository(db)
	ctx := context.Background()

	req := &domain.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       domain.LeaveUnpaid,
		StartDate:  date(2024, 3, 4),
		EndDate:    date(2024, 3, 4),
		Days:       1,
		Reason:     "errand",
		Status:     domain.LeaveRejected,
	}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteIfPending(ctx, req.ID); !errors.Is(err, domain.ErrNotPending) {
		t.Errorf("expected ErrNotPending, got %v", err)
	}
}

func TestPayrollRepository_DuplicatePeriod(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewPayrollRepository(db)
	ctx := context.Background()

	first, err := domain.NewPayrollRecord(emp.ID, 3, 2024, 50000, nil, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, _ := domain.NewPayrollRecord(emp.ID, 3, 2024, 60000, nil, nil, 1)
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestPayrollRepository_UpdateKeepsLineItems(t *testing.T) {
	db := openTestDB(t)
	emp := createEmployee(t, repository.NewEmployeeRepository(db), "EMP001")
	repo := repository.NewPayrollRepository(db)
	ctx := context.Background()

	rec, _ := domain.NewPayrollRecord(emp.ID, 3, 2024, 50000, nil, nil, 1)
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowances := domain.LineItems{{Name: "HRA", Amount: 10000}}
	deductions := domain.LineItems{{Name: "PF", Amount: 5000}}
	if err := rec.SetAmounts(rec.BasicSalary, allowances, deductions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.GetByPeriod(ctx, emp.ID, 3, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.NetSalary != 55000 {
		t.Errorf("expected net 55000, got %v", stored.NetSalary)
	}
	if len(stored.Allowances) != 1 || stored.Allowances[0].Name != "HRA" {
		t.Errorf("unexpected allowances: %+v", stored.Allowances)
	}
}
