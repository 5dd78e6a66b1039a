package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/metrics"
	"github.com/hrms-api/internal/report"
	"github.com/hrms-api/internal/repository"
)

// PayrollList is one page of payroll records with totals over that page.
type PayrollList struct {
	Records   []domain.PayrollRecord
	Employees map[int64]domain.Employee
	Totals    dto.PayrollTotals
	Total     int64
	Page      repository.Page
}

// PayrollService defines the payroll operations
type PayrollService interface {
	Generate(ctx context.Context, actor domain.Actor, req *dto.GeneratePayrollRequest) (*domain.PayrollRecord, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *dto.UpdatePayrollRequest) (*domain.PayrollRecord, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.PayrollRecord, error)
	ListMine(ctx context.Context, actor domain.Actor, query *dto.PayrollQuery) (*PayrollList, error)
	ListAll(ctx context.Context, actor domain.Actor, query *dto.PayrollQuery) (*PayrollList, error)
	Payslip(ctx context.Context, actor domain.Actor, id int64) ([]byte, error)
}

type payrollService struct {
	payrollRepo repository.PayrollRepository
	empRepo     repository.EmployeeRepository
	clock       *calendar.Clock
	orgName     string
}

// NewPayrollService creates a new service instance
func NewPayrollService(payrollRepo repository.PayrollRepository, empRepo repository.EmployeeRepository, clock *calendar.Clock, orgName string) PayrollService {
	return &payrollService{
		payrollRepo: payrollRepo,
		empRepo:     empRepo,
		clock:       clock,
		orgName:     orgName,
	}
}

func (s *payrollService) Generate(ctx context.Context, actor domain.Actor, req *dto.GeneratePayrollRequest) (*domain.PayrollRecord, error) {
	if err := authz.Authorize(actor, authz.GeneratePayroll); err != nil {
		return nil, err
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, domain.NewValidationError("month must be between 1 and 12")
	}

	emp, err := s.empRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.IsActive {
		return nil, domain.ErrEmployeeInactive
	}

	rec, err := domain.NewPayrollRecord(req.EmployeeID, req.Month, req.Year, req.BasicSalary,
		lineItems(req.Allowances), lineItems(req.Deductions), actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" {
		rec.PaymentMethod = req.PaymentMethod
	}
	rec.Remarks = strings.TrimSpace(req.Remarks)

	if err := s.payrollRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrDuplicatePeriod
		}
		return nil, fmt.Errorf("create payroll: %w", err)
	}

	metrics.PayrollEvents.WithLabelValues("generate").Inc()
	return rec, nil
}

func (s *payrollService) Update(ctx context.Context, actor domain.Actor, id int64, req *dto.UpdatePayrollRequest) (*domain.PayrollRecord, error) {
	if err := authz.Authorize(actor, authz.UpdatePayroll); err != nil {
		return nil, err
	}

	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Identity fields may be echoed back unchanged but never altered.
	if (req.EmployeeID != nil && *req.EmployeeID != rec.EmployeeID) ||
		(req.Month != nil && *req.Month != rec.Month) ||
		(req.Year != nil && *req.Year != rec.Year) {
		return nil, domain.ErrImmutableField
	}

	if req.BasicSalary != nil || req.Allowances != nil || req.Deductions != nil {
		basic := rec.BasicSalary
		allowances := rec.Allowances
		deductions := rec.Deductions
		if req.BasicSalary != nil {
			basic = *req.BasicSalary
		}
		if req.Allowances != nil {
			allowances = lineItems(*req.Allowances)
		}
		if req.Deductions != nil {
			deductions = lineItems(*req.Deductions)
		}
		if err := rec.SetAmounts(basic, allowances, deductions); err != nil {
			return nil, err
		}
	}

	if req.PaymentStatus != nil {
		status := domain.PaymentStatus(*req.PaymentStatus)
		if !status.Valid() {
			return nil, domain.NewValidationError("payment status must be pending, paid or failed")
		}
		rec.PaymentStatus = status
	}
	if req.PaymentMethod != nil {
		rec.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentDate != nil {
		if *req.PaymentDate == "" {
			rec.PaymentDate = nil
		} else {
			d, err := calendar.ParseDate(*req.PaymentDate)
			if err != nil {
				return nil, err
			}
			rec.PaymentDate = &d
		}
	}
	if req.Remarks != nil {
		rec.Remarks = strings.TrimSpace(*req.Remarks)
	}

	if err := s.payrollRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	metrics.PayrollEvents.WithLabelValues("update").Inc()
	return rec, nil
}

func (s *payrollService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := authz.Authorize(actor, authz.DeletePayroll); err != nil {
		return err
	}
	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.PayrollEvents.WithLabelValues("delete").Inc()
	return nil
}

// Get returns a record to its owner or to staff. Other callers see it as
// missing.
func (s *payrollService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.PayrollRecord, error) {
	if err := authz.Authorize(actor, authz.ViewOwnPayroll); err != nil {
		return nil, err
	}

	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.EmployeeID != actor.EmployeeID && !authz.Allowed(actor.Role, authz.ViewAllPayroll) {
		return nil, domain.ErrPayrollNotFound
	}
	return rec, nil
}

func (s *payrollService) ListMine(ctx context.Context, actor domain.Actor, query *dto.PayrollQuery) (*PayrollList, error) {
	if err := authz.Authorize(actor, authz.ViewOwnPayroll); err != nil {
		return nil, err
	}

	scoped := *query
	scoped.EmployeeID = &actor.EmployeeID
	return s.list(ctx, &scoped)
}

func (s *payrollService) ListAll(ctx context.Context, actor domain.Actor, query *dto.PayrollQuery) (*PayrollList, error) {
	if err := authz.Authorize(actor, authz.ViewAllPayroll); err != nil {
		return nil, err
	}
	return s.list(ctx, query)
}

func (s *payrollService) Payslip(ctx context.Context, actor domain.Actor, id int64) ([]byte, error) {
	rec, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	emp, err := s.empRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return nil, err
	}

	return report.RenderPayslip(report.Payslip{
		OrgName:  s.orgName,
		Employee: *emp,
		Record:   *rec,
		Issued:   s.clock.Now(),
	})
}

func (s *payrollService) list(ctx context.Context, query *dto.PayrollQuery) (*PayrollList, error) {
	filter := repository.PayrollFilter{
		EmployeeID: query.EmployeeID,
		Month:      query.Month,
		Year:       query.Year,
	}
	if query.PaymentStatus != "" {
		status := domain.PaymentStatus(query.PaymentStatus)
		if !status.Valid() {
			return nil, domain.NewValidationError("payment status must be pending, paid or failed")
		}
		filter.PaymentStatus = &status
	}
	page := Page(query.Page, query.Limit)

	records, total, err := s.payrollRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list payroll: %w", err)
	}

	ids := make([]int64, len(records))
	var totals dto.PayrollTotals
	for i, rec := range records {
		ids[i] = rec.EmployeeID
		totals.TotalBasic += rec.BasicSalary
		totals.TotalAllowances += rec.TotalAllowances
		totals.TotalDeductions += rec.TotalDeductions
		totals.TotalNetSalary += rec.NetSalary
	}
	totals.TotalBasic = domain.Round2(totals.TotalBasic)
	totals.TotalAllowances = domain.Round2(totals.TotalAllowances)
	totals.TotalDeductions = domain.Round2(totals.TotalDeductions)
	totals.TotalNetSalary = domain.Round2(totals.TotalNetSalary)

	employees, err := loadEmployees(ctx, s.empRepo, ids)
	if err != nil {
		return nil, err
	}

	return &PayrollList{
		Records:   records,
		Employees: employees,
		Totals:    totals,
		Total:     total,
		Page:      page,
	}, nil
}

func lineItems(in []dto.LineItemInput) domain.LineItems {
	items := make(domain.LineItems, 0, len(in))
	for _, item := range in {
		items = append(items, domain.LineItem{Name: strings.TrimSpace(item.Name), Amount: item.Amount})
	}
	return items
}
