package memory

import (
	"context"
	"sort"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

type payroll struct{ s *Store }

func copyPayroll(rec *domain.PayrollRecord) *domain.PayrollRecord {
	c := *rec
	c.Allowances = append(domain.LineItems(nil), rec.Allowances...)
	c.Deductions = append(domain.LineItems(nil), rec.Deductions...)
	c.PaymentDate = cloneTime(rec.PaymentDate)
	return &c
}

func (r *payroll) Create(_ context.Context, rec *domain.PayrollRecord) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.payroll {
		if existing.EmployeeID == rec.EmployeeID && existing.Month == rec.Month && existing.Year == rec.Year {
			return domain.ErrDuplicateKey
		}
	}
	s.nextPayroll++
	now := s.now()
	rec.ID = s.nextPayroll
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.payroll[rec.ID] = copyPayroll(rec)
	return nil
}

func (r *payroll) GetByID(_ context.Context, id int64) (*domain.PayrollRecord, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.payroll[id]
	if !ok {
		return nil, domain.ErrPayrollNotFound
	}
	return copyPayroll(rec), nil
}

func (r *payroll) GetByPeriod(_ context.Context, employeeID int64, month, year int) (*domain.PayrollRecord, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.payroll {
		if rec.EmployeeID == employeeID && rec.Month == month && rec.Year == year {
			return copyPayroll(rec), nil
		}
	}
	return nil, domain.ErrPayrollNotFound
}

func (r *payroll) Update(_ context.Context, rec *domain.PayrollRecord) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.payroll[rec.ID]
	if !ok {
		return domain.ErrPayrollNotFound
	}
	updated := copyPayroll(rec)
	updated.EmployeeID = existing.EmployeeID
	updated.Month = existing.Month
	updated.Year = existing.Year
	updated.GeneratedBy = existing.GeneratedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.payroll[rec.ID] = updated
	rec.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *payroll) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payroll[id]; !ok {
		return domain.ErrPayrollNotFound
	}
	delete(s.payroll, id)
	return nil
}

func (r *payroll) List(_ context.Context, filter repository.PayrollFilter, page repository.Page) ([]domain.PayrollRecord, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.PayrollRecord, 0)
	for _, rec := range s.payroll {
		if filter.Matches(rec) {
			matched = append(matched, *copyPayroll(rec))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.ID > b.ID
	})

	start, end := paginate(len(matched), page)
	return matched[start:end], int64(len(matched)), nil
}
