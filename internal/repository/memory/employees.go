package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

type employees struct{ s *Store }

func copyEmployee(e *domain.Employee) *domain.Employee {
	c := *e
	c.DateOfJoining = cloneTime(e.DateOfJoining)
	c.LastLoginAt = cloneTime(e.LastLoginAt)
	return &c
}

func (r *employees) Create(_ context.Context, emp *domain.Employee) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	emp.Email = normalizeEmail(emp.Email)
	for _, existing := range s.employees {
		if existing.Email == emp.Email || existing.EmployeeCode == emp.EmployeeCode {
			return domain.ErrDuplicateKey
		}
	}

	s.nextEmployee++
	now := s.now()
	emp.ID = s.nextEmployee
	emp.CreatedAt = now
	emp.UpdatedAt = now
	s.employees[emp.ID] = copyEmployee(emp)
	return nil
}

func (r *employees) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return copyEmployee(emp), nil
}

func (r *employees) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	for _, emp := range s.employees {
		if emp.Email == email {
			return copyEmployee(emp), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *employees) GetByCode(_ context.Context, code string) (*domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range s.employees {
		if emp.EmployeeCode == code {
			return copyEmployee(emp), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *employees) GetByIDs(_ context.Context, ids []int64) ([]domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		if emp, ok := s.employees[id]; ok {
			result = append(result, *copyEmployee(emp))
		}
	}
	return result, nil
}

func (r *employees) Update(_ context.Context, emp *domain.Employee, fields ...repository.EmployeeField) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.employees[emp.ID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	if len(fields) == 0 {
		return nil
	}
	for _, f := range fields {
		switch f {
		case repository.FieldFirstName:
			stored.FirstName = emp.FirstName
		case repository.FieldLastName:
			stored.LastName = emp.LastName
		case repository.FieldPhone:
			stored.Phone = emp.Phone
		case repository.FieldAddress:
			stored.Address = emp.Address
		case repository.FieldDepartment:
			stored.Department = emp.Department
		case repository.FieldDesignation:
			stored.Designation = emp.Designation
		case repository.FieldEmploymentType:
			stored.EmploymentType = emp.EmploymentType
		case repository.FieldDateOfJoining:
			stored.DateOfJoining = cloneTime(emp.DateOfJoining)
		case repository.FieldLeaveBalance:
			stored.LeaveBalance = emp.LeaveBalance
		case repository.FieldRole:
			stored.Role = emp.Role
		case repository.FieldIsActive:
			stored.IsActive = emp.IsActive
		case repository.FieldLastLoginAt:
			stored.LastLoginAt = cloneTime(emp.LastLoginAt)
		default:
			return fmt.Errorf("unknown employee field %q", f)
		}
	}
	stored.UpdatedAt = s.now()
	emp.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *employees) List(_ context.Context, filter repository.EmployeeFilter, page repository.Page) ([]domain.Employee, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Employee, 0)
	for _, emp := range s.employees {
		if filter.Matches(emp) {
			matched = append(matched, *copyEmployee(emp))
		}
	}
	sortByCreated(matched,
		func(e domain.Employee) time.Time { return e.CreatedAt },
		func(e domain.Employee) int64 { return e.ID })

	start, end := paginate(len(matched), page)
	return matched[start:end], int64(len(matched)), nil
}

func (r *employees) Count(_ context.Context, filter repository.EmployeeFilter) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, emp := range s.employees {
		if filter.Matches(emp) {
			n++
		}
	}
	return n, nil
}
