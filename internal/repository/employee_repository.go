package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository defines the storage of employee accounts
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByCode(ctx context.Context, code string) (*domain.Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Employee, error)
	// Update writes only the named columns of emp; nothing else on the row changes.
	Update(ctx context.Context, emp *domain.Employee, fields ...EmployeeField) error
	List(ctx context.Context, filter EmployeeFilter, page Page) ([]domain.Employee, int64, error)
	Count(ctx context.Context, filter EmployeeFilter) (int64, error)
}

// EmployeeField names a writable employee column.
type EmployeeField string

const (
	FieldFirstName      EmployeeField = "first_name"
	FieldLastName       EmployeeField = "last_name"
	FieldPhone          EmployeeField = "phone"
	FieldAddress        EmployeeField = "address"
	FieldDepartment     EmployeeField = "department"
	FieldDesignation    EmployeeField = "designation"
	FieldEmploymentType EmployeeField = "employment_type"
	FieldDateOfJoining  EmployeeField = "date_of_joining"
	FieldLeaveBalance   EmployeeField = "leave_balance"
	FieldRole           EmployeeField = "role"
	FieldIsActive       EmployeeField = "is_active"
	FieldLastLoginAt    EmployeeField = "last_login_at"
)

// columns expands the field list into table columns, always stamping updated_at.
func columns(fields []EmployeeField) []string {
	cols := make([]string, 0, len(fields)+3)
	for _, f := range fields {
		if f == FieldLeaveBalance {
			cols = append(cols, "leave_balance_paid", "leave_balance_sick", "leave_balance_unpaid")
			continue
		}
		cols = append(cols, string(f))
	}
	return append(cols, "updated_at")
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new repository instance
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(emp).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*domain.Employee, error) {
	return r.first(ctx, "employee_code = ?", strings.TrimSpace(code))
}

func (r *employeeRepository) first(ctx context.Context, query string, args ...any) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Where(query, args...).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Employee, error) {
	var employees []domain.Employee
	if len(ids) == 0 {
		return employees, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee, fields ...EmployeeField) error {
	if len(fields) == 0 {
		return nil
	}
	emp.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(emp).Select(columns(fields)).Updates(emp)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter, page Page) ([]domain.Employee, int64, error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var employees []domain.Employee
	err = filter.scope(r.db.WithContext(ctx).Model(&domain.Employee{})).
		Order("created_at DESC").Order("id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&employees).Error
	return employees, total, err
}

func (r *employeeRepository) Count(ctx context.Context, filter EmployeeFilter) (int64, error) {
	var count int64
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.Employee{})).Count(&count).Error
	return count, err
}
