package repository

import (
	"context"
	"errors"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
)

// PayrollRepository defines the storage of payroll records.
// (employee_id, month, year) is unique.
type PayrollRepository interface {
	Create(ctx context.Context, rec *domain.PayrollRecord) error
	GetByID(ctx context.Context, id int64) (*domain.PayrollRecord, error)
	GetByPeriod(ctx context.Context, employeeID int64, month, year int) (*domain.PayrollRecord, error)
	Update(ctx context.Context, rec *domain.PayrollRecord) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PayrollFilter, page Page) ([]domain.PayrollRecord, int64, error)
}

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new repository instance
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Create(ctx context.Context, rec *domain.PayrollRecord) error {
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *payrollRepository) GetByID(ctx context.Context, id int64) (*domain.PayrollRecord, error) {
	var rec domain.PayrollRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayrollNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *payrollRepository) GetByPeriod(ctx context.Context, employeeID int64, month, year int) (*domain.PayrollRecord, error) {
	var rec domain.PayrollRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayrollNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Update writes the mutable columns only; employee, month and year are never
// rewritten.
func (r *payrollRepository) Update(ctx context.Context, rec *domain.PayrollRecord) error {
	result := r.db.WithContext(ctx).
		Model(rec).
		Select("basic_salary", "allowances", "deductions", "total_allowances", "total_deductions",
			"net_salary", "payment_status", "payment_method", "payment_date", "remarks", "updated_at").
		Updates(rec)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.PayrollRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepository) List(ctx context.Context, filter PayrollFilter, page Page) ([]domain.PayrollRecord, int64, error) {
	var total int64
	if err := filter.scope(r.db.WithContext(ctx).Model(&domain.PayrollRecord{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []domain.PayrollRecord
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.PayrollRecord{})).
		Order("year DESC").Order("month DESC").Order("id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&records).Error
	return records, total, err
}
