package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository defines the storage of attendance records.
// (employee_id, date) is unique.
type AttendanceRepository interface {
	// Create inserts a new record, failing with domain.ErrDuplicateKey when
	// the employee already has a record for that date.
	Create(ctx context.Context, rec *domain.AttendanceRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.AttendanceRecord, error)
	// SetCheckIn records a check-in on a record that has none yet.
	SetCheckIn(ctx context.Context, id int64, at time.Time) error
	// SetCheckOut records a check-out on a record that has none yet.
	SetCheckOut(ctx context.Context, id int64, at time.Time, hoursWorked float64) error
	// Upsert inserts the record or overwrites the one with the same key.
	Upsert(ctx context.Context, rec *domain.AttendanceRecord) error
	List(ctx context.Context, filter AttendanceFilter, page Page) ([]domain.AttendanceRecord, int64, error)
	CountByStatus(ctx context.Context, filter AttendanceFilter) (map[domain.AttendanceStatus]int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new repository instance
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) SetCheckIn(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("id = ? AND check_in IS NULL", id).
		Updates(map[string]any{
			"check_in":   at,
			"status":     domain.AttendancePresent,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyCheckedIn
	}
	return nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id int64, at time.Time, hoursWorked float64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("id = ? AND check_in IS NOT NULL AND check_out IS NULL", id).
		Updates(map[string]any{
			"check_out":    at,
			"hours_worked": hoursWorked,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyCheckedOut
	}
	return nil
}

func (r *attendanceRepository) Upsert(ctx context.Context, rec *domain.AttendanceRecord) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "check_in", "check_out", "hours_worked", "note", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return translateError(err)
	}

	stored, err := r.GetByEmployeeAndDate(ctx, rec.EmployeeID, rec.Date)
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter, page Page) ([]domain.AttendanceRecord, int64, error) {
	var total int64
	if err := filter.scope(r.db.WithContext(ctx).Model(&domain.AttendanceRecord{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []domain.AttendanceRecord
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.AttendanceRecord{})).
		Order("date DESC").Order("id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&records).Error
	return records, total, err
}

func (r *attendanceRepository) CountByStatus(ctx context.Context, filter AttendanceFilter) (map[domain.AttendanceStatus]int64, error) {
	var rows []struct {
		Status domain.AttendanceStatus
		Count  int64
	}
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.AttendanceRecord{})).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.AttendanceStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
