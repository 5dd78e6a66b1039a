package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
)

// LeaveDecision is the outcome recorded on a pending leave request.
type LeaveDecision struct {
	Status          domain.LeaveStatus
	ReviewerID      int64
	At              time.Time
	RejectionReason string
	// Type, Days and EmployeeID identify the balance charged on approval.
	Type       domain.LeaveType
	Days       float64
	EmployeeID int64
}

// LeaveRepository defines the storage of leave requests
type LeaveRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	// ListActiveForEmployee returns the pending and approved requests of an employee.
	ListActiveForEmployee(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error)
	// Decide moves a pending request to its final status and, on approval,
	// charges the employee's balance in the same transaction.
	Decide(ctx context.Context, id int64, d LeaveDecision) error
	// DeleteIfPending removes a request that is still pending.
	DeleteIfPending(ctx context.Context, id int64) error
	List(ctx context.Context, filter LeaveFilter, page Page) ([]domain.LeaveRequest, int64, error)
	CountByStatus(ctx context.Context, filter LeaveFilter) (map[domain.LeaveStatus]int64, error)
	// SumApprovedDays totals approved days per type for requests starting within [from, to].
	SumApprovedDays(ctx context.Context, employeeID int64, from, to time.Time) (map[domain.LeaveType]float64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new repository instance
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	return translateError(r.db.WithContext(ctx).Create(req).Error)
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepository) ListActiveForEmployee(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error) {
	var requests []domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ?", employeeID, []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *leaveRepository) Decide(ctx context.Context, id int64, d LeaveDecision) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":      d.Status,
			"reviewed_by": d.ReviewerID,
			"reviewed_at": d.At,
			"updated_at":  time.Now(),
		}
		if d.Status == domain.LeaveRejected {
			updates["rejection_reason"] = d.RejectionReason
		}

		result := tx.Model(&domain.LeaveRequest{}).
			Where("id = ? AND status = ?", id, domain.LeavePending).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyDecided
		}

		if d.Status != domain.LeaveApproved {
			return nil
		}
		return chargeBalance(tx, d.EmployeeID, d.Type, d.Days)
	})
}

func chargeBalance(tx *gorm.DB, employeeID int64, leaveType domain.LeaveType, days float64) error {
	query := tx.Model(&domain.Employee{}).Where("id = ?", employeeID)

	var result *gorm.DB
	switch leaveType {
	case domain.LeavePaid:
		result = query.Where("leave_balance_paid >= ?", days).
			Update("leave_balance_paid", gorm.Expr("leave_balance_paid - ?", days))
	case domain.LeaveSick:
		result = query.Where("leave_balance_sick >= ?", days).
			Update("leave_balance_sick", gorm.Expr("leave_balance_sick - ?", days))
	default:
		result = query.Update("leave_balance_unpaid", gorm.Expr("leave_balance_unpaid + ?", days))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *leaveRepository) DeleteIfPending(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.LeavePending).
		Delete(&domain.LeaveRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotPending
	}
	return nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter, page Page) ([]domain.LeaveRequest, int64, error) {
	var total int64
	if err := filter.scope(r.db.WithContext(ctx).Model(&domain.LeaveRequest{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []domain.LeaveRequest
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.LeaveRequest{})).
		Order("created_at DESC").Order("id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&requests).Error
	return requests, total, err
}

func (r *leaveRepository) CountByStatus(ctx context.Context, filter LeaveFilter) (map[domain.LeaveStatus]int64, error) {
	var rows []struct {
		Status domain.LeaveStatus
		Count  int64
	}
	err := filter.scope(r.db.WithContext(ctx).Model(&domain.LeaveRequest{})).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.LeaveStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *leaveRepository) SumApprovedDays(ctx context.Context, employeeID int64, from, to time.Time) (map[domain.LeaveType]float64, error) {
	var rows []struct {
		LeaveType domain.LeaveType
		Days      float64
	}
	err := r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).
		Select("leave_type, COALESCE(SUM(days), 0) AS days").
		Where("employee_id = ? AND status = ? AND start_date >= ? AND start_date <= ?",
			employeeID, domain.LeaveApproved, from, to).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[domain.LeaveType]float64, len(rows))
	for _, row := range rows {
		sums[row.LeaveType] = row.Days
	}
	return sums, nil
}
