// Package service holds the business operations. Every exported method checks
// the caller against the authorization gate before touching a repository.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// exportLimit caps the rows of one attendance export.
var exportLimit = 10000

// Page resolves page/limit query values, applying defaults and the cap.
func Page(page, limit int) repository.Page {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return repository.Page{Page: page, Limit: limit}
}

// parseRange parses optional YYYY-MM-DD bounds and checks their order.
func parseRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		d, err := calendar.ParseDate(start)
		if err != nil {
			return nil, nil, err
		}
		from = &d
	}
	if end != "" {
		d, err := calendar.ParseDate(end)
		if err != nil {
			return nil, nil, err
		}
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.ErrInvalidRange
	}
	return from, to, nil
}

// loadEmployees fetches the employees referenced by a result page.
func loadEmployees(ctx context.Context, repo repository.EmployeeRepository, ids []int64) (map[int64]domain.Employee, error) {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	employees, err := repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	byID := make(map[int64]domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}
	return byID, nil
}
