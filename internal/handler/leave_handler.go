package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/service"
)

// LeaveHandler serves leave applications and reviews.
type LeaveHandler struct {
	responder
	leaveService service.LeaveService
}

// NewLeaveHandler creates a new handler
func NewLeaveHandler(leaveService service.LeaveService, logger *slog.Logger) *LeaveHandler {
	return &LeaveHandler{
		responder:    newResponder(logger),
		leaveService: leaveService,
	}
}

// Apply handles POST /api/leaves
func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	leave, err := h.leaveService.Apply(r.Context(), h.actor(r), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, "leave request submitted", toLeaveResponse(leave, nil))
}

// Decide handles PUT /api/leaves/{id}/status
func (h *LeaveHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req dto.DecideLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	leave, err := h.leaveService.Decide(r.Context(), h.actor(r), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "leave request "+string(leave.Status), toLeaveResponse(leave, nil))
}

// Cancel handles DELETE /api/leaves/{id}
func (h *LeaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.Cancel(r.Context(), h.actor(r), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "leave request cancelled", nil)
}

// ListMine handles GET /api/leaves/me
func (h *LeaveHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.leaveService.ListMine(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

// ListAll handles GET /api/leaves
func (h *LeaveHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.leaveService.ListAll(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

// Balance handles GET /api/leaves/balance. Staff may pass employeeId.
func (h *LeaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := queryInt(r, "employeeId")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "employeeId must be an integer")
		return
	}

	bal, err := h.leaveService.Balance(r.Context(), h.actor(r), employeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	taken := make(map[string]float64, len(bal.Taken))
	for t, days := range bal.Taken {
		taken[string(t)] = days
	}
	h.respondData(w, http.StatusOK, "", dto.LeaveBalanceResponse{
		EmployeeID: bal.EmployeeID,
		Year:       bal.Year,
		Available:  toBalanceInput(bal.Available),
		Taken:      taken,
	})
}

func (h *LeaveHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*dto.LeaveQuery, bool) {
	page, limit, ok := pageParams(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "page and limit must be integers")
		return nil, false
	}
	employeeID, ok := queryInt(r, "employeeId")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "employeeId must be an integer")
		return nil, false
	}

	q := r.URL.Query()
	query := &dto.LeaveQuery{
		EmployeeID: employeeID,
		Status:     q.Get("status"),
		LeaveType:  q.Get("leaveType"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Page:       page,
		Limit:      limit,
	}
	if !h.check(w, query) {
		return nil, false
	}
	return query, true
}

func (h *LeaveHandler) respondList(w http.ResponseWriter, list *service.LeaveList) {
	data := make([]dto.LeaveResponse, 0, len(list.Requests))
	for i := range list.Requests {
		data = append(data, toLeaveResponse(&list.Requests[i], list.Employees))
	}
	h.respondJSON(w, http.StatusOK, dto.Response{
		Data:       data,
		Summary:    list.Summary,
		Pagination: dto.NewPagination(list.Total, list.Page.Page, list.Page.Limit),
	})
}
