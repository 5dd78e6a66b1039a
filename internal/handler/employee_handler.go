package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/service"
)

// EmployeeHandler serves the employee directory maintained by HR and admins.
type EmployeeHandler struct {
	responder
	empService service.EmployeeService
}

// NewEmployeeHandler creates a new handler
func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:  newResponder(logger),
		empService: empService,
	}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "page and limit must be integers")
		return
	}
	q := r.URL.Query()
	query := dto.EmployeeQuery{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Role:       q.Get("role"),
		Page:       page,
		Limit:      limit,
	}
	if !h.check(w, &query) {
		return
	}

	list, err := h.empService.List(r.Context(), h.actor(r), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	data := make([]dto.EmployeeResponse, 0, len(list.Employees))
	for i := range list.Employees {
		data = append(data, toEmployeeResponse(&list.Employees[i]))
	}
	h.respondJSON(w, http.StatusOK, dto.Response{
		Data:       data,
		Pagination: dto.NewPagination(list.Total, list.Page.Page, list.Page.Limit),
	})
}

// Get handles GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	emp, err := h.empService.Get(r.Context(), h.actor(r), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "", toEmployeeResponse(emp))
}

// Update handles PATCH /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), h.actor(r), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "employee updated", toEmployeeResponse(emp))
}

// ChangeRole handles PUT /api/employees/{id}/role
func (h *EmployeeHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.ChangeRole(r.Context(), h.actor(r), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "role updated", toEmployeeResponse(emp))
}

// Deactivate handles DELETE /api/employees/{id}
func (h *EmployeeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.empService.Deactivate(r.Context(), h.actor(r), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "employee deactivated", nil)
}
