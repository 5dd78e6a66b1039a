package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/service"
)

// PayrollHandler serves payroll records and payslips.
type PayrollHandler struct {
	responder
	payrollService service.PayrollService
}

// NewPayrollHandler creates a new handler
func NewPayrollHandler(payrollService service.PayrollService, logger *slog.Logger) *PayrollHandler {
	return &PayrollHandler{
		responder:      newResponder(logger),
		payrollService: payrollService,
	}
}

// Generate handles POST /api/payroll
func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GeneratePayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.payrollService.Generate(r.Context(), h.actor(r), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, "payroll generated", toPayrollResponse(rec, nil))
}

// Update handles PATCH /api/payroll/{id}
func (h *PayrollHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdatePayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.payrollService.Update(r.Context(), h.actor(r), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "payroll updated", toPayrollResponse(rec, nil))
}

// Delete handles DELETE /api/payroll/{id}
func (h *PayrollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.payrollService.Delete(r.Context(), h.actor(r), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "payroll deleted", nil)
}

// Get handles GET /api/payroll/{id}
func (h *PayrollHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.payrollService.Get(r.Context(), h.actor(r), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "", toPayrollResponse(rec, nil))
}

// Payslip handles GET /api/payroll/{id}/payslip
func (h *PayrollHandler) Payslip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	data, err := h.payrollService.Payslip(r.Context(), h.actor(r), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondFile(w, "application/pdf", fmt.Sprintf("payslip_%d.pdf", id), data)
}

// ListMine handles GET /api/payroll/me
func (h *PayrollHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.payrollService.ListMine(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

// ListAll handles GET /api/payroll
func (h *PayrollHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.payrollService.ListAll(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

func (h *PayrollHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*dto.PayrollQuery, bool) {
	page, limit, ok := pageParams(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "page and limit must be integers")
		return nil, false
	}

	query := &dto.PayrollQuery{
		PaymentStatus: r.URL.Query().Get("paymentStatus"),
		Page:          page,
		Limit:         limit,
	}
	for key, dst := range map[string]**int{"month": &query.Month, "year": &query.Year} {
		v, ok := queryInt(r, key)
		if !ok {
			h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", key+" must be an integer")
			return nil, false
		}
		if v != nil {
			n := int(*v)
			*dst = &n
		}
	}
	employeeID, ok := queryInt(r, "employeeId")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "employeeId must be an integer")
		return nil, false
	}
	query.EmployeeID = employeeID

	if !h.check(w, query) {
		return nil, false
	}
	return query, true
}

func (h *PayrollHandler) respondList(w http.ResponseWriter, list *service.PayrollList) {
	data := make([]dto.PayrollResponse, 0, len(list.Records))
	for i := range list.Records {
		data = append(data, toPayrollResponse(&list.Records[i], list.Employees))
	}
	h.respondJSON(w, http.StatusOK, dto.Response{
		Data:       data,
		Totals:     list.Totals,
		Pagination: dto.NewPagination(list.Total, list.Page.Page, list.Page.Limit),
	})
}
