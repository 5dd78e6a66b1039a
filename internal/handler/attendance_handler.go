package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceHandler serves check-in/out and attendance queries.
type AttendanceHandler struct {
	responder
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new handler
func NewAttendanceHandler(attendanceService service.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		responder:         newResponder(logger),
		attendanceService: attendanceService,
	}
}

// CheckIn handles POST /api/attendance/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.CheckIn(r.Context(), h.actor(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, "checked in", toAttendanceResponse(rec, nil))
}

// CheckOut handles POST /api/attendance/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.CheckOut(r.Context(), h.actor(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "checked out", toAttendanceResponse(rec, nil))
}

// Today handles GET /api/attendance/today. Data is null before check-in.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.Today(r.Context(), h.actor(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if rec == nil {
		h.respondData(w, http.StatusOK, "", nil)
		return
	}
	h.respondData(w, http.StatusOK, "", toAttendanceResponse(rec, nil))
}

// Upsert handles PUT /api/attendance/employees/{id}
func (h *AttendanceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpsertAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.attendanceService.Upsert(r.Context(), h.actor(r), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "attendance saved", toAttendanceResponse(rec, nil))
}

// ListMine handles GET /api/attendance/me
func (h *AttendanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.attendanceService.ListMine(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

// ListAll handles GET /api/attendance
func (h *AttendanceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	list, err := h.attendanceService.ListAll(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondList(w, list)
}

// Export handles GET /api/attendance/export
func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	data, err := h.attendanceService.Export(r.Context(), h.actor(r), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	name := "attendance.xlsx"
	if query.StartDate != "" || query.EndDate != "" {
		name = fmt.Sprintf("attendance_%s_%s.xlsx", query.StartDate, query.EndDate)
	}
	h.respondFile(w, xlsxContentType, name, data)
}

func (h *AttendanceHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*dto.AttendanceQuery, bool) {
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
	query := &dto.AttendanceQuery{
		EmployeeID: employeeID,
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Status:     q.Get("status"),
		Page:       page,
		Limit:      limit,
	}
	if !h.check(w, query) {
		return nil, false
	}
	return query, true
}

func (h *AttendanceHandler) respondList(w http.ResponseWriter, list *service.AttendanceList) {
	data := make([]dto.AttendanceResponse, 0, len(list.Records))
	for i := range list.Records {
		data = append(data, toAttendanceResponse(&list.Records[i], list.Employees))
	}
	h.respondJSON(w, http.StatusOK, dto.Response{
		Data:       data,
		Summary:    list.Summary,
		Pagination: dto.NewPagination(list.Total, list.Page.Page, list.Page.Limit),
	})
}
