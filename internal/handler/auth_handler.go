package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/service"
)

// AuthHandler serves registration, login and the caller's own account.
type AuthHandler struct {
	responder
	empService       service.EmployeeService
	dashboardService service.DashboardService
}

// NewAuthHandler creates a new handler
func NewAuthHandler(empService service.EmployeeService, dashboardService service.DashboardService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		responder:        newResponder(logger),
		empService:       empService,
		dashboardService: dashboardService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.empService.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondData(w, http.StatusCreated, "account created", dto.AuthResponse{
		Token:    result.Token,
		Employee: toEmployeeResponse(result.Employee),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.empService.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondData(w, http.StatusOK, "login successful", dto.AuthResponse{
		Token:    result.Token,
		Employee: toEmployeeResponse(result.Employee),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	emp, err := h.empService.Me(r.Context(), h.actor(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "", toEmployeeResponse(emp))
}

// UpdateProfile handles PATCH /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.UpdateProfile(r.Context(), h.actor(r), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "profile updated", toEmployeeResponse(emp))
}

// Dashboard handles GET /api/dashboard
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context(), h.actor(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, "", stats)
}
