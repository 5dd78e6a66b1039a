package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the resource handlers mounted by the router.
type Handlers struct {
	Auth       *AuthHandler
	Employee   *EmployeeHandler
	Attendance *AttendanceHandler
	Leave      *LeaveHandler
	Payroll    *PayrollHandler
}

// Router sets up the API routes
type Router struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	handlers       Handlers
	authn          middleware.Authenticator
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(handlers Handlers, authn middleware.Authenticator, allowedOrigins []string, logger *slog.Logger) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		logger:         logger,
		handlers:       handlers,
		authn:          authn,
		allowedOrigins: allowedOrigins,
	}
}

// Setup registers all routes and wraps them in the middleware chain
func (r *Router) Setup() http.Handler {
	base := newResponder(r.logger)
	protect := middleware.RequireAuth(r.authn, base.handleServiceError)
	private := func(pattern string, fn http.HandlerFunc) {
		r.mux.Handle(pattern, protect(fn))
	}
	// staff routes are gated on the role before any body or query is read.
	staff := func(pattern string, op authz.Operation, fn http.HandlerFunc) {
		r.mux.Handle(pattern, protect(middleware.RequireOperation(op, base.handleServiceError)(fn)))
	}

	auth := r.handlers.Auth
	r.mux.HandleFunc("POST /api/auth/register", auth.Register)
	r.mux.HandleFunc("POST /api/auth/login", auth.Login)
	private("GET /api/auth/me", auth.Me)
	private("PATCH /api/auth/profile", auth.UpdateProfile)
	private("GET /api/dashboard", auth.Dashboard)

	emp := r.handlers.Employee
	staff("GET /api/employees", authz.ViewEmployees, emp.List)
	private("GET /api/employees/{id}", emp.Get)
	staff("PATCH /api/employees/{id}", authz.UpdateEmployee, emp.Update)
	staff("PUT /api/employees/{id}/role", authz.ChangeRole, emp.ChangeRole)
	staff("DELETE /api/employees/{id}", authz.DeactivateEmployee, emp.Deactivate)

	att := r.handlers.Attendance
	private("POST /api/attendance/check-in", att.CheckIn)
	private("POST /api/attendance/check-out", att.CheckOut)
	private("GET /api/attendance/today", att.Today)
	private("GET /api/attendance/me", att.ListMine)
	staff("GET /api/attendance", authz.ViewAllAttendance, att.ListAll)
	staff("GET /api/attendance/export", authz.ExportAttendance, att.Export)
	staff("PUT /api/attendance/employees/{id}", authz.UpsertAttendance, att.Upsert)

	leave := r.handlers.Leave
	private("POST /api/leaves", leave.Apply)
	private("GET /api/leaves/me", leave.ListMine)
	private("GET /api/leaves/balance", leave.Balance)
	staff("GET /api/leaves", authz.ViewAllLeaves, leave.ListAll)
	staff("PUT /api/leaves/{id}/status", authz.DecideLeave, leave.Decide)
	private("DELETE /api/leaves/{id}", leave.Cancel)

	pay := r.handlers.Payroll
	staff("POST /api/payroll", authz.GeneratePayroll, pay.Generate)
	staff("GET /api/payroll", authz.ViewAllPayroll, pay.ListAll)
	private("GET /api/payroll/me", pay.ListMine)
	private("GET /api/payroll/{id}", pay.Get)
	private("GET /api/payroll/{id}/payslip", pay.Payslip)
	staff("PATCH /api/payroll/{id}", authz.UpdatePayroll, pay.Update)
	staff("DELETE /api/payroll/{id}", authz.DeletePayroll, pay.Delete)

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.mux.Handle("GET /metrics", promhttp.Handler())

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		base.respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})

	handler := middleware.ContentType(r.mux)
	handler = middleware.Metrics(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.NewCORS(r.allowedOrigins)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}
