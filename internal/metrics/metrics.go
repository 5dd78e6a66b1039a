// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hrms_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AttendanceEvents counts check-ins, check-outs and administrative upserts.
	AttendanceEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_attendance_events_total",
			Help: "Attendance lifecycle events.",
		},
		[]string{"event"},
	)

	// LeaveEvents counts applications, decisions and cancellations.
	LeaveEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_leave_events_total",
			Help: "Leave lifecycle events.",
		},
		[]string{"event"},
	)

	PayrollEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_payroll_events_total",
			Help: "Payroll lifecycle events.",
		},
		[]string{"event"},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrms_auth_events_total",
			Help: "Registrations and login attempts.",
		},
		[]string{"event"},
	)
)
