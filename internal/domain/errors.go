package domain

import "errors"

// Kind classifies a business error; the transport layer maps it to a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	// KindRejected is a well-formed request refused by a business rule.
	KindRejected
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
)

// Error is a business error with a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError wraps a free-form input validation message.
func NewValidationError(msg string) error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: msg}
}

// KindOf returns the kind of a business error, or 0 for anything else.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Business errors
var (
	ErrInvalidRange     = &Error{KindValidation, "INVALID_RANGE", "start date cannot be after end date"}
	ErrInvalidDate      = &Error{KindValidation, "INVALID_DATE", "dates must use the YYYY-MM-DD format"}
	ErrReasonRequired   = &Error{KindValidation, "REASON_REQUIRED", "reason is required"}
	ErrNoWorkingDays    = &Error{KindValidation, "NO_WORKING_DAYS", "requested range contains no working days"}
	ErrHalfDaySpan      = &Error{KindValidation, "HALF_DAY_SPAN", "a half-day leave must start and end on the same date"}
	ErrInvalidDecision  = &Error{KindValidation, "INVALID_STATUS", "status must be approved or rejected"}
	ErrNegativeAmount   = &Error{KindValidation, "NEGATIVE_AMOUNT", "salary amounts cannot be negative"}
	ErrNegativeNet      = &Error{KindValidation, "NEGATIVE_NET_SALARY", "deductions exceed basic salary plus allowances"}
	ErrImmutableField   = &Error{KindValidation, "IMMUTABLE_FIELD", "employee, month and year of a payroll record cannot be changed"}
	ErrInvalidEmail     = &Error{KindValidation, "INVALID_EMAIL", "valid email is required"}
	ErrWeakPassword     = &Error{KindValidation, "WEAK_PASSWORD", "password must be between 8 and 72 bytes long"}
	ErrInvalidName      = &Error{KindValidation, "INVALID_NAME", "valid first name is required"}
	ErrInvalidCode      = &Error{KindValidation, "INVALID_EMPLOYEE_CODE", "valid employee code is required"}
	ErrInvalidRole      = &Error{KindValidation, "INVALID_ROLE", "role must be employee, hr or admin"}
	ErrInvalidTimestamp = &Error{KindValidation, "INVALID_TIMESTAMP", "timestamps must use the RFC 3339 format"}

	ErrPastDate            = &Error{KindRejected, "PAST_DATE", "cannot apply for leave in the past"}
	ErrOverlap             = &Error{KindRejected, "OVERLAP", "you already have a leave request for these dates"}
	ErrInsufficientBalance = &Error{KindRejected, "INSUFFICIENT_BALANCE", "not enough leave balance for this request"}
	ErrAlreadyCheckedIn    = &Error{KindRejected, "ALREADY_CHECKED_IN", "already checked in today"}
	ErrNotCheckedIn        = &Error{KindRejected, "NOT_CHECKED_IN", "please check in first"}
	ErrAlreadyCheckedOut   = &Error{KindRejected, "ALREADY_CHECKED_OUT", "already checked out today"}
	ErrEmployeeInactive    = &Error{KindRejected, "EMPLOYEE_INACTIVE", "employee is deactivated"}
	ErrSelfDeactivation    = &Error{KindRejected, "SELF_DEACTIVATION", "you cannot deactivate your own account"}

	ErrAlreadyDecided  = &Error{KindConflict, "ALREADY_DECIDED", "leave request is already processed"}
	ErrNotPending      = &Error{KindConflict, "NOT_PENDING", "only pending leave requests can be cancelled"}
	ErrAlreadyStarted  = &Error{KindConflict, "ALREADY_STARTED", "cannot cancel leave that has already started"}
	ErrDuplicatePeriod = &Error{KindConflict, "DUPLICATE_PERIOD", "payroll already generated for this employee for the selected month"}
	ErrEmailTaken      = &Error{KindConflict, "EMAIL_TAKEN", "email already registered"}
	ErrCodeTaken       = &Error{KindConflict, "EMPLOYEE_CODE_TAKEN", "employee code already exists"}
	// ErrDuplicateKey is returned by repositories on a unique index violation.
	ErrDuplicateKey = &Error{KindConflict, "DUPLICATE", "record already exists"}

	ErrEmployeeNotFound   = &Error{KindNotFound, "NOT_FOUND", "employee not found"}
	ErrAttendanceNotFound = &Error{KindNotFound, "NOT_FOUND", "attendance record not found"}
	ErrLeaveNotFound      = &Error{KindNotFound, "NOT_FOUND", "leave request not found"}
	ErrPayrollNotFound    = &Error{KindNotFound, "NOT_FOUND", "payroll record not found"}

	ErrInvalidCredentials = &Error{KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"}
	ErrUnauthenticated    = &Error{KindUnauthorized, "UNAUTHENTICATED", "authentication required"}

	ErrForbidden          = &Error{KindForbidden, "FORBIDDEN", "you are not allowed to perform this operation"}
	ErrSelfReview         = &Error{KindForbidden, "SELF_REVIEW", "you cannot review your own leave request"}
	ErrAccountDeactivated = &Error{KindForbidden, "ACCOUNT_DEACTIVATED", "account is deactivated, please contact an administrator"}
)
