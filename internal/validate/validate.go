// Package validate holds the input predicates shared by registration,
// profile updates and leave applications.
package validate

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Password length bounds in bytes. bcrypt rejects anything past 72.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

var v = validator.New()

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return v.Var(strings.TrimSpace(s), "required,email") == nil
}

// Password reports whether s satisfies the password length policy.
func Password(s string) bool {
	return len(s) >= PasswordMinLength && len(s) <= PasswordMaxLength
}

// Name reports whether s is a non-blank name.
func Name(s string) bool {
	return v.Var(strings.TrimSpace(s), "required,max=100") == nil
}

// EmployeeCode reports whether s is a usable employee code.
func EmployeeCode(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t") {
		return false
	}
	return v.Var(s, "required,max=50,printascii") == nil
}

// DateRange reports whether start is not after end.
func DateRange(start, end time.Time) bool {
	return !start.After(end)
}
