package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hrms-api/internal/validate"
)

func TestEmail(t *testing.T) {
	valid := []string{"jane@example.com", " jane.doe+hr@corp.example.org "}
	invalid := []string{"", "jane", "jane@", "@example.com", "jane doe@example.com"}

	for _, s := range valid {
		if !validate.Email(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if validate.Email(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestPassword(t *testing.T) {
	if validate.Password("short") {
		t.Errorf("expected short password to be rejected")
	}
	if !validate.Password("longenough") {
		t.Errorf("expected 10-character password to be accepted")
	}
	if !validate.Password(strings.Repeat("a", 72)) {
		t.Errorf("expected 72-byte password to be accepted")
	}
	if validate.Password(strings.Repeat("a", 73)) {
		t.Errorf("expected 73-byte password to be rejected")
	}
}

func TestName(t *testing.T) {
	if validate.Name("   ") {
		t.Errorf("expected blank name to be rejected")
	}
	if !validate.Name("Asha") {
		t.Errorf("expected name to be accepted")
	}
}

func TestEmployeeCode(t *testing.T) {
	if !validate.EmployeeCode("EMP-0001") {
		t.Errorf("expected code to be accepted")
	}
	if validate.EmployeeCode("") || validate.EmployeeCode("EMP 1") {
		t.Errorf("expected empty and spaced codes to be rejected")
	}
}

func TestDateRange(t *testing.T) {
	a := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 1)

	if !validate.DateRange(a, a) || !validate.DateRange(a, b) {
		t.Errorf("expected ordered ranges to be valid")
	}
	if validate.DateRange(b, a) {
		t.Errorf("expected reversed range to be invalid")
	}
}
