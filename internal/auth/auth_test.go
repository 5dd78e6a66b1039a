package auth

import (
	"testing"
	"time"

	"github.com/hrms-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "hrms", time.Hour)

	token, err := m.Generate(&domain.Employee{ID: 42, Role: domain.RoleHR})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.EmployeeID != 42 || claims.Role != domain.RoleHR {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _ := NewTokenManager("secret", "hrms", time.Hour).Generate(&domain.Employee{ID: 1, Role: domain.RoleAdmin})

	if _, err := NewTokenManager("other", "hrms", time.Hour).Validate(token); err == nil {
		t.Errorf("expected token signed with another secret to be rejected")
	}
}

func TestValidate_Expired(t *testing.T) {
	m := NewTokenManager("secret", "hrms", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _ := m.Generate(&domain.Employee{ID: 1, Role: domain.RoleEmployee})

	m.now = time.Now
	if _, err := m.Validate(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	token, _ := NewTokenManager("secret", "someone-else", time.Hour).Generate(&domain.Employee{ID: 1, Role: domain.RoleEmployee})

	if _, err := NewTokenManager("secret", "hrms", time.Hour).Validate(token); err == nil {
		t.Errorf("expected token from another issuer to be rejected")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Errorf("expected password to match")
	}
	if VerifyPassword(hash, "wrong horse") {
		t.Errorf("expected wrong password to be rejected")
	}
}
