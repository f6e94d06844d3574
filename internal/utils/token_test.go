package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func TestParseAccessClaims(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub":        "maria@example.com",
		"user_id":    float64(42),
		"first_name": "Maria",
		"last_name":  "Lopez",
		"email":      "maria@example.com",
		"role":       "client",
	})

	got, err := ParseAccessClaims(raw)
	if err != nil {
		t.Fatalf("ParseAccessClaims returned error: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("UserID = %d, want 42", got.UserID)
	}
	if got.Role != "client" {
		t.Errorf("Role = %q, want %q", got.Role, "client")
	}
	if got.FirstName != "Maria" || got.LastName != "Lopez" {
		t.Errorf("name = %q %q, want Maria Lopez", got.FirstName, got.LastName)
	}
	if got.Email != "maria@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
}

func TestParseAccessClaimsMalformed(t *testing.T) {
	if _, err := ParseAccessClaims("not-a-jwt"); err != ErrMalformedToken {
		t.Errorf("error = %v, want ErrMalformedToken", err)
	}
}

func TestParseAccessClaimsMissingFieldsZeroValued(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "x"})
	got, err := ParseAccessClaims(raw)
	if err != nil {
		t.Fatalf("ParseAccessClaims returned error: %v", err)
	}
	if got.UserID != 0 || got.Role != "" {
		t.Errorf("claims = %+v, want zero values", got)
	}
}
