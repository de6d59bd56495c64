package auth

import (
	"testing"

	"github.com/kedarbajaj/CargoMate-sub000/internal/testutil"
)

const testSecret = "test-secret"

func TestParseFromHeader_ValidBearer(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 42, "vendor")
	p, err := ParseFromHeader("Bearer "+tok, testSecret)
	if err != nil {
		t.Fatalf("ParseFromHeader: %v", err)
	}
	if p.ID != 42 || p.Role != "vendor" {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseFromHeader_MissingHeader(t *testing.T) {
	if _, err := ParseFromHeader("", testSecret); err == nil {
		t.Fatalf("expected error for empty header")
	}
}

func TestParseFromHeader_InvalidScheme(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 7, "customer")
	if _, err := ParseFromHeader("Basic "+tok, testSecret); err == nil {
		t.Fatalf("expected error for non-Bearer scheme")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 7, "customer")
	if _, err := parseJWT(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseJWT_ClaimsValidation(t *testing.T) {
	// Zero uid and empty role are rejected.
	tok := testutil.GenerateJWTHS256(t, testSecret, 0, "")
	if _, err := parseJWT(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
}

func TestParseJWT_RoleLowercased(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, 5, "Admin")
	p, err := parseJWT(tok, testSecret)
	if err != nil {
		t.Fatalf("parseJWT: %v", err)
	}
	if p.Role != "admin" {
		t.Fatalf("role should be lowercased, got %q", p.Role)
	}
}
