package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("user_abc", "USER")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserExtID != "user_abc" {
		t.Fatalf("unexpected user_ext_id: %s", claims.UserExtID)
	}
	if claims.Role != "USER" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestValidateToken_BearerPrefix(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("user_abc", "ADMIN")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateToken("Bearer " + token)
	if err != nil {
		t.Fatalf("validate with Bearer prefix failed: %v", err)
	}
	if claims.Role != "ADMIN" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("different-secret", time.Hour)

	token, err := svc.GenerateToken("user_abc", "USER")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation with wrong key to fail")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail")
	}
}

func TestGenerateToken_EmptyUser(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	if _, err := svc.GenerateToken("", "USER"); err == nil {
		t.Fatal("expected empty user_ext_id to fail")
	}
}
