package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	now := time.Now()

	claims := &JWTClaims{
		UserID:    42,
		Email:     "ada@example.com",
		Username:  "ada",
		Type:      "access",
		ExpiresAt: now.Add(time.Hour).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "willow-api",
		Subject:   "42",
	}

	token, err := GenerateJWT(claims, secret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	parsed, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}

	if parsed.UserID != claims.UserID {
		t.Errorf("UserID = %d, want %d", parsed.UserID, claims.UserID)
	}
	if parsed.Email != claims.Email {
		t.Errorf("Email = %q, want %q", parsed.Email, claims.Email)
	}
	if parsed.Type != "access" {
		t.Errorf("Type = %q, want %q", parsed.Type, "access")
	}
	if parsed.Issuer != claims.Issuer {
		t.Errorf("Issuer = %q, want %q", parsed.Issuer, claims.Issuer)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	claims := &JWTClaims{
		UserID:    42,
		Type:      "access",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		IssuedAt:  time.Now().Unix(),
	}

	token, err := GenerateJWT(claims, "right-secret")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, "wrong-secret"); err == nil {
		t.Error("ValidateJWT() accepted a token signed with a different secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	claims := &JWTClaims{
		UserID:    42,
		Type:      "access",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
	}

	token, err := GenerateJWT(claims, "secret")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Error("ValidateJWT() accepted an expired token")
	}
}
