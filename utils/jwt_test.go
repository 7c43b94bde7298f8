package utils

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", "student@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("user id: got %q, want %q", claims.UserID, "user-123")
	}
	if claims.Email != "student@example.com" {
		t.Errorf("email: got %q, want %q", claims.Email, "student@example.com")
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", "student@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := ValidateJWT(token, "a-different-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-123", "student@example.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := ValidateJWT(token, testSecret); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateJWTStripsBearerPrefix(t *testing.T) {
	token, err := GenerateJWT("user-123", "student@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := ValidateJWT("Bearer "+token, testSecret); err != nil {
		t.Errorf("ValidateJWT should accept a Bearer-prefixed token: %v", err)
	}
}

func TestRefreshJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", "student@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	refreshed, err := RefreshJWT(token, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("RefreshJWT returned error: %v", err)
	}

	claims, err := ValidateJWT(refreshed, testSecret)
	if err != nil {
		t.Fatalf("refreshed token failed validation: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("refreshed token user id: got %q, want %q", claims.UserID, "user-123")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"", ""},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}

	for _, tc := range cases {
		if got := ExtractTokenFromHeader(tc.header); got != tc.want {
			t.Errorf("ExtractTokenFromHeader(%q): got %q, want %q", tc.header, got, tc.want)
		}
	}
}
