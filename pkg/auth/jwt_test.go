package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	foreign, err := other.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	expired := NewJWTManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: old},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected mismatch")
	}
}
