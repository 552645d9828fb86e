package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"prompt-insights/internal/dto"
	"prompt-insights/pkg/auth"

	"go.uber.org/zap"
)

func TestAdminLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := NewAdminService(hash, jwtManager, zap.NewNop())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
		t.Errorf("Login() = %+v", resp)
	}

	claims, err := jwtManager.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != AdminRole {
		t.Errorf("role = %q", claims.Role)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
}

func TestAdminLoginDisabledWithoutHash(t *testing.T) {
	svc := NewAdminService("", auth.NewJWTManager("k", time.Hour), zap.NewNop())
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v", err)
	}
}
