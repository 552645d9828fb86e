package service

import (
	"context"
	"errors"

	"prompt-insights/internal/dto"
	"prompt-insights/pkg/auth"

	"go.uber.org/zap"
)

const (
	AdminSubject = "admin"
	AdminRole    = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminService struct {
	passwordHash string
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAdminService(passwordHash string, jwtManager *auth.JWTManager, logger *zap.Logger) *AdminService {
	return &AdminService{
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

// Login checks the admin password against the configured bcrypt hash and
// issues a bearer token. An unset hash disables admin login.
func (s *AdminService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.passwordHash == "" || !auth.CheckPasswordHash(req.Password, s.passwordHash) {
		s.logger.Warn("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(AdminSubject, AdminRole)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
