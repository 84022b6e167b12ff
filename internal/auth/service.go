package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// Service signs staff members in.
type Service struct {
	staff repository.StaffRepository
	jwt   *JWTManager
	log   logger.Logger
}

// NewService creates an auth service.
func NewService(staff repository.StaffRepository, jwt *JWTManager, log logger.Logger) *Service {
	return &Service{staff: staff, jwt: jwt, log: log}
}

// Tokens exposes the JWT manager for middleware wiring.
func (s *Service) Tokens() *JWTManager { return s.jwt }

// Signin verifies credentials and issues a token. Unknown emails, wrong
// passwords and deactivated accounts all yield ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.log.Warn("Signin failed - user not found", logger.String("email", email))
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Signin failed - invalid password", logger.String("email", email))
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Signin failed - account inactive", logger.String("email", email))
		return nil, models.ErrInvalidCredentials
	}

	session := user.Summary()
	token, err := s.jwt.GenerateToken(session)
	if err != nil {
		return nil, err
	}

	s.log.Info("Staff signed in",
		logger.String("user_id", user.ID),
		logger.String("role", string(user.Role)),
	)
	return &models.SigninResponse{User: session, Token: token}, nil
}

// Me reloads the signed-in staff member so role changes apply immediately.
func (s *Service) Me(ctx context.Context, userID string) (*models.ManageUser, error) {
	return s.staff.GetByID(ctx, userID)
}
