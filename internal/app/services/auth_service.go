package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/auth"
)

// AuthService authenticates principals against the teachers collection.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.Teacher, error)
}

type authService struct {
	teachers TeacherRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(teachers TeacherRepository, logger zerolog.Logger) AuthService {
	return &authService{
		teachers: teachers,
		logger:   logger,
	}
}

// Authenticate looks up an active principal by exact username and checks the
// submitted password with the role's credential verifier (bcrypt for admins,
// legacy plaintext equality for teachers). Unknown username and wrong
// password are indistinguishable to the caller; only the attempted username
// is logged for operators.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindActiveByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error looking up principal: %w", err)
	}
	if teacher == nil {
		s.logger.Warn().Str("username", username).Msg("Login attempt for unknown or inactive principal")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.VerifierFor(teacher.Role).Verify(teacher.Password, password) {
		s.logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return teacher, nil
}
