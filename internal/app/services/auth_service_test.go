package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/repositories/inmem"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/auth"
)

func seedPrincipals(t *testing.T) *inmem.TeacherRepository {
	t.Helper()
	repo := inmem.NewTeacherRepository()

	hash, err := auth.HashPassword("AdminSeguro2025!")
	require.NoError(t, err)

	repo.Add(&models.Teacher{
		Username:    "admin",
		Password:    hash,
		DisplayName: "Administrador",
		Role:        models.RoleAdmin,
		Active:      true,
	})
	repo.Add(&models.Teacher{
		Username:    "m1a",
		Password:    "1234",
		DisplayName: "Maestro 1°A",
		Group:       "1°A",
		Grade:       1,
		Role:        models.RoleTeacher,
		Active:      true,
	})
	repo.Add(&models.Teacher{
		Username:    "m2b",
		Password:    "1234",
		DisplayName: "Maestro 2°B",
		Group:       "2°B",
		Grade:       2,
		Role:        models.RoleTeacher,
		Active:      false,
	})
	return repo
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(seedPrincipals(t), zerolog.Nop())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantRole models.RoleType
	}{
		{"admin with bcrypt credential", "admin", "AdminSeguro2025!", nil, models.RoleAdmin},
		{"teacher with plaintext credential", "m1a", "1234", nil, models.RoleTeacher},
		{"wrong password", "m1a", "4321", apperrors.ErrInvalidCredentials, ""},
		{"unknown username", "nadie", "1234", apperrors.ErrInvalidCredentials, ""},
		{"inactive principal", "m2b", "1234", apperrors.ErrInvalidCredentials, ""},
		{"admin literal hash is not the password", "admin", "", apperrors.ErrInvalidCredentials, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacher, err := svc.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, teacher)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, teacher)
			assert.Equal(t, tt.wantRole, teacher.Role)
			assert.Equal(t, tt.username, teacher.Username)
		})
	}
}
