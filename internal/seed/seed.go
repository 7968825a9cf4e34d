package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/repositories"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/auth"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/validation"
)

// Default credentials of the seeded principals. The admin password is stored
// as a bcrypt hash; teacher passwords stay plaintext to match the legacy
// records the application must keep accepting.
const (
	adminUsername = "admin"
	adminPassword = "AdminSeguro2025!"

	teacherPassword = "1234"
)

// CreateDefaultData seeds the principals collection: one admin plus one
// teacher per group (m1a .. m6c). Idempotent, existing usernames are left
// untouched.
func CreateDefaultData(ctx context.Context, teachers *repositories.TeacherRepository, lgr zerolog.Logger) error {
	if err := seedAdmin(ctx, teachers, lgr); err != nil {
		return err
	}
	return seedGroupTeachers(ctx, teachers, lgr)
}

func seedAdmin(ctx context.Context, teachers *repositories.TeacherRepository, lgr zerolog.Logger) error {
	exists, err := teachers.ExistsByUsername(ctx, adminUsername)
	if err != nil {
		return fmt.Errorf("failed to check admin principal: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	id, err := teachers.NextID(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign admin id: %w", err)
	}

	admin := &models.Teacher{
		ID:          id,
		Username:    adminUsername,
		Password:    hash,
		DisplayName: "Administrador",
		Role:        models.RoleAdmin,
		Active:      true,
	}
	if err := teachers.Insert(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin principal: %w", err)
	}

	lgr.Info().Str("username", adminUsername).Msg("Seeded admin principal")
	return nil
}

func seedGroupTeachers(ctx context.Context, teachers *repositories.TeacherRepository, lgr zerolog.Logger) error {
	seeded := 0
	for level := validation.MinGradeLevel; level <= validation.MaxGradeLevel; level++ {
		for _, group := range validation.GroupsForGradeLevel(level) {
			// "3°B" -> "m3b"
			username := "m" + strings.ToLower(strings.ReplaceAll(group, "°", ""))

			exists, err := teachers.ExistsByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("failed to check teacher %s: %w", username, err)
			}
			if exists {
				continue
			}

			id, err := teachers.NextID(ctx)
			if err != nil {
				return fmt.Errorf("failed to assign id for teacher %s: %w", username, err)
			}

			teacher := &models.Teacher{
				ID:          id,
				Username:    username,
				Password:    teacherPassword,
				DisplayName: "Maestro " + group,
				Group:       group,
				Grade:       level,
				Role:        models.RoleTeacher,
				Active:      true,
			}
			if err := teachers.Insert(ctx, teacher); err != nil {
				return fmt.Errorf("failed to seed teacher %s: %w", username, err)
			}
			seeded++
		}
	}

	if seeded > 0 {
		lgr.Info().Int("count", seeded).Msg("Seeded group teachers")
	}
	return nil
}
