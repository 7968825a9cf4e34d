package services

import (
	"context"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

// TeacherRepository defines the persistence-gateway surface for principals.
type TeacherRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (*models.Teacher, error)
	FindByGroup(ctx context.Context, group string) (*models.Teacher, error)
	CountActiveTeachers(ctx context.Context) (int64, error)
}

// StudentRepository defines the persistence-gateway surface for student
// records. Id generation is the gateway's atomic sequence.
type StudentRepository interface {
	NextID(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByIdentity(ctx context.Context, name, lastName, group string) (*models.Student, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	ListByGroup(ctx context.Context, group string) ([]*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
	UpdateIdentityAndTrimester(ctx context.Context, id int64, name, lastName, group string, trimester models.TrimesterKey, grades models.TrimesterGrades) (int64, error)
	UpdateTrimester(ctx context.Context, id int64, trimester models.TrimesterKey, grades models.TrimesterGrades) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByGroups(ctx context.Context, groups []string) (int64, error)
}
