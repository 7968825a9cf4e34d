package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/repositories/inmem"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
)

func addStudent(t *testing.T, repo *inmem.StudentRepository, id int64, name, lastName, group string, first models.TrimesterGrades) {
	t.Helper()
	student := models.NewStudent(id, name, lastName, group, time.Now())
	student.Grades.SetTrimester(models.TrimesterFirst, first)
	require.NoError(t, repo.Insert(context.Background(), student))
}

func TestGroupReport(t *testing.T) {
	students := inmem.NewStudentRepository()
	teachers := inmem.NewTeacherRepository()
	teachers.Add(&models.Teacher{
		Username:    "m1a",
		DisplayName: "Maestro 1°A",
		Group:       "1°A",
		Grade:       1,
		Role:        models.RoleTeacher,
		Active:      true,
	})

	graded := models.TrimesterGrades{Math: 10, Language: 9, ForeignLanguage: 8, Science: 7, CivicFormation: 6}
	addStudent(t, students, 1, "Ana", "Zavala", "1°A", graded)
	addStudent(t, students, 2, "Luis", "Arce", "1°A", models.TrimesterGrades{})
	addStudent(t, students, 3, "Marta", "Bueno", "2°B", graded)

	svc := NewReportService(students, teachers)

	report, err := svc.GroupReport(context.Background(), "1°A", models.TrimesterFirst)
	require.NoError(t, err)

	assert.Equal(t, "1°A", report.Group)
	assert.Equal(t, "Maestro 1°A", report.TeacherName)
	require.Len(t, report.Rows, 2)

	// Surname order; the ungraded student renders a zero average.
	assert.Equal(t, "Arce", report.Rows[0].Student.LastName)
	assert.Equal(t, 0.0, report.Rows[0].Average)
	assert.Equal(t, "Zavala", report.Rows[1].Student.LastName)
	assert.Equal(t, 8.0, report.Rows[1].Average)
}

func TestGroupReportWithoutTeacher(t *testing.T) {
	students := inmem.NewStudentRepository()
	teachers := inmem.NewTeacherRepository()
	addStudent(t, students, 1, "Ana", "Zavala", "5°C", models.TrimesterGrades{})

	svc := NewReportService(students, teachers)

	report, err := svc.GroupReport(context.Background(), "5°C", models.TrimesterSecond)
	require.NoError(t, err)
	assert.Empty(t, report.TeacherName)
	assert.Len(t, report.Rows, 1)
}

func TestGroupReportValidation(t *testing.T) {
	svc := NewReportService(inmem.NewStudentRepository(), inmem.NewTeacherRepository())

	_, err := svc.GroupReport(context.Background(), "9°Z", models.TrimesterFirst)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.GroupReport(context.Background(), "1°A", "cuarto_trimestre")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDashboardStats(t *testing.T) {
	students := inmem.NewStudentRepository()
	teachers := inmem.NewTeacherRepository()

	teachers.Add(&models.Teacher{Username: "admin", Role: models.RoleAdmin, Active: true})
	teachers.Add(&models.Teacher{Username: "m1a", Group: "1°A", Role: models.RoleTeacher, Active: true})
	teachers.Add(&models.Teacher{Username: "m2b", Group: "2°B", Role: models.RoleTeacher, Active: false})

	addStudent(t, students, 1, "Ana", "Zavala", "1°A", models.TrimesterGrades{})
	addStudent(t, students, 2, "Luis", "Arce", "1°B", models.TrimesterGrades{})
	addStudent(t, students, 3, "Marta", "Bueno", "2°B", models.TrimesterGrades{})

	svc := NewReportService(students, teachers)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	// The admin and the inactive teacher do not count.
	assert.Equal(t, int64(1), stats.ActiveTeachers)
	assert.Equal(t, int64(3), stats.TotalStudents)

	require.Len(t, stats.PerGradeLevel, 6)
	assert.Equal(t, 1, stats.PerGradeLevel[0].Level)
	assert.Equal(t, int64(2), stats.PerGradeLevel[0].Total)
	assert.Equal(t, int64(1), stats.PerGradeLevel[1].Total)
	for _, level := range stats.PerGradeLevel[2:] {
		assert.Equal(t, int64(0), level.Total)
	}
}
