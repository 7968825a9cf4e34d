package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/repositories/inmem"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
)

func newStudentService(repo *inmem.StudentRepository) StudentService {
	return NewStudentService(repo, zerolog.Nop())
}

func validGrades() models.TrimesterGrades {
	return models.TrimesterGrades{Math: 8, Language: 9, ForeignLanguage: 7.5, Science: 6, CivicFormation: 10}
}

func TestCreateStudent(t *testing.T) {
	repo := inmem.NewStudentRepository()
	svc := newStudentService(repo)
	ctx := context.Background()

	student, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "1°A", student.Group)
	for _, key := range models.Trimesters {
		assert.Equal(t, 0.0, student.Grades.Trimester(key).Average())
	}

	// Ids keep advancing even across groups.
	second, err := svc.Create(ctx, "Luis", "Pérez", "2°B")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateStudentValidation(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	tests := []struct {
		name     string
		first    string
		lastName string
		group    string
	}{
		{"empty name", "", "García", "1°A"},
		{"blank name", "   ", "García", "1°A"},
		{"empty last name", "Ana", "", "1°A"},
		{"unknown group", "Ana", "García", "9°Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.first, tt.lastName, tt.group)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestCreateStudentDuplicate(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Ana", "García", "1°A")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateStudent)

	// Same identity in another group is a different student.
	_, err = svc.Create(ctx, "Ana", "García", "1°B")
	assert.NoError(t, err)
}

func TestCreateConcurrentAssignsDistinctIDs(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	const n = 20
	ids := make(chan int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			student, err := svc.Create(ctx, "Alumno", fmt.Sprintf("Número %02d", i), "1°A")
			assert.NoError(t, err)
			if student != nil {
				ids <- student.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	// Every registration got its own id; the sequence never hands out
	// duplicates under contention.
	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestListScopedByRole(t *testing.T) {
	repo := inmem.NewStudentRepository()
	svc := newStudentService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", "Zavala", "1°A")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Luis", "Arce", "1°A")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Marta", "Bueno", "2°B")
	require.NoError(t, err)

	all, err := svc.List(ctx, models.RoleAdmin, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Group order first, surname order within the group.
	assert.Equal(t, "Arce", all[0].LastName)
	assert.Equal(t, "Zavala", all[1].LastName)
	assert.Equal(t, "Bueno", all[2].LastName)

	own, err := svc.List(ctx, models.RoleTeacher, "1°A")
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "Arce", own[0].LastName)
	assert.Equal(t, "Zavala", own[1].LastName)

	empty, err := svc.List(ctx, models.RoleTeacher, "6°C")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateStudentAndGrades(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)

	updated, err := svc.UpdateStudentAndGrades(ctx, created.ID,
		"Ana María", "García", "1°B", models.TrimesterSecond, validGrades())
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "1°B", updated.Group)
	assert.Equal(t, validGrades(), updated.Grades.Trimester(models.TrimesterSecond))
	// The other trimesters stay untouched.
	assert.Equal(t, models.TrimesterGrades{}, updated.Grades.Trimester(models.TrimesterFirst))

	_, err = svc.UpdateStudentAndGrades(ctx, 999,
		"Ana", "García", "1°A", models.TrimesterFirst, validGrades())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.UpdateStudentAndGrades(ctx, created.ID,
		"Ana", "García", "1°A", "cuarto_trimestre", validGrades())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateRejectsOutOfRangeScores(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)

	grades := validGrades()
	grades.Science = 4.5
	_, err = svc.UpdateStudentAndGrades(ctx, created.ID,
		"Ana", "García", "1°A", models.TrimesterFirst, grades)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	grades = validGrades()
	grades.Math = 10.5
	_, err = svc.UpdateGradesOnly(ctx, "1°A", created.ID, models.TrimesterFirst, grades)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// The sentinel is not a storable score on update.
	grades = validGrades()
	grades.Language = 0
	_, err = svc.UpdateGradesOnly(ctx, "1°A", created.ID, models.TrimesterFirst, grades)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateGradesOnlyScope(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)

	// The group teacher captures grades for their own student.
	updated, err := svc.UpdateGradesOnly(ctx, "1°A", created.ID, models.TrimesterFirst, validGrades())
	require.NoError(t, err)
	assert.Equal(t, validGrades(), updated.Grades.Trimester(models.TrimesterFirst))

	// A teacher from another group is rejected before any write.
	_, err = svc.UpdateGradesOnly(ctx, "2°B", created.ID, models.TrimesterFirst, validGrades())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateGradesOnly(ctx, "1°A", 999, models.TrimesterFirst, validGrades())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudent(t *testing.T) {
	svc := newStudentService(inmem.NewStudentRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "García", "1°A")
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana García", removed.FullName())

	// A second delete reports the record as gone.
	_, err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStorageFailurePassesThrough(t *testing.T) {
	repo := inmem.NewStudentRepository()
	repo.FailWith = apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "connection refused")
	svc := newStudentService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", "García", "1°A")
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	_, err = svc.List(ctx, models.RoleAdmin, "")
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	_, err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}
