package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/validation"
)

// StudentService implements the student directory: scoped listing and the
// CRUD operations over student records. Role gates run in the transport
// middleware; scope checks against the target record happen here.
type StudentService interface {
	List(ctx context.Context, role models.RoleType, group string) ([]*models.Student, error)
	Create(ctx context.Context, name, lastName, group string) (*models.Student, error)
	UpdateStudentAndGrades(ctx context.Context, id int64, name, lastName, group string, trimester models.TrimesterKey, grades models.TrimesterGrades) (*models.Student, error)
	UpdateGradesOnly(ctx context.Context, callerGroup string, id int64, trimester models.TrimesterKey, grades models.TrimesterGrades) (*models.Student, error)
	Delete(ctx context.Context, id int64) (*models.Student, error)
}

type studentService struct {
	students StudentRepository
	logger   zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		students: students,
		logger:   logger,
	}
}

// validateIdentity checks the required identity fields and the group label.
func validateIdentity(name, lastName, group string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidGroup(group) {
		return fmt.Errorf("%w: unknown group label %q", apperrors.ErrValidationFailed, group)
	}
	return nil
}

// validateGrades checks all five scores against the [5,10] update domain.
// The whole record is rejected on the first violation; callers emit one
// combined message, never per-field feedback.
func validateGrades(grades models.TrimesterGrades) error {
	for _, score := range grades.Scores() {
		if !validation.IsValidScore(score) {
			return fmt.Errorf("%w: score %.2f outside [%.0f, %.0f]",
				apperrors.ErrValidationFailed, score, models.GradeMin, models.GradeMax)
		}
	}
	return nil
}

// List returns the directory visible to a role: admins see every student
// ordered by group then surname, teachers see their own group ordered by
// surname. An empty directory is a valid result, not an error.
func (s *studentService) List(ctx context.Context, role models.RoleType, group string) ([]*models.Student, error) {
	if role == models.RoleAdmin {
		return s.students.ListAll(ctx)
	}
	return s.students.ListByGroup(ctx, group)
}

// Create registers a new student with all fifteen scores at the ungraded
// sentinel. The id comes from the gateway's atomic sequence, global across
// groups.
func (s *studentService) Create(ctx context.Context, name, lastName, group string) (*models.Student, error) {
	if err := validateIdentity(name, lastName, group); err != nil {
		return nil, err
	}

	existing, err := s.students.FindByIdentity(ctx, name, lastName, group)
	if err != nil {
		return nil, fmt.Errorf("error checking for duplicate student: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateStudent
	}

	id, err := s.students.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("error assigning student id: %w", err)
	}

	student := models.NewStudent(id, name, lastName, group, time.Now())
	if err := s.students.Insert(ctx, student); err != nil {
		return nil, fmt.Errorf("error persisting student: %w", err)
	}

	s.logger.Info().Int64("studentId", id).Str("group", group).Msg("Student registered")
	return student, nil
}

// UpdateStudentAndGrades rewrites a student's identity fields together with
// one explicitly named trimester as a single atomic update.
func (s *studentService) UpdateStudentAndGrades(
	ctx context.Context,
	id int64,
	name, lastName, group string,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (*models.Student, error) {
	if err := validateIdentity(name, lastName, group); err != nil {
		return nil, err
	}
	if !trimester.IsValid() {
		return nil, fmt.Errorf("%w: unknown trimester %q", apperrors.ErrValidationFailed, trimester)
	}
	if err := validateGrades(grades); err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	modified, err := s.students.UpdateIdentityAndTrimester(ctx, id, name, lastName, group, trimester, grades)
	if err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	if modified == 0 {
		// The record exists but nothing changed; distinct from NotFound.
		return nil, apperrors.ErrUpdateFailed
	}

	student.Name = name
	student.LastName = lastName
	student.Group = group
	student.Grades.SetTrimester(trimester, grades)
	return student, nil
}

// UpdateGradesOnly overwrites one trimester's scores for a student in the
// caller's own group. A target outside that group is a permission failure,
// not a lookup failure: teachers may never grade across groups.
func (s *studentService) UpdateGradesOnly(
	ctx context.Context,
	callerGroup string,
	id int64,
	trimester models.TrimesterKey,
	grades models.TrimesterGrades,
) (*models.Student, error) {
	if !trimester.IsValid() {
		return nil, fmt.Errorf("%w: unknown trimester %q", apperrors.ErrValidationFailed, trimester)
	}
	if err := validateGrades(grades); err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if student.Group != callerGroup {
		s.logger.Warn().
			Int64("studentId", id).
			Str("studentGroup", student.Group).
			Str("callerGroup", callerGroup).
			Msg("Cross-group grade update rejected")
		return nil, apperrors.ErrPermissionDenied
	}

	modified, err := s.students.UpdateTrimester(ctx, id, trimester, grades)
	if err != nil {
		return nil, fmt.Errorf("error updating grades: %w", err)
	}
	if modified == 0 {
		return nil, apperrors.ErrUpdateFailed
	}

	student.Grades.SetTrimester(trimester, grades)
	return student, nil
}

// Delete removes a student permanently; there is no soft delete. The removed
// record is returned so callers can name it in the confirmation message.
func (s *studentService) Delete(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	deleted, err := s.students.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error deleting student: %w", err)
	}
	if deleted == 0 {
		// Raced with another delete; the record is gone either way.
		return nil, apperrors.ErrStudentNotFound
	}

	s.logger.Info().Int64("studentId", id).Str("group", student.Group).Msg("Student deleted")
	return student, nil
}
