package services

import (
	"context"
	"fmt"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/validation"
)

// ReportRow pairs a student with one trimester's grades and their average.
type ReportRow struct {
	Student *models.Student
	Grades  models.TrimesterGrades
	Average float64
}

// GroupReport is the read model of one group in one trimester.
type GroupReport struct {
	Group       string
	Trimester   models.TrimesterKey
	TeacherName string // empty when the group has no assigned teacher
	Rows        []ReportRow
}

// GradeLevelCount is one dashboard row: students of a grade level counted
// across its three section letters.
type GradeLevelCount struct {
	Level int
	Total int64
}

// DashboardStats aggregates the admin dashboard figures.
type DashboardStats struct {
	ActiveTeachers int64
	TotalStudents  int64
	PerGradeLevel  []GradeLevelCount
}

// ReportService derives read models over the student directory and the
// average calculator; it owns no state of its own.
type ReportService interface {
	GroupReport(ctx context.Context, group string, trimester models.TrimesterKey) (*GroupReport, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	students StudentRepository
	teachers TeacherRepository
}

// NewReportService creates a new report service instance
func NewReportService(students StudentRepository, teachers TeacherRepository) ReportService {
	return &reportService{
		students: students,
		teachers: teachers,
	}
}

// BuildRows derives (grades, average) rows for one trimester from an already
// scoped student list. Pure helper shared with the grade list view.
func BuildRows(students []*models.Student, trimester models.TrimesterKey) []ReportRow {
	rows := make([]ReportRow, 0, len(students))
	for _, student := range students {
		grades := student.Grades.Trimester(trimester)
		rows = append(rows, ReportRow{
			Student: student,
			Grades:  grades,
			Average: grades.Average(),
		})
	}
	return rows
}

// GroupReport produces the ordered report of one group and trimester,
// including the group's assigned teacher when one exists.
func (s *reportService) GroupReport(ctx context.Context, group string, trimester models.TrimesterKey) (*GroupReport, error) {
	if !validation.IsValidGroup(group) {
		return nil, fmt.Errorf("%w: unknown group label %q", apperrors.ErrValidationFailed, group)
	}
	if !trimester.IsValid() {
		return nil, fmt.Errorf("%w: unknown trimester %q", apperrors.ErrValidationFailed, trimester)
	}

	students, err := s.students.ListByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("error listing group students: %w", err)
	}

	report := &GroupReport{
		Group:     group,
		Trimester: trimester,
		Rows:      BuildRows(students, trimester),
	}

	teacher, err := s.teachers.FindByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("error looking up group teacher: %w", err)
	}
	if teacher != nil {
		report.TeacherName = teacher.DisplayName
	}

	return report, nil
}

// DashboardStats counts active teachers, all students and students per
// grade level. Grade levels derive from the group label prefix, never from
// the principal's redundant grade field.
func (s *reportService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	activeTeachers, err := s.teachers.CountActiveTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting active teachers: %w", err)
	}

	totalStudents, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	stats := &DashboardStats{
		ActiveTeachers: activeTeachers,
		TotalStudents:  totalStudents,
	}

	for level := validation.MinGradeLevel; level <= validation.MaxGradeLevel; level++ {
		total, err := s.students.CountByGroups(ctx, validation.GroupsForGradeLevel(level))
		if err != nil {
			return nil, fmt.Errorf("error counting grade level %d: %w", level, err)
		}
		stats.PerGradeLevel = append(stats.PerGradeLevel, GradeLevelCount{Level: level, Total: total})
	}

	return stats, nil
}
