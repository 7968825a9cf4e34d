package dto

import "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"

// GroupReportResponse is the printable report of one group and trimester.
type GroupReportResponse struct {
	Group       string              `json:"group"`
	Trimester   models.TrimesterKey `json:"trimester"`
	TeacherName string              `json:"teacherName,omitempty"`
	Rows        []GradeRow          `json:"rows"`
	GeneratedAt string              `json:"generatedAt" example:"2025-09-01T10:00:00Z"`
}

// GradeLevelCountResponse is one dashboard row of students per grade level.
type GradeLevelCountResponse struct {
	Level int   `json:"level" example:"3"`
	Total int64 `json:"total"`
}

// DashboardResponse is the admin dashboard view-model.
type DashboardResponse struct {
	ActiveTeachers int64                     `json:"activeTeachers"`
	TotalStudents  int64                     `json:"totalStudents"`
	PerGradeLevel  []GradeLevelCountResponse `json:"perGradeLevel"`
	Messages       []FlashMessage            `json:"messages"`
}
