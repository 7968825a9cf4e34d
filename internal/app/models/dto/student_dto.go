package dto

import "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"

// TrimesterGradesRequest carries the five subject scores of one trimester as
// submitted by the grade form. Range checks happen in the service layer so
// the whole record is accepted or rejected as a unit.
type TrimesterGradesRequest struct {
	Math            float64 `json:"math" form:"matematicas" example:"8.5"`
	Language        float64 `json:"language" form:"espanol" example:"9"`
	ForeignLanguage float64 `json:"foreignLanguage" form:"ingles" example:"7.5"`
	Science         float64 `json:"science" form:"ciencias" example:"8"`
	CivicFormation  float64 `json:"civicFormation" form:"formacion" example:"10"`
}

// ToModel converts the request into the domain grade record.
func (r TrimesterGradesRequest) ToModel() models.TrimesterGrades {
	return models.TrimesterGrades{
		Math:            r.Math,
		Language:        r.Language,
		ForeignLanguage: r.ForeignLanguage,
		Science:         r.Science,
		CivicFormation:  r.CivicFormation,
	}
}

// CreateStudentRequest represents a new student registration
type CreateStudentRequest struct {
	Name     string `json:"name" form:"nombre" binding:"required" example:"Ana"`
	LastName string `json:"lastName" form:"apellidos" binding:"required" example:"García López"`
	Group    string `json:"group" form:"grupo" binding:"required,group_label" example:"1°A"`
}

// UpdateStudentRequest rewrites a student's identity together with one
// explicitly named trimester.
type UpdateStudentRequest struct {
	Name      string                 `json:"name" form:"nombre" binding:"required"`
	LastName  string                 `json:"lastName" form:"apellidos" binding:"required"`
	Group     string                 `json:"group" form:"grupo" binding:"required,group_label"`
	Trimester models.TrimesterKey    `json:"trimester" form:"trimestre" binding:"required"`
	Grades    TrimesterGradesRequest `json:"grades"`
}

// UpdateGradesRequest overwrites one trimester's scores without touching the
// student's identity.
type UpdateGradesRequest struct {
	Trimester models.TrimesterKey    `json:"trimester" form:"trimestre" binding:"required"`
	Grades    TrimesterGradesRequest `json:"grades"`
}

// StudentResponse represents a student record in API responses
type StudentResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Group    string `json:"group"`
}

// GradeRow is one row of the grade list: a student with one trimester's
// scores and the computed average.
type GradeRow struct {
	Student StudentResponse        `json:"student"`
	Grades  models.TrimesterGrades `json:"grades"`
	Average float64                `json:"average"`
	Graded  bool                   `json:"graded"`
}

// GradeListResponse is the grade list view-model for the selected trimester.
type GradeListResponse struct {
	Session   *SessionInfo        `json:"session"`
	Trimester models.TrimesterKey `json:"trimester"`
	Rows      []GradeRow          `json:"rows"`
	Total     int                 `json:"total"`
	Messages  []FlashMessage      `json:"messages"`
}

// NewStudentResponse maps a domain student to its response shape.
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:       s.ID,
		Name:     s.Name,
		LastName: s.LastName,
		Group:    s.Group,
	}
}
