package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/services"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/middleware"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
)

// StudentController handles the grade list and the student CRUD flows.
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

func parseStudentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListGrades renders the grade list for the selected trimester. Admins see
// every group, teachers only their own. A valid `trimestre` query parameter
// updates the session's selection.
// @Summary Grade list
// @Tags students
// @Produce json
// @Param trimestre query string false "Trimester key"
// @Success 200 {object} dto.GradeListResponse
// @Failure 503 {object} dto.APIResponse "Storage unavailable"
// @Router /grades [get]
func (c *StudentController) ListGrades(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	if key := models.TrimesterKey(ctx.Query("trimestre")); key.IsValid() {
		sess.SetTrimester(key)
	}
	trimester := sess.Trimester()

	students, err := c.studentService.List(ctx, sess.Role(), sess.Group())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GradeListResponse{
		Session:   sessionInfo(sess),
		Trimester: trimester,
		Rows:      toGradeRows(services.BuildRows(students, trimester)),
		Total:     len(students),
		Messages:  flashMessages(sess),
	})
}

// Create registers a new student with all scores at the ungraded sentinel.
// @Summary Register student
// @Tags students
// @Accept json
// @Param request body dto.CreateStudentRequest true "Student identity"
// @Success 303 "Redirect to the grade list"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	student, err := c.studentService.Create(ctx, req.Name, req.LastName, req.Group)
	if err != nil {
		middleware.RedirectWithError(ctx, sess, err, middleware.PathGrades)
		return
	}

	sess.PushFlash("Alumno "+student.FullName()+" agregado al grupo "+student.Group, session.SeveritySuccess)
	ctx.Redirect(http.StatusSeeOther, middleware.PathGrades)
}

// Update rewrites a student's identity together with one trimester's grades.
// @Summary Update student
// @Tags students
// @Accept json
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Identity and one trimester"
// @Success 303 "Redirect to the grade list"
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	id, ok := parseStudentID(ctx)
	if !ok {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	student, err := c.studentService.UpdateStudentAndGrades(
		ctx, id, req.Name, req.LastName, req.Group, req.Trimester, req.Grades.ToModel())
	if err != nil {
		middleware.RedirectWithError(ctx, sess, err, middleware.PathGrades)
		return
	}

	sess.PushFlash("Datos de "+student.FullName()+" actualizados", session.SeveritySuccess)
	ctx.Redirect(http.StatusSeeOther, middleware.PathGrades)
}

// UpdateGrades overwrites one trimester's scores for a student in the
// caller's own group.
// @Summary Capture grades
// @Tags students
// @Accept json
// @Param id path int true "Student ID"
// @Param request body dto.UpdateGradesRequest true "One trimester's scores"
// @Success 303 "Redirect to the grade list"
// @Router /students/{id}/grades [put]
func (c *StudentController) UpdateGrades(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	id, ok := parseStudentID(ctx)
	if !ok {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	var req dto.UpdateGradesRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	student, err := c.studentService.UpdateGradesOnly(ctx, sess.Group(), id, req.Trimester, req.Grades.ToModel())
	if err != nil {
		middleware.RedirectWithError(ctx, sess, err, middleware.PathGrades)
		return
	}

	sess.PushFlash("Calificaciones de "+student.FullName()+" actualizadas", session.SeveritySuccess)
	ctx.Redirect(http.StatusSeeOther, middleware.PathGrades)
}

// Delete removes a student permanently.
// @Summary Delete student
// @Tags students
// @Param id path int true "Student ID"
// @Success 303 "Redirect to the grade list"
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	id, ok := parseStudentID(ctx)
	if !ok {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathGrades)
		return
	}

	student, err := c.studentService.Delete(ctx, id)
	if err != nil {
		middleware.RedirectWithError(ctx, sess, err, middleware.PathGrades)
		return
	}

	sess.PushFlash("Alumno "+student.FullName()+" eliminado", session.SeveritySuccess)
	ctx.Redirect(http.StatusSeeOther, middleware.PathGrades)
}
