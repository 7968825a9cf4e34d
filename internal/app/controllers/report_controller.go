package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/services"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/middleware"
)

// ReportController handles the printable group report and the admin
// dashboard.
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GroupReport renders the printable report of one group and trimester.
// Teachers always report on their own group; admins pick one with the
// `grupo` query parameter.
// @Summary Group report
// @Tags reports
// @Produce json
// @Param grupo query string false "Group label (admins only)"
// @Param trimestre query string false "Trimester key, defaults to the session selection"
// @Success 200 {object} dto.GroupReportResponse
// @Failure 400 {object} dto.APIResponse "Unknown group or trimester"
// @Router /reports [get]
func (c *ReportController) GroupReport(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	group := sess.Group()
	if sess.Role() == models.RoleAdmin {
		group = ctx.Query("grupo")
	}

	trimester := sess.Trimester()
	if key := models.TrimesterKey(ctx.Query("trimestre")); key.IsValid() {
		trimester = key
	}

	report, err := c.reportService.GroupReport(ctx, group, trimester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GroupReportResponse{
		Group:       report.Group,
		Trimester:   report.Trimester,
		TeacherName: report.TeacherName,
		Rows:        toGradeRows(report.Rows),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Dashboard renders the admin dashboard figures.
// @Summary Admin dashboard
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 503 {object} dto.APIResponse "Storage unavailable"
// @Router /admin/dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	stats, err := c.reportService.DashboardStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	perLevel := make([]dto.GradeLevelCountResponse, 0, len(stats.PerGradeLevel))
	for _, level := range stats.PerGradeLevel {
		perLevel = append(perLevel, dto.GradeLevelCountResponse{
			Level: level.Level,
			Total: level.Total,
		})
	}

	ctx.JSON(http.StatusOK, dto.DashboardResponse{
		ActiveTeachers: stats.ActiveTeachers,
		TotalStudents:  stats.TotalStudents,
		PerGradeLevel:  perLevel,
		Messages:       flashMessages(sess),
	})
}
