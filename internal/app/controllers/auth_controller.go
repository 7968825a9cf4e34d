package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/services"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/middleware"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/apperrors"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
)

// Display labels of the three academic periods.
var trimesterLabels = map[models.TrimesterKey]string{
	models.TrimesterFirst:  "Primer Trimestre",
	models.TrimesterSecond: "Segundo Trimestre",
	models.TrimesterThird:  "Tercer Trimestre",
}

// AuthController handles login, logout and the trimester selection views.
type AuthController struct {
	authService services.AuthService
	sessions    *middleware.SessionMiddleware
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *middleware.SessionMiddleware) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
	}
}

// LoginView renders the login view-model and drains pending flashes.
// @Summary Login view
// @Description Returns the login view-model, including queued flash messages
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginViewResponse
// @Router /login [get]
func (c *AuthController) LoginView(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)
	ctx.JSON(http.StatusOK, dto.LoginViewResponse{
		Authenticated: sess != nil && sess.IsAuthenticated(),
		Session:       sessionInfo(sess),
		Messages:      flashMessages(sess),
	})
}

// Login authenticates the submitted credentials and starts a fresh session.
// @Summary Login
// @Description Authenticates a principal and redirects to its home view
// @Tags auth
// @Accept json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 303 "Redirect to the role's home view"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		// A malformed form reads the same as bad credentials to the client.
		middleware.RedirectWithError(ctx, sess, apperrors.ErrInvalidCredentials, middleware.PathLogin)
		return
	}

	teacher, err := c.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		middleware.RedirectWithError(ctx, sess, err, middleware.PathLogin)
		return
	}

	// Rotate the session on privilege change.
	sess = c.sessions.Renew(ctx)
	sess.Bind(teacher)
	sess.PushFlash("Bienvenido, "+teacher.DisplayName, session.SeveritySuccess)

	if teacher.IsAdmin() {
		ctx.Redirect(http.StatusSeeOther, middleware.PathDashboard)
		return
	}
	ctx.Redirect(http.StatusSeeOther, middleware.PathTrimesters)
}

// Logout ends the authenticated session.
// @Summary Logout
// @Description Destroys the session and redirects to the login view
// @Tags auth
// @Success 303 "Redirect to login"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	// The replacement anonymous session carries the goodbye flash across
	// the redirect.
	sess := c.sessions.Renew(ctx)
	sess.PushFlash("Sesión cerrada correctamente", session.SeveritySuccess)
	ctx.Redirect(http.StatusSeeOther, middleware.PathLogin)
}

// Trimesters renders the trimester selection view-model.
// @Summary Trimester selection view
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TrimesterViewResponse
// @Router /trimesters [get]
func (c *AuthController) Trimesters(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)
	selected := sess.Trimester()

	options := make([]dto.TrimesterOption, 0, len(models.Trimesters))
	for _, key := range models.Trimesters {
		options = append(options, dto.TrimesterOption{
			Key:      key,
			Label:    trimesterLabels[key],
			Selected: key == selected,
		})
	}

	ctx.JSON(http.StatusOK, dto.TrimesterViewResponse{
		Session:  sessionInfo(sess),
		Options:  options,
		Messages: flashMessages(sess),
	})
}

// SelectTrimester records the chosen trimester on the session and redirects
// to the grade list.
// @Summary Select trimester
// @Tags auth
// @Param trimestre formData string true "Trimester key"
// @Success 303 "Redirect to the grade list"
// @Router /trimesters [post]
func (c *AuthController) SelectTrimester(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)

	key := models.TrimesterKey(ctx.PostForm("trimestre"))
	if !key.IsValid() {
		middleware.RedirectWithError(ctx, sess, apperrors.ErrValidationFailed, middleware.PathTrimesters)
		return
	}

	sess.SetTrimester(key)
	ctx.Redirect(http.StatusSeeOther, middleware.PathGrades)
}
