package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/controllers"
	appRepos "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/repositories"
	appRoutes "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/routes"
	appServices "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/services"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/config"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/db"
	appMiddleware "github.com/MrUnRobot/sistema-calificaciones-definitive/internal/middleware"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/logger"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/validation"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	ReportService     appServices.ReportService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	ReportController  *appControllers.ReportController
	SessionMiddleware *appMiddleware.SessionMiddleware
	SessionStore      *session.Store
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage connects the document store and seeds the default principals.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*db.Mongo, error) {
	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Connecting to document store...")
	store, err := db.NewMongo(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to document store")
		return nil, err
	}
	lgr.Info().Msg("Document store connection established.")

	teachers := appRepos.NewTeacherRepository(store)
	if err := seed.CreateDefaultData(context.Background(), teachers, lgr); err != nil {
		// Startup proceeds; an unseeded store only blocks logins, not boot.
		lgr.Error().Err(err).Msg("Failed to seed default principals, proceeding anyway...")
	}

	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store *db.Mongo, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	deps.SessionStore = session.NewStore(cfg.SessionTTL())
	tokens := session.NewTokenService(session.TokenConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       cfg.SessionTTL(),
		Issuer:    cfg.Session.Issuer,
	})
	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(
		deps.SessionStore, tokens, cfg.Session.CookieName, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.TeacherRepository, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.ReportService = appServices.NewReportService(deps.Repos.StudentRepository, deps.Repos.TeacherRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.SessionMiddleware)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps, nil
}

// SetupRouter builds the gin engine, registers the custom binding rules and
// mounts every route.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterRules(v); err != nil {
			return nil, fmt.Errorf("failed to register binding rules: %w", err)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.StudentController,
		deps.ReportController,
		deps.SessionMiddleware,
	)

	lgr.Info().Msg("Router configured")
	return router, nil
}
