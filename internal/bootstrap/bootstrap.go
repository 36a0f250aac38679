package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oguzhanv/courseflow/internal/app/controllers"
	appMigrations "github.com/oguzhanv/courseflow/internal/app/migrations"
	appRepos "github.com/oguzhanv/courseflow/internal/app/repositories"
	appRoutes "github.com/oguzhanv/courseflow/internal/app/routes"
	appServices "github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/config"
	"github.com/oguzhanv/courseflow/internal/db"
	appMiddleware "github.com/oguzhanv/courseflow/internal/middleware"
	pkgAuth "github.com/oguzhanv/courseflow/internal/pkg/auth"
	"github.com/oguzhanv/courseflow/internal/pkg/logger"
	"github.com/oguzhanv/courseflow/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	CourseService     *appServices.CourseService
	EnrollmentService *appServices.EnrollmentService
	AdminService      *appServices.AdminService
	AuthController    *appControllers.AuthController
	CourseController  *appControllers.CourseController
	StudentController *appControllers.StudentController
	TeacherController *appControllers.TeacherController
	AdminController   *appControllers.AdminController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the demo dataset.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed demo data after migrations. A partial seed failure is logged
	// but does not block startup.
	repos := appRepos.NewRepositories(dbPool)
	if err := seed.CreateDefaultData(context.Background(), repos.UserRepository, repos.CourseRepository, repos.EnrollmentRepository, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.UserRepository, deps.Repos.CourseRepository)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
	)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.EnrollmentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.CourseService, deps.EnrollmentService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.StudentController,
		deps.TeacherController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
