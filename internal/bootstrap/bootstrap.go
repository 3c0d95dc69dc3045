package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ezypuz/courseplanner/internal/app/controllers"
	appMigrations "github.com/ezypuz/courseplanner/internal/app/migrations"
	appRepos "github.com/ezypuz/courseplanner/internal/app/repositories"
	appRoutes "github.com/ezypuz/courseplanner/internal/app/routes"
	appServices "github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/batch"
	"github.com/ezypuz/courseplanner/internal/config"
	"github.com/ezypuz/courseplanner/internal/db"
	appMiddleware "github.com/ezypuz/courseplanner/internal/middleware"
	pkgAuth "github.com/ezypuz/courseplanner/internal/pkg/auth"
	"github.com/ezypuz/courseplanner/internal/pkg/helpers"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
	"github.com/ezypuz/courseplanner/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	CourseService       appServices.CourseService
	TimetableService    appServices.TimetableService
	BoardService        appServices.BoardService
	PostService         appServices.PostService
	CommentService      appServices.CommentService
	ImportService       batch.ImportService
	AuthController      *appControllers.AuthController
	CourseController    *appControllers.CourseController
	TimetableController *appControllers.TimetableController
	BoardController     *appControllers.BoardController
	PostController      *appControllers.PostController
	CommentController   *appControllers.CommentController
	BatchController     *appControllers.BatchController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
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
	migrator := appMigrations.NewMigrator(dbPool, lgr)

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 720*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.TimetableService = appServices.NewTimetableService(
		deps.Repos.TimetableRepository,
		deps.Repos.CourseRepository,
		database,
		dbPool,
		lgr,
	)
	deps.BoardService = appServices.NewBoardService(deps.Repos.BoardRepository, lgr)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.BoardRepository, lgr)
	deps.CommentService = appServices.NewCommentService(deps.Repos.CommentRepository, deps.Repos.PostRepository, lgr)

	catalogClient := batch.NewCatalogClient(
		cfg.CatalogImport.BaseURL,
		helpers.ParseDuration(cfg.CatalogImport.RequestTimeout, 2*time.Minute),
	)
	deps.ImportService = batch.NewImportService(catalogClient, deps.Repos.CourseRepository, database, cfg.CatalogImport.BatchSize, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService, lgr)
	deps.BoardController = appControllers.NewBoardController(deps.BoardService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService, lgr)
	deps.BatchController = appControllers.NewBatchController(deps.ImportService, lgr)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.TimetableController,
		deps.BoardController,
		deps.PostController,
		deps.CommentController,
		deps.BatchController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
