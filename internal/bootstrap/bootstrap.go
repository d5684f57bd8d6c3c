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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vidyalayahq/vidyalaya/docs" // Import generated swagger docs
	appControllers "github.com/vidyalayahq/vidyalaya/internal/app/controllers"
	appMigrations "github.com/vidyalayahq/vidyalaya/internal/app/migrations"
	appRepos "github.com/vidyalayahq/vidyalaya/internal/app/repositories"
	appRoutes "github.com/vidyalayahq/vidyalaya/internal/app/routes"
	appServices "github.com/vidyalayahq/vidyalaya/internal/app/services"
	"github.com/vidyalayahq/vidyalaya/internal/config"
	"github.com/vidyalayahq/vidyalaya/internal/db"
	appMiddleware "github.com/vidyalayahq/vidyalaya/internal/middleware"
	pkgAuth "github.com/vidyalayahq/vidyalaya/internal/pkg/auth"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/helpers"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/logger"
	"github.com/vidyalayahq/vidyalaya/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	EnrollmentService     *appServices.EnrollmentService
	InstitutionService    *appServices.InstitutionService
	ScopeService          *appServices.ScopeService
	StudentService        *appServices.StudentService
	CatalogService        *appServices.CatalogService
	PaymentService        *appServices.PaymentService
	PortalService         *appServices.PortalService
	InstitutionController *appControllers.InstitutionController
	ScopeController       *appControllers.ScopeController
	StudentController     *appControllers.StudentController
	CatalogController     *appControllers.CatalogController
	PaymentController     *appControllers.PaymentController
	PortalController      *appControllers.PortalController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	OwnerVerifier         *pkgAuth.OwnerVerifier
	PortalTokens          *pkgAuth.PortalTokenService
	Logger                zerolog.Logger
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
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.OwnerVerifier = pkgAuth.NewOwnerVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
	deps.PortalTokens = pkgAuth.NewPortalTokenService(
		cfg.Portal.Secret,
		cfg.Portal.Issuer,
		helpers.ParseDuration(cfg.Portal.TokenExpiration, 12*time.Hour),
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.CounterRepository,
		deps.Repos.StudentRepository,
		deps.Repos.InstitutionRepository,
		deps.Repos.ScopeRepository,
		deps.Repos.PlanRepository,
		lgr,
	)
	deps.InstitutionService = appServices.NewInstitutionService(deps.Repos.InstitutionRepository, cfg, lgr)
	deps.ScopeService = appServices.NewScopeService(deps.Repos.ScopeRepository, deps.Repos.InstitutionRepository, lgr)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.InstitutionRepository,
		deps.EnrollmentService,
		lgr,
	)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.PlanRepository,
		deps.Repos.FeatureRepository,
		deps.Repos.CouponRepository,
		lgr,
	)
	deps.PaymentService = appServices.NewPaymentService(deps.Repos.PaymentRepository, deps.CatalogService, lgr)
	deps.PortalService = appServices.NewPortalService(
		deps.Repos.StudentRepository,
		deps.Repos.InstitutionRepository,
		deps.PortalTokens,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.OwnerVerifier, deps.PortalTokens)

	deps.InstitutionController = appControllers.NewInstitutionController(deps.InstitutionService)
	deps.ScopeController = appControllers.NewScopeController(deps.ScopeService)
	deps.StudentController = appControllers.NewStudentController(
		deps.EnrollmentService,
		deps.StudentService,
		deps.PortalService,
		cfg,
	)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.PaymentController = appControllers.NewPaymentController(deps.PaymentService)
	deps.PortalController = appControllers.NewPortalController(deps.PortalService)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.InstitutionController,
		deps.ScopeController,
		deps.StudentController,
		deps.CatalogController,
		deps.PaymentController,
		deps.PortalController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
