package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/md-abdullah-92/edurecords/internal/app/controllers"
	appRepos "github.com/md-abdullah-92/edurecords/internal/app/repositories"
	appRoutes "github.com/md-abdullah-92/edurecords/internal/app/routes"
	appServices "github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/config"
	"github.com/md-abdullah-92/edurecords/internal/db"
	appMiddleware "github.com/md-abdullah-92/edurecords/internal/middleware"
	pkgAuth "github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// Dependencies holds every wired component of the service.
type Dependencies struct {
	Executor               *appRepos.Executor
	SessionManager         *pkgAuth.SessionManager
	RecordService          appServices.RecordService
	RegistrationService    appServices.RegistrationService
	SessionService         appServices.SessionService
	RecordController       *appControllers.RecordController
	RegistrationController *appControllers.RegistrationController
	SessionController      *appControllers.SessionController
	HealthController       *appControllers.HealthController
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger reads the configuration at configPath (plus the
// environment) and configures the global logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// PoolConfig derives the admission settings of the pool from cfg.
func PoolConfig(cfg *config.Config) (db.PoolConfig, error) {
	timeout, err := time.ParseDuration(cfg.Pool.AcquireTimeout)
	if err != nil {
		return db.PoolConfig{}, fmt.Errorf("failed to parse acquire timeout: %w", err)
	}
	return db.PoolConfig{
		MaxConns:           cfg.Pool.MaxConns,
		QueueLimit:         cfg.Pool.QueueLimit,
		WaitForConnections: cfg.Pool.WaitForConnections,
		AcquireTimeout:     timeout,
	}, nil
}

// SetupDatabase connects, optionally migrates, and returns the pool every
// request borrows connections from.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Pool, error) {
	lgr.Info().
		Str("driver", cfg.Database.Driver).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Establishing database connection...")

	bunDB, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	bunDB.AddQueryHook(db.NewQueryLogHook(lgr))
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.AutoMigrate {
		if err := RunMigrations(cfg, bunDB, lgr); err != nil {
			_ = bunDB.Close()
			return nil, err
		}
	}

	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		_ = bunDB.Close()
		return nil, err
	}

	lgr.Info().
		Int("maxConns", poolCfg.MaxConns).
		Int("queueLimit", poolCfg.QueueLimit).
		Bool("waitForConnections", poolCfg.WaitForConnections).
		Dur("acquireTimeout", poolCfg.AcquireTimeout).
		Msg("Connection pool ready")
	return db.NewPool(bunDB, poolCfg), nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, pool *db.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Executor = appRepos.NewExecutor(pool)

	ttl, err := time.ParseDuration(cfg.Security.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session ttl: %w", err)
	}
	if cfg.Security.SessionSecret == "" {
		lgr.Warn().Msg("No session secret configured; using a random one, sessions will not survive a restart")
	}
	deps.SessionManager, err = pkgAuth.NewSessionManager(pkgAuth.SessionConfig{
		SecretKey: cfg.Security.SessionSecret,
		TTL:       ttl,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize session manager")
		return nil, err
	}

	deps.RecordService = appServices.NewRecordService(deps.Executor, appServices.RecordServiceConfig{
		Scoped:          cfg.ScopedSchema(),
		HashedPasswords: cfg.Security.HashCreatorPasswords,
	})
	deps.RegistrationService = appServices.NewRegistrationService(deps.Executor, cfg.Security.HashCreatorPasswords)
	deps.SessionService = appServices.NewSessionService(deps.SessionManager, deps.RecordService)

	deps.RecordController = appControllers.NewRecordController(deps.RecordService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.SessionController = appControllers.NewSessionController(deps.SessionService, deps.SessionManager.TTL(), cfg.Security.SecureCookie)
	deps.HealthController = appControllers.NewHealthController(pool)

	lgr.Info().
		Str("schemaGeneration", cfg.Schema.Generation).
		Bool("hashCreatorPasswords", cfg.Security.HashCreatorPasswords).
		Msg("Dependencies initialized")
	return deps, nil
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), appMiddleware.Recovery())

	appRoutes.SetupRouter(router,
		deps.RecordController,
		deps.RegistrationController,
		deps.SessionController,
		deps.HealthController,
	)

	return router
}
