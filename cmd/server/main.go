package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dashboardapp "github.com/chronodo/backend/internal/application/dashboard"
	identityapp "github.com/chronodo/backend/internal/application/identity"
	projectapp "github.com/chronodo/backend/internal/application/project"
	trackingapp "github.com/chronodo/backend/internal/application/tracking"
	"github.com/chronodo/backend/internal/infrastructure/auth"
	"github.com/chronodo/backend/internal/infrastructure/cache"
	"github.com/chronodo/backend/internal/infrastructure/config"
	"github.com/chronodo/backend/internal/infrastructure/logger"
	"github.com/chronodo/backend/internal/infrastructure/persistence"
	"github.com/chronodo/backend/internal/interfaces/http/handler"
	"github.com/chronodo/backend/internal/interfaces/http/middleware"
	"github.com/chronodo/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Chronodo Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database schema up to date")

	// Token revocations and the role cache share one Redis connection
	// when Redis is enabled. Without Redis both fall back to in-memory
	// implementations, which only suit single-instance deployments.
	var (
		revocations auth.TokenRevocations
		roleCache   cache.RoleCache
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()

		revocations = auth.NewRedisTokenRevocations(redisClient)
		roleCache = cache.NewRedisRoleCache(redisClient, cfg.RoleCache.TTL, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		revocations = auth.NewInMemoryTokenRevocations()
		roleCache = cache.NewInMemoryRoleCache(
			cache.WithTTL(cfg.RoleCache.TTL),
			cache.WithLogger(log),
		)
		log.Info("Redis disabled, using in-memory token revocations and role cache")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	teamRepo := persistence.NewGormTeamRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	timeEntryRepo := persistence.NewGormTimeEntryRepository(db.DB)
	timesheetRepo := persistence.NewGormTimesheetRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revocations, log)
	userService := identityapp.NewUserService(userRepo, roleCache, log)
	teamService := identityapp.NewTeamService(teamRepo, userRepo, log)
	projectService := projectapp.NewProjectService(projectRepo, log)
	categoryService := trackingapp.NewCategoryService(categoryRepo, log)
	timeEntryService := trackingapp.NewTimeEntryService(timeEntryRepo, projectRepo, log)
	timesheetService := trackingapp.NewTimesheetService(timesheetRepo, log)
	dashboardService := dashboardapp.NewDashboardService(userRepo, timeEntryRepo, timesheetRepo, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. JWT - Authenticate everything outside the skip list
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revocations = revocations
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/ping")
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// The manager guard re-resolves the role from the database through the
	// cache so promotions and demotions apply before the token expires.
	roleResolver := func(ctx context.Context, userID string) (string, error) {
		id, err := uuid.Parse(userID)
		if err != nil {
			return "", err
		}
		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return string(user.Role), nil
	}
	requireManager := middleware.RequireRole(middleware.RoleConfig{
		Cache:    roleCache,
		Resolver: roleResolver,
		Logger:   log,
	}, "manager")

	router.Setup(engine, router.Handlers{
		System:    handler.NewSystemHandler(db.DB),
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Team:      handler.NewTeamHandler(teamService),
		Project:   handler.NewProjectHandler(projectService),
		Category:  handler.NewCategoryHandler(categoryService),
		TimeEntry: handler.NewTimeEntryHandler(timeEntryService),
		Timesheet: handler.NewTimesheetHandler(timesheetService),
		Dashboard: handler.NewDashboardHandler(dashboardService, cfg.Dashboard.DefaultTrendDays),
	}, requireManager)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
