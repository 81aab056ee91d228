package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datarijksnoord/backend/docs"
	"github.com/datarijksnoord/backend/internal/auth"
	"github.com/datarijksnoord/backend/internal/config"
	"github.com/datarijksnoord/backend/internal/handlers"
	"github.com/datarijksnoord/backend/internal/logger"
	"github.com/datarijksnoord/backend/internal/middleware"
	"github.com/datarijksnoord/backend/internal/repositories"
	"github.com/datarijksnoord/backend/internal/services"
	"github.com/datarijksnoord/backend/migrations"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Data Rijks Noord API
// @version 1.0
// @description Map pins of government organisations in the northern Netherlands and the functies (job roles) linked to them

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The access_token cookie set by /login works as well.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Data Rijks Noord API")

	// Connect to database; without a store there is nothing to serve
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	functieRepo := repositories.NewFunctieRepository(db, logger.Logger)
	pinRepo := repositories.NewPinRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	functieService := services.NewFunctieService(functieRepo, logger.Logger)
	pinService := services.NewPinService(pinRepo, logger.Logger)

	// Seed the admin account
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
			logger.Logger.Fatal("Failed to seed admin account", zap.Error(err))
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger, cfg.JWT.AccessTokenExpiry, cfg.JWT.CookieSecure)
	functieHandler := handlers.NewFunctieHandler(functieService, logger.Logger)
	pinHandler := handlers.NewPinHandler(pinService, logger.Logger)
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)

	// Mutations stay open unless admin writes are enforced
	var writeGuard func(http.Handler) http.Handler
	if cfg.Admin.EnforceWrites {
		writeGuard = middleware.RequireAdmin(tokenGenerator, logger.Logger)
		logger.Logger.Info("Admin session required for functie and pin mutations")
	}

	// Setup router
	r := chi.NewRouter()
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimit(cfg.Server.MaxRequestSize))

	// Swagger documentation
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	if cfg.Server.BasePath != "" {
		docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	registerAPI := func(r chi.Router) {
		healthHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r)
		functieHandler.RegisterRoutes(r, writeGuard)
		pinHandler.RegisterRoutes(r, writeGuard)
	}
	if cfg.Server.BasePath == "" {
		registerAPI(r)
	} else {
		r.Route(cfg.Server.BasePath, registerAPI)
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
