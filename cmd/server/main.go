// Package main initializes and starts the bloglist HTTP server, setting up
// configuration, logging, database connections, repositories, services, and
// handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/junowong/bloglist/internal/config"
	"github.com/junowong/bloglist/internal/db"
	"github.com/junowong/bloglist/internal/logger"
	"github.com/junowong/bloglist/internal/repository"
	"github.com/junowong/bloglist/internal/server/handler/http"
	"github.com/junowong/bloglist/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dsn := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	buildVersion := version
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	buildDateValue := buildDate
	if buildDateValue == "" {
		buildDateValue = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDateValue)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	sessionTTL, err := time.ParseDuration(options.SessionTTL)
	if err != nil {
		zapLogger.Fatal("invalid session TTL", zap.Error(err))
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically drop expired login tokens.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour,
		zapLogger,
	)

	// Initialize repositories for users and posts.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	postRepo := repository.NewPostgresPostRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, sessionTTL)
	postService := service.NewPostService(postRepo)

	// Create HTTP handlers for auth and post endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	postHandler := &http.PostHandler{PostService: postService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, postHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
