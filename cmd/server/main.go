package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"referralbridge/internal/app"
	"referralbridge/internal/config"
	"referralbridge/internal/handlers"
	"referralbridge/internal/middleware"
	"referralbridge/internal/services"
	"referralbridge/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	store, err := app.NewStorage(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize export storage")
	}

	reports := services.NewReportService(cfg.Affiliate, application.Repositories.Referrals, store, logger)

	// Initialize handlers
	h := &routes.Handlers{
		Webhook: handlers.NewWebhookHandler(application.Services.Ingest, logger),
		Admin:   handlers.NewAdminHandler(reports, application.Services.Settings, application.Services.Metadata, logger),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"mongodb": application.Mongo,
			"redis":   application.Redis,
		}),
	}

	if !cfg.App.Debug && !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		logger.WithError(err).Fatal("Invalid trusted proxies")
	}

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	routes.Setup(router, h, routes.Secrets{
		JWT:     cfg.Security.JWTSecret,
		Webhook: cfg.Security.WebhookSecret,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.WithError(err).Error("Server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	logger.Info("Server stopped")
}
