package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vhvplatform/go-permit-notification-service/internal/directory"
	"github.com/vhvplatform/go-permit-notification-service/internal/handler"
	"github.com/vhvplatform/go-permit-notification-service/internal/middleware"
	"github.com/vhvplatform/go-permit-notification-service/internal/service"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/config"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
	"github.com/vhvplatform/go-permit-notification-service/internal/smtp"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	log.Info("Starting Permit Notification Service...")

	// Mail transport
	pool := smtp.NewPool(smtp.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Secure:   cfg.SMTP.Secure,
	}, cfg.SMTP.PoolSize)
	defer pool.Close()

	emailService := service.NewEmailService(pool, service.EmailConfig{
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	}, log)

	// Outside production, check connectivity and credentials up front. A
	// failure here is diagnostic only and never blocks the send path.
	if !cfg.IsProduction() {
		if err := emailService.Verify(); err != nil {
			log.Warn("SMTP verification failed", "error", err, "host", cfg.SMTP.Host)
		} else {
			log.Info("SMTP connection verified", "host", cfg.SMTP.Host)
		}
	}

	dispatcher := service.NewDispatcher(emailService, log)
	store := directory.NewStore()

	notifyHandler := handler.NewNotifyHandler(dispatcher, log)
	permitHandler := handler.NewPermitHandler(store, log)

	rateLimiter := middleware.NewClientRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))
	{
		notify := api.Group("/notify")
		{
			notify.POST("/permit-submission", notifyHandler.PermitSubmission)
			notify.POST("/comment", notifyHandler.Comment)
			notify.POST("/approval", notifyHandler.Approval)
		}

		api.GET("/permits", permitHandler.ListPermits)
		api.GET("/users", permitHandler.ListUsers)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Permit Notification Service started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Permit Notification Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Permit Notification Service stopped")
}
