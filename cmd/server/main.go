package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodimello/internal/config"
	"moodimello/internal/database"
	"moodimello/internal/handlers"
	"moodimello/internal/repository"
	"moodimello/internal/scheduler"
	"moodimello/internal/security"
	"moodimello/internal/service"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories and services
	profileRepo := repository.NewProfileRepository(db)
	profileService := service.NewProfileService(profileRepo)

	if err := profileService.SeedDefaultProfiles(); err != nil {
		log.Printf("Warning: Failed to seed default profiles: %v", err)
	}

	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Printf("Warning: Failed to initialize email service, session summaries disabled: %v", err)
		emailService, _ = service.NewEmailService(context.Background(), "", "", "", "", false)
	}

	if cfg.ParentPINHash == "" {
		log.Println("Warning: PARENT_PIN_HASH not set, children can end sessions without a PIN")
	}
	if cfg.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET not set, session tokens will not survive a restart")
	}

	host := service.NewHostService(profileService, emailService, service.HostOptions{
		ParentPINHash: cfg.ParentPINHash,
	})
	issuer := security.NewTokenIssuer(cfg.SessionSecret, cfg.SessionDuration)

	// Initialize handlers
	middleware := handlers.NewMiddleware(issuer, host)
	sessionHandler := handlers.NewSessionHandler(profileService, host, issuer)
	gameHandler := handlers.NewGameHandler(host, cfg.AppBaseURL)

	handler := handlers.NewRouter(middleware, sessionHandler, gameHandler)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Expire sessions that outlived their token
	janitor := scheduler.NewLoop()
	janitor.Every(sessionSweepInterval, func() {
		if n := host.ExpireSessions(cfg.SessionDuration); n > 0 {
			log.Printf("Expired %d child sessions", n)
		}
	})

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: Server shutdown: %v", err)
	}
	janitor.Close()
	host.Shutdown()
}
