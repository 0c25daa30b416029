package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobtracker/backend/api"
	migrations "github.com/jobtracker/backend/db"
	"github.com/jobtracker/backend/internal/config"
	"github.com/jobtracker/backend/internal/db"
	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/internal/repository/sqlite"
	"github.com/jobtracker/backend/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting jobtracker server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection
	db, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if err := applyMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	if err := bootstrapAdmin(ctx, sqlite.New(db, nil), cfg.Admin); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, db)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}

func applyMigrations(ctx context.Context, d *db.DB) error {
	return db.Migrate(ctx, d, migrations.Migrations)
}

// bootstrapAdmin creates the configured admin account if it does not exist
// yet. There is no register path for admins; this is the only way in.
func bootstrapAdmin(ctx context.Context, repo repository.UserRepo, admin config.AdminConfig) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	exists, err := repo.UsernameExists(ctx, admin.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = repo.CreateUser(ctx, &models.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Printf("Created admin account %q", admin.Username)
	return nil
}
