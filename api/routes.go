package api

import (
	"github.com/gorilla/mux"
	"github.com/jobtracker/backend/internal/config"
	"github.com/jobtracker/backend/internal/db"
	"github.com/jobtracker/backend/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo)
	adminHandler := NewAdminHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/check-username", authHandler.CheckUsername).Methods("GET")
	r.HandleFunc("/api/auth/check-email", authHandler.CheckEmail).Methods("GET")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddlewareWithSecret(cfg.JWTSecret))

	// Jobs endpoints
	protected.HandleFunc("/jobs", jobsHandler.Create).Methods("POST")
	protected.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
	protected.HandleFunc("/jobs/stats", jobsHandler.Stats).Methods("GET")
	protected.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Get).Methods("GET")
	protected.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Update).Methods("PUT")
	protected.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Delete).Methods("DELETE")

	// Admin endpoints
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", adminHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE")

	return r
}
