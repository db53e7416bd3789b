package main

import (
	"log"
	"net/http"

	"hrms/config"
	"hrms/database"
	"hrms/handlers"
	"hrms/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router := handlers.NewRouter(cfg, db)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Default operator credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
