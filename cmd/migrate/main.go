package main

import (
	"github.com/cashcashapp/cashcash-backend/internal/config" // Configuration
	"github.com/cashcashapp/cashcash-backend/internal/db"     // Database migration
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db.Migrate(dsn)
}
