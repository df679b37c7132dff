package main

import (
	"travlog/internal/config" // Custom import path (Config)
	"travlog/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
