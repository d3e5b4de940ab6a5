package main

import (
	"log/slog"
	"os"

	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/logging"
	"github.com/finarchitect/resetpass/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger
	for _, warning := range cfg.Warnings {
		slog.Warn(warning)
	}

	// Create a new server instance.
	s := server.New(cfg)

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server.
	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
