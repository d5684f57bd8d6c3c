package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/vidyalayahq/vidyalaya/internal/pkg/logger"
	"github.com/vidyalayahq/vidyalaya/internal/server"
)

// @title Vidyalaya API
// @version 1.0
// @description Multi-tenant backend for institution microsites, student enrollment and roll number allocation

// @contact.name API Support
// @contact.email support@vidyalaya.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
