package main

import (
	"os"

	"github.com/deniz/coursehub/internal/pkg/logger"
	"github.com/deniz/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course management API for users, courses, assignments, submissions and enrollment

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
