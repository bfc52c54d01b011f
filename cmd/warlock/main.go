package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/zbonzo/warlock/internal/api"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/logging"
	"github.com/zbonzo/warlock/internal/service"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()
	checkEnvVars([]string{constants.EnvSessionSecret})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./warlock_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/warlock.db"
	}
	repo := createRepositoryOrExit(dbPath)

	svc := service.New(repo, cfg)
	handler := api.NewGameHandler(svc)
	authHandler := api.NewAuthHandler(svc)

	// Background scanner force-resolves rounds whose action deadline
	// passed; the claim column keeps replicas from double-resolving.
	svc.StartTimeoutScanner(context.Background(), 5*time.Second, uuid.NewString())

	router := gin.Default()
	registerRoutes(router, handler, authHandler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
