package main

import (
	"github.com/zbonzo/warlock/internal/config"
	"github.com/zbonzo/warlock/internal/logging"
	"github.com/zbonzo/warlock/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid warlock configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a warlock_config.json with 'ability_list', 'racial_ability_list', 'race_list' and 'class_list' arrays plus optional 'balance', 'monster' and 'server' sections",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
