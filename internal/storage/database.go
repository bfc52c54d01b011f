package storage

import (
	"github.com/zbonzo/warlock/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB opens the sqlite database and keeps the schema updated via
// AutoMigrate.
func OpenDB(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.Game{},
		&game.Participant{},
		&game.Monster{},
		&game.RoundSummary{},
		&game.User{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
