package api

import (
	"github.com/zbonzo/warlock/internal/service"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	svc *service.Service
}

// NewGameHandler creates a GameHandler over the game service.
func NewGameHandler(svc *service.Service) *GameHandler {
	return &GameHandler{svc: svc}
}
