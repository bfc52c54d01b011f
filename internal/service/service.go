package service

import (
	"errors"
	"sync"

	"github.com/zbonzo/warlock/internal/config"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/storage"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrActionsLocked     = errors.New("actions are locked; resolving current round")
	ErrPlayerNotInGame   = errors.New("player not in game")
	ErrNotResultsPhase   = errors.New("game is not in the results phase")
	ErrGameFull          = errors.New("game is full")
	ErrGameStarted       = errors.New("game is already starting or started")
	ErrNotEnoughPlayers  = errors.New("not enough players to start the game")
)

// MaxParticipants caps a room's roster.
const MaxParticipants = 8

// Service orchestrates room mutations. Every read-modify-write on one
// room happens under that room's lock, so concurrent submissions for the
// same room serialize while different rooms proceed in parallel.
type Service struct {
	repo  storage.Repository
	reg   *game.Registry
	cfg   *config.LoadedConfig
	locks roomLocks
}

// New builds the service over a repository and the loaded configuration.
func New(repo storage.Repository, cfg *config.LoadedConfig) *Service {
	return &Service{repo: repo, reg: cfg.Registry(), cfg: cfg}
}

// Abilities returns the configured class ability catalog in file order.
func (s *Service) Abilities() []game.Ability {
	return s.cfg.Abilities
}

// roomLocks hands out one mutex per game id.
type roomLocks struct {
	mu sync.Mutex
	m  map[uint]*sync.Mutex
}

func (l *roomLocks) forGame(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = make(map[uint]*sync.Mutex)
	}
	lk, ok := l.m[id]
	if !ok {
		lk = &sync.Mutex{}
		l.m[id] = lk
	}
	return lk
}
