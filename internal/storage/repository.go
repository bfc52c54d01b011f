package storage

import (
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

// Repository is the persistence boundary for game rooms, round summaries
// and player profiles.
type Repository interface {
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	FindGameByJoinCode(code string) (*game.Game, error)
	UpdateGame(g *game.Game) error
	GetPublicGames() ([]game.Game, error)
	RemoveParticipantByUUID(gameID uint, playerUUID string) error

	// Statistics sink: write-once round summaries plus cumulative
	// per-player counters.
	SaveRoundSummary(s *game.RoundSummary) error
	GetRoundSummaries(gameID uint) ([]game.RoundSummary, error)
	UpdateStatsOnGameEnd(g *game.Game) error

	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	GetTopPlayers(limit int) ([]game.User, error)

	// ClaimTimedOutGameIDs atomically claims up to limit games that are
	// in the action phase with an expired deadline, so concurrent
	// replicas do not double-resolve. A stale claim (older than claimTTL)
	// may be stolen.
	ClaimTimedOutGameIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error)
}
