package service

import (
	"errors"

	"github.com/zbonzo/warlock/internal/game"
	"gorm.io/gorm"
)

// ErrNoStats is returned when a player has no recorded profile yet.
var ErrNoStats = errors.New("no statistics recorded for this player")

// RecordPlayer upserts the player profile row used by the stats sink.
func (s *Service) RecordPlayer(player PlayerInfo) error {
	return s.repo.UpsertUser(player.Email, player.UUID, player.Name)
}

// PlayerStats returns the cumulative counters for one player.
func (s *Service) PlayerStats(email string) (*game.User, error) {
	u, err := s.repo.GetStatsByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoStats
	}
	return u, err
}

// Leaderboard returns the top players by wins.
func (s *Service) Leaderboard(limit int) ([]game.User, error) {
	return s.repo.GetTopPlayers(limit)
}

// RoundHistory returns the persisted round summaries for a game.
func (s *Service) RoundHistory(code string) ([]game.RoundSummary, error) {
	g, err := s.GetGame(code)
	if err != nil {
		return nil, err
	}
	return s.repo.GetRoundSummaries(g.ID)
}
