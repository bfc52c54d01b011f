package service

import (
	"context"
	"time"

	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
)

const (
	timeoutScanBatch = 20
	timeoutClaimTTL  = 2 * time.Minute
)

// StartTimeoutScanner launches the background loop that force-resolves
// rounds whose action deadline expired. It stops when ctx is cancelled.
func (s *Service) StartTimeoutScanner(ctx context.Context, interval time.Duration, workerID string) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.scanTimedOutGames(workerID)
			}
		}
	}()
}

func (s *Service) scanTimedOutGames(workerID string) {
	ids, err := s.repo.ClaimTimedOutGameIDs(time.Now(), timeoutScanBatch, timeoutClaimTTL, workerID)
	if err != nil {
		logging.Error("timeout scan failed", err, nil)
		return
	}
	for _, id := range ids {
		if err := s.HandleTimedOutGame(id); err != nil {
			logging.Error("timed-out game handling failed", err,
				logging.Fields{"game_id": id})
		}
	}
}

// HandleTimedOutGame force-resolves one claimed room: participants who
// never submitted simply take no action this round.
func (s *Service) HandleTimedOutGame(gameID uint) error {
	lk := s.locks.forGame(gameID)
	lk.Lock()
	defer lk.Unlock()

	g, err := s.repo.GetGameByID(gameID)
	if err != nil {
		return err
	}
	// The round may have resolved between the claim and the lock.
	if g.Status != game.StatusInProgress || g.Phase != game.PhaseAction ||
		g.ActionDeadline.IsZero() || g.ActionDeadline.After(time.Now()) {
		g.ClaimedBy = ""
		g.ClaimedAt = time.Time{}
		return s.repo.UpdateGame(g)
	}

	logging.Warn("action deadline expired, forcing round resolution",
		logging.Fields{"game_id": g.ID, "round": g.Round})
	s.resolveRoundLocked(g)
	return s.repo.UpdateGame(g)
}
