package service

import (
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
)

// MarkReady records a results-phase acknowledgement. When a strict
// majority of living participants is ready the next action phase opens.
func (s *Service) MarkReady(code, playerUUID string) (*game.Game, error) {
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if g.Status != game.StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	if g.Phase != game.PhaseResults {
		return nil, ErrNotResultsPhase
	}
	if err := engine.MarkReady(g, playerUUID); err != nil {
		return nil, ErrPlayerNotInGame
	}

	if engine.ReadyMajority(g) {
		s.openActionPhase(g)
	}
	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// openActionPhase moves a results-phase room into the next action phase
// and arms the action deadline.
func (s *Service) openActionPhase(g *game.Game) {
	if err := engine.AdvancePhase(g, game.PhaseAction); err != nil {
		return
	}
	engine.ResetReady(g)
	g.ActionDeadline = time.Now().Add(s.cfg.ActionTimeout)
	g.Message = "A new round begins. Choose your actions."
	logging.Info("next round opened", logging.Fields{"game_id": g.ID, "round": g.Round})
}
