package service

import (
	"errors"
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
)

// ErrInvalidAction wraps a validation rejection; the concrete reasons ride
// along in the SubmitResult.
var ErrInvalidAction = errors.New("action rejected")

// SubmitResult is the outcome of an action submission.
type SubmitResult struct {
	Game       *game.Game
	Validation engine.ValidationResult
	// Resolved reports that this submission was the last one needed and
	// the round resolved inside the same call.
	Resolved bool
	Summary  *game.RoundSummary
}

// SubmitAction validates and records one player's action for the current
// round. When every eligible participant has submitted, the round resolves
// immediately under the same room lock.
func (s *Service) SubmitAction(code, playerUUID string, req engine.ActionRequest) (*SubmitResult, error) {
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if g.Status != game.StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	if g.Phase != game.PhaseAction {
		return nil, ErrActionsLocked
	}
	p := g.ParticipantByUUID(playerUUID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}

	validator := engine.NewActionValidator(s.reg, game.NewEffectStore(g))
	res := validator.Validate(g, p, req)
	if !res.Valid {
		return &SubmitResult{Game: g, Validation: res}, ErrInvalidAction
	}

	p.HasSubmittedAction = true
	p.PendingActionType = req.AbilityType
	p.PendingTargetID = req.TargetID
	p.PendingIsRacial = req.IsRacial
	p.PendingOptions = req.Options

	out := &SubmitResult{Game: g, Validation: res}
	if engine.CanResolveRound(g) {
		out.Summary = s.resolveRoundLocked(g)
		out.Resolved = true
	}
	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveRoundLocked runs the engine and persists the side artifacts. The
// caller holds the room lock and persists the game itself.
func (s *Service) resolveRoundLocked(g *game.Game) *game.RoundSummary {
	round := g.Round
	summary := engine.ResolveRound(g, s.reg, s.cfg.Balance)
	if summary == nil {
		return nil
	}
	summary.GameID = g.ID
	if err := s.repo.SaveRoundSummary(summary); err != nil {
		logging.Error("failed to save round summary", err,
			logging.Fields{"game_id": g.ID, "round": round})
	}
	if g.Status == game.StatusFinished && !g.StatsCounted {
		g.StatsCounted = true
		if err := s.repo.UpdateStatsOnGameEnd(g); err != nil {
			logging.Error("failed to update player stats", err,
				logging.Fields{"game_id": g.ID})
		}
	}
	g.ClaimedBy = ""
	g.ClaimedAt = time.Time{}
	g.ActionDeadline = time.Time{}
	logging.Info("round resolved", logging.Fields{
		"game_id": g.ID, "round": round, "status": string(g.Status)})
	return summary
}
