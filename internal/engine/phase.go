package engine

import (
	"errors"

	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
)

// ErrInvalidTransition is returned when a phase change request does not
// follow the lobby -> action -> results -> action machine.
var ErrInvalidTransition = errors.New("invalid phase transition")

var allowedTransitions = map[game.GamePhase]map[game.GamePhase]bool{
	game.PhaseLobby:   {game.PhaseAction: true},
	game.PhaseAction:  {game.PhaseResults: true},
	game.PhaseResults: {game.PhaseAction: true},
}

// AdvancePhase moves the room to the requested phase. Invalid requests
// are rejected and logged, leaving the phase unchanged.
func AdvancePhase(g *game.Game, to game.GamePhase) error {
	if !allowedTransitions[g.Phase][to] {
		logging.Error("rejected phase transition", ErrInvalidTransition,
			logging.Fields{"game_id": g.ID, "from": string(g.Phase), "to": string(to)})
		return ErrInvalidTransition
	}
	g.Phase = to
	return nil
}

// EligibleToAct returns the participants currently allowed to submit an
// action: alive and not stunned.
func EligibleToAct(g *game.Game) []*game.Participant {
	statuses := game.NewEffectStore(g)
	out := make([]*game.Participant, 0, len(g.Participants))
	for i := range g.Participants {
		p := &g.Participants[i]
		if p.IsAlive && !statuses.IsStunned(p.PlayerUUID) {
			out = append(out, p)
		}
	}
	return out
}

// CanResolveRound reports whether the action phase may resolve: every
// eligible participant has a pending action, or nobody is eligible at all
// (forced progression, so a fully stunned roster cannot stall the game).
func CanResolveRound(g *game.Game) bool {
	if g.Phase != game.PhaseAction {
		return false
	}
	eligible := EligibleToAct(g)
	if len(eligible) == 0 {
		return true
	}
	for _, p := range eligible {
		if !p.HasSubmittedAction {
			return false
		}
	}
	return true
}

// MarkReady records a results-phase acknowledgement for the next round.
func MarkReady(g *game.Game, participantID string) error {
	if g.Phase != game.PhaseResults {
		return ErrInvalidTransition
	}
	p := g.ParticipantByUUID(participantID)
	if p == nil || !p.IsAlive {
		return errors.New("participant not eligible to ready up")
	}
	p.IsReady = true
	return nil
}

// ReadyMajority reports whether a strict majority of alive participants
// have marked themselves ready.
func ReadyMajority(g *game.Game) bool {
	alive, ready := 0, 0
	for i := range g.Participants {
		if !g.Participants[i].IsAlive {
			continue
		}
		alive++
		if g.Participants[i].IsReady {
			ready++
		}
	}
	if alive == 0 {
		return false
	}
	return ready*2 > alive
}

// ResetReady clears the ready set, used when a new action phase opens.
func ResetReady(g *game.Game) {
	for i := range g.Participants {
		g.Participants[i].IsReady = false
	}
}
