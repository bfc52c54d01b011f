package engine

import (
	"github.com/zbonzo/warlock/internal/game"
)

// finalizeRound applies round results to shared state: consumes pending
// disconnects, ages the monster, evaluates win conditions, resets the
// per-round transients and moves the machine to the results phase.
func (rc *roundContext) finalizeRound() {
	rc.consumeDisconnects()
	rc.monster.AgeUp()
	rc.evaluateOutcome()

	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		p.ClearPendingAction()
		p.DamageTakenThisRound = 0
	}
	rc.coord.Reset()
	rc.g.ComebackActive = rc.comeback.IsActive()

	if rc.g.Status == game.StatusFinished {
		return
	}
	rc.g.Round++
	ResetReady(rc.g)
	_ = AdvancePhase(rc.g, game.PhaseResults)
	rc.g.Message = "Round resolved. Ready up for the next round."
}

// consumeDisconnects is the safe point where mid-round disconnects take
// effect: the participant is removed from the fight without retroactively
// undoing their already-resolved action.
func (rc *roundContext) consumeDisconnects() {
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.PendingDisconnect || !p.IsAlive {
			p.PendingDisconnect = false
			continue
		}
		p.PendingDisconnect = false
		p.IsAlive = false
		p.CurrentHitPoints = 0
		p.ClearPendingAction()
		rc.addPublic(PriorityDeath, game.LogKindSystem,
			p.PlayerName+" has left the fight", "", p.PlayerUUID)
		rc.summary.PlayersEliminated++
		rc.summary.EliminatedIDs = append(rc.summary.EliminatedIDs, p.PlayerUUID)
	}
}

// evaluateOutcome checks the win/lose conditions after a round.
func (rc *roundContext) evaluateOutcome() {
	aliveCorrupted, aliveHeroes := 0, 0
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		if p.IsCorrupted {
			aliveCorrupted++
		} else {
			aliveHeroes++
		}
	}

	switch {
	case aliveCorrupted == 0 && aliveHeroes == 0:
		rc.finish(game.WinnerMonster, "The monster stands alone over the fallen party.")
	case !rc.monster.IsAlive() && aliveCorrupted >= aliveHeroes && aliveCorrupted > 0:
		rc.finish(game.WinnerCorrupted, "The monster falls, and the corrupted seize the moment.")
	case !rc.monster.IsAlive():
		rc.finish(game.WinnerHeroes, "The monster is slain!")
	case aliveCorrupted > 0 && aliveCorrupted >= aliveHeroes:
		rc.finish(game.WinnerCorrupted, "The corrupted now outnumber the faithful.")
	}
}

func (rc *roundContext) finish(winner, message string) {
	rc.g.Status = game.StatusFinished
	rc.g.Winner = winner
	rc.g.Message = message
	rc.addPublic(PriorityOutcome, game.LogKindSystem, message, "", "")
}
