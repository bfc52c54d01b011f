package engine

import (
	"github.com/zbonzo/warlock/internal/game"
)

// ResolveRound is the main entry point for resolving a round. It runs as
// one uninterrupted unit: comeback recomputation, ordered action
// execution, the monster's strike, end-of-round effects, level
// progression and finalization. The caller holds the room lock for the
// whole pass. It returns the write-once round summary, or nil when the
// room is not in the action phase.
func ResolveRound(g *game.Game, reg *game.Registry, bal game.Balance) *game.RoundSummary {
	if g.Phase != game.PhaseAction || g.Status != game.StatusInProgress {
		return nil
	}
	rc := newRoundContext(g, reg, bal)

	if rc.comeback.UpdateStatus(g) {
		if rc.comeback.IsActive() {
			rc.addPublic(PrioritySystem, game.LogKindSystem,
				"The party rallies: comeback bonus active", "", "")
		} else {
			rc.addPublic(PrioritySystem, game.LogKindSystem,
				"The comeback bonus fades", "", "")
		}
	}

	plans := rc.buildPlans()
	rc.processPlayerActions(plans)
	rc.processMonsterAction()
	rc.processEndOfRound()
	rc.checkLevelProgression()
	rc.finalizeRound()

	g.RoundLog = rc.emitLog()
	return rc.summary
}
