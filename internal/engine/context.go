package engine

import (
	"sort"

	"github.com/zbonzo/warlock/internal/game"
)

// Log entry priorities. Entries are stable-sorted by priority at emission
// so visibility ordering is a declared property, not push order.
const (
	PrioritySystem     = 0
	PriorityHeal       = 10
	PriorityDefense    = 20
	PriorityAttack     = 30
	PrioritySpecial    = 40
	PriorityMonster    = 45
	PriorityEndOfRound = 50
	PriorityDeath      = 60
	PriorityOutcome    = 70
)

// roundContext owns the per-room, per-round value objects for one
// resolution pass: trackers, log buffer and the write-once summary.
type roundContext struct {
	g        *game.Game
	reg      *game.Registry
	bal      game.Balance
	statuses *game.EffectStore
	coord    *CoordinationTracker
	comeback *ComebackMechanics
	monster  *MonsterController
	log      []game.LogEntry
	summary  *game.RoundSummary
}

func newRoundContext(g *game.Game, reg *game.Registry, bal game.Balance) *roundContext {
	cb := NewComebackMechanics(bal.ComebackThreshold, bal.ComebackBonus)
	cb.SetActive(g.ComebackActive)
	return &roundContext{
		g:        g,
		reg:      reg,
		bal:      bal,
		statuses: game.NewEffectStore(g),
		coord:    NewCoordinationTracker(bal.CoordinationPerAttackerBonus, bal.CoordinationMaxBonus),
		comeback: cb,
		monster:  NewMonsterController(&g.Monster, bal),
		log:      make([]game.LogEntry, 0, 32),
		summary:  &game.RoundSummary{GameID: g.ID, Round: g.Round},
	}
}

// addPublic appends a log entry visible to everyone.
func (rc *roundContext) addPublic(priority int, kind, msg, actorID, targetID string) {
	rc.log = append(rc.log, game.LogEntry{
		Priority: priority,
		Kind:     kind,
		Message:  msg,
		ActorID:  actorID,
		TargetID: targetID,
		Public:   true,
	})
}

// addPrivate appends a log entry restricted to the given participant ids.
func (rc *roundContext) addPrivate(priority int, kind, msg, actorID, targetID string, visibleTo ...string) {
	rc.log = append(rc.log, game.LogEntry{
		Priority:  priority,
		Kind:      kind,
		Message:   msg,
		ActorID:   actorID,
		TargetID:  targetID,
		VisibleTo: visibleTo,
	})
}

// emitLog returns the round's entries ordered by priority. The sort is
// stable so entries of equal priority keep execution order.
func (rc *roundContext) emitLog() []game.LogEntry {
	out := make([]game.LogEntry, len(rc.log))
	copy(out, rc.log)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
