package engine

// CoordinationTracker registers which actor targeted which target this
// round and derives the coordination bonus from simultaneous attackers.
// One tracker lives per room per round; it is reset at round start.
type CoordinationTracker struct {
	perAttackerBonus float64
	maxBonus         float64
	entries          map[string]map[string]struct{}
}

// NewCoordinationTracker builds a tracker with the configured per-attacker
// bonus and cap.
func NewCoordinationTracker(perAttackerBonus, maxBonus float64) *CoordinationTracker {
	return &CoordinationTracker{
		perAttackerBonus: perAttackerBonus,
		maxBonus:         maxBonus,
		entries:          make(map[string]map[string]struct{}),
	}
}

// Track registers an actor-target pair. Registering the same pair twice
// has no additional effect.
func (t *CoordinationTracker) Track(actorID, targetID string) {
	if actorID == "" || targetID == "" {
		return
	}
	set, ok := t.entries[targetID]
	if !ok {
		set = make(map[string]struct{})
		t.entries[targetID] = set
	}
	set[actorID] = struct{}{}
}

// Count returns how many other actors are registered against the target,
// excluding the given actor's own registration. Unknown targets report 0.
func (t *CoordinationTracker) Count(targetID, excludeActorID string) int {
	set, ok := t.entries[targetID]
	if !ok {
		return 0
	}
	n := len(set)
	if _, self := set[excludeActorID]; self {
		n--
	}
	return n
}

// Bonus returns the coordination bonus fraction for the actor's action
// against the target, plus the count of other attackers it derives from.
// Zero other attackers yields bonus 0.
func (t *CoordinationTracker) Bonus(actorID, targetID string) (float64, int) {
	count := t.Count(targetID, actorID)
	if count <= 0 {
		return 0, 0
	}
	bonus := float64(count) * t.perAttackerBonus
	if bonus > t.maxBonus {
		bonus = t.maxBonus
	}
	return bonus, count
}

// Reset clears all registrations for the next round.
func (t *CoordinationTracker) Reset() {
	t.entries = make(map[string]map[string]struct{})
}
