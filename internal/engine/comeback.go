package engine

import (
	"math"

	"github.com/zbonzo/warlock/internal/game"
)

// ComebackMechanics toggles a balancing bonus for the non-corrupted side
// when they are statistically losing but the monster fight is still
// winnable. Activation is recomputed from scratch every round to avoid
// drift; it is never incrementally updated.
type ComebackMechanics struct {
	threshold float64
	bonus     float64
	active    bool
}

// NewComebackMechanics builds the mechanic with the configured threshold
// and bonus fraction.
func NewComebackMechanics(threshold, bonus float64) *ComebackMechanics {
	return &ComebackMechanics{threshold: threshold, bonus: bonus}
}

// UpdateStatus recomputes activation from the live roster and monster
// snapshot. It returns whether the activation state changed (for
// logging); callers query IsActive separately.
func (c *ComebackMechanics) UpdateStatus(g *game.Game) bool {
	was := c.active
	c.active = c.evaluate(g)
	return c.active != was
}

func (c *ComebackMechanics) evaluate(g *game.Game) bool {
	var ratioSum float64
	var count int
	for i := range g.Participants {
		p := &g.Participants[i]
		if !p.IsAlive || p.IsCorrupted || p.MaxHitPoints <= 0 {
			continue
		}
		ratioSum += float64(p.CurrentHitPoints) / float64(p.MaxHitPoints)
		count++
	}
	if count == 0 {
		return false
	}
	avg := ratioSum / float64(count)
	if avg >= c.threshold {
		return false
	}
	// Comeback only helps while the fight is still winnable.
	if g.Monster.MaxHitPoints <= 0 {
		return false
	}
	monsterRatio := float64(g.Monster.CurrentHitPoints) / float64(g.Monster.MaxHitPoints)
	return monsterRatio > 0.5
}

// IsActive reports the current activation state.
func (c *ComebackMechanics) IsActive() bool { return c.active }

// SetActive seeds the state from a persisted flag so change detection
// works across rounds.
func (c *ComebackMechanics) SetActive(active bool) { c.active = active }

// BonusFor returns the bonus fraction for a participant. Corrupted
// participants never receive it.
func (c *ComebackMechanics) BonusFor(p *game.Participant) float64 {
	if !c.active || p == nil || p.IsCorrupted {
		return 0
	}
	return c.bonus
}

// ApplyDamage adds the comeback portion to a base damage value.
func (c *ComebackMechanics) ApplyDamage(p *game.Participant, base int) int {
	return base + int(math.Floor(float64(base)*c.BonusFor(p)))
}

// ApplyHealing adds the comeback portion to a base healing value.
func (c *ComebackMechanics) ApplyHealing(p *game.Participant, base int) int {
	return base + int(math.Floor(float64(base)*c.BonusFor(p)))
}

// Reset clears the active flag unconditionally. Used between games, not
// between rounds.
func (c *ComebackMechanics) Reset() { c.active = false }
