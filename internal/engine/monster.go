package engine

import "github.com/zbonzo/warlock/internal/game"

// MonsterController mediates all monster state changes for one room.
type MonsterController struct {
	m   *game.Monster
	bal game.Balance
}

// NewMonsterController wraps a room's monster.
func NewMonsterController(m *game.Monster, bal game.Balance) *MonsterController {
	return &MonsterController{m: m, bal: bal}
}

// IsAlive reports whether the monster still has hit points.
func (mc *MonsterController) IsAlive() bool { return mc.m.CurrentHitPoints > 0 }

// TakeDamage reduces the monster's HP, clamping at zero, and returns the
// amount actually applied.
func (mc *MonsterController) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > mc.m.CurrentHitPoints {
		amount = mc.m.CurrentHitPoints
	}
	mc.m.CurrentHitPoints -= amount
	return amount
}

// AttackDamage is the monster's base damage scaled by its age.
func (mc *MonsterController) AttackDamage() int {
	return mc.m.BaseDamage + mc.m.Age*mc.bal.MonsterDamagePerAge
}

// ChooseTarget picks the alive participant with the lowest current HP;
// ties go to roster order.
func (mc *MonsterController) ChooseTarget(g *game.Game) *game.Participant {
	var target *game.Participant
	for i := range g.Participants {
		p := &g.Participants[i]
		if !p.IsAlive {
			continue
		}
		if target == nil || p.CurrentHitPoints < target.CurrentHitPoints {
			target = p
		}
	}
	return target
}

// AgeUp advances the monster's age counter by one round.
func (mc *MonsterController) AgeUp() { mc.m.Age++ }
