package engine

import (
	"github.com/zbonzo/warlock/internal/game"
)

// testRegistry builds a small ability catalog covering every effect kind.
func testRegistry() *game.Registry {
	class := []game.Ability{
		{Type: "strike", Name: "Strike", Category: game.CategoryAttack, Target: game.TargetSingle,
			Effect: game.EffectSpec{Kind: game.EffectKindDamage, Damage: 10, DamageType: game.DamagePhysical}},
		{Type: "big_strike", Name: "Big Strike", Category: game.CategoryAttack, Target: game.TargetSingle, Cooldown: 2,
			Effect: game.EffectSpec{Kind: game.EffectKindDamage, Damage: 25, DamageType: game.DamagePhysical}},
		{Type: "venom", Name: "Venom", Category: game.CategoryAttack, Target: game.TargetSingle,
			Effect: game.EffectSpec{Kind: game.EffectKindDamageDoT, Damage: 5, DamageType: game.DamagePhysical, DotDamage: 4, DotTurns: 2, DotKind: game.EffectPoison}},
		{Type: "sweep", Name: "Sweep", Category: game.CategoryAttack, Target: game.TargetMulti,
			Effect: game.EffectSpec{Kind: game.EffectKindDamage, Damage: 6, DamageType: game.DamagePhysical}},
		{Type: "mend", Name: "Mend", Category: game.CategoryHeal, Target: game.TargetSingle,
			Effect: game.EffectSpec{Kind: game.EffectKindHeal, Heal: 20}},
		{Type: "guard", Name: "Guard", Category: game.CategoryDefense, Target: game.TargetSelf,
			Effect: game.EffectSpec{Kind: game.EffectKindShield, Armor: 5, Duration: 2}},
		{Type: "expose", Name: "Expose", Category: game.CategorySpecial, Target: game.TargetSingle,
			Effect: game.EffectSpec{Kind: game.EffectKindVulnerable, Increase: 0.25, Duration: 2}},
		{Type: "hex", Name: "Hex", Category: game.CategorySpecial, Target: game.TargetMulti,
			Effect: game.EffectSpec{Kind: game.EffectKindVulnerable, Increase: 0.25, Duration: 1}},
		{Type: "bash", Name: "Bash", Category: game.CategorySpecial, Target: game.TargetSingle,
			Effect: game.EffectSpec{Kind: game.EffectKindStun, Damage: 4, DamageType: game.DamagePhysical, Duration: 1}},
	}
	racial := []game.Ability{
		{Type: "stone_skin", Name: "Stone Skin", Category: game.CategoryDefense, Target: game.TargetSelf, Cooldown: 4,
			Effect: game.EffectSpec{Kind: game.EffectKindShield, Armor: 8, Duration: 1}},
	}
	races := []game.Race{
		{Name: "Rockhewn", Ability: "stone_skin", Passive: game.RacialPassive{Kind: game.PassiveRegeneration, Heal: 3}},
		{Name: "Orc", Passive: game.RacialPassive{Kind: game.PassiveRage, ModPerStack: 0.1, MaxStacks: 3}},
		{Name: "Kinfolk", Passive: game.RacialPassive{Kind: game.PassivePack, ArmorPerAlly: 1, MaxArmor: 4}},
	}
	return game.NewRegistry(class, racial, races)
}

func allUnlocked() []string {
	return []string{"strike", "big_strike", "venom", "sweep", "mend", "guard", "expose", "hex", "bash"}
}

// testParticipant builds a healthy roster entry with every class ability
// unlocked.
func testParticipant(id, name string) game.Participant {
	return game.Participant{
		PlayerUUID:       id,
		PlayerName:       name,
		Race:             "Rockhewn",
		RacialAbility:    "stone_skin",
		MaxHitPoints:     100,
		CurrentHitPoints: 100,
		DamageMod:        1.0,
		IsAlive:          true,
		Unlocked:         allUnlocked(),
		Cooldowns:        map[string]int{},
	}
}

// testGame builds an in-progress action-phase room.
func testGame(participants ...game.Participant) *game.Game {
	return &game.Game{
		Participants: participants,
		Monster:      game.Monster{MaxHitPoints: 200, CurrentHitPoints: 200, BaseDamage: 10},
		Round:        1,
		Level:        1,
		Phase:        game.PhaseAction,
		Status:       game.StatusInProgress,
	}
}

func submit(g *game.Game, id, abilityType, targetID string) {
	p := g.ParticipantByUUID(id)
	p.HasSubmittedAction = true
	p.PendingActionType = abilityType
	p.PendingTargetID = targetID
}
