package engine

import (
	"fmt"

	"github.com/zbonzo/warlock/internal/game"
)

// processEndOfRound applies residual effects after all actions resolve:
// damage-over-time, heal-over-time, racial passives, corruption pressure,
// then cooldown and status-duration countdown. Deaths here are recorded
// exactly like combat deaths.
func (rc *roundContext) processEndOfRound() {
	rc.applyOverTimeEffects()
	rc.applyRacialPassives()
	rc.applyCorruptionPressure()
	rc.decrementCooldowns()
	rc.decrementEffectDurations()
}

func (rc *roundContext) applyOverTimeEffects() {
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		for _, e := range p.StatusEffects {
			switch e.Kind {
			case game.EffectPoison, game.EffectBurn:
				if e.Damage <= 0 {
					continue
				}
				applied := p.ApplyDamage(e.Damage)
				rc.summary.DamageToParticipants += applied
				rc.addPublic(PriorityEndOfRound, game.LogKindStatus,
					fmt.Sprintf("%s suffers %d %s damage", p.PlayerName, e.Damage, e.Kind),
					"", p.PlayerUUID)
			}
		}
		rc.checkDeath(p)
		if !p.IsAlive {
			continue
		}
		for _, e := range p.StatusEffects {
			if e.Kind != game.EffectRegeneration || e.Heal <= 0 {
				continue
			}
			applied := p.ApplyHealing(e.Heal)
			if applied > 0 {
				rc.summary.TotalHealing += applied
				rc.addPublic(PriorityEndOfRound, game.LogKindStatus,
					fmt.Sprintf("%s regenerates %d HP", p.PlayerName, applied),
					"", p.PlayerUUID)
			}
		}
	}
}

func (rc *roundContext) applyRacialPassives() {
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		race, ok := rc.reg.RaceByName(p.Race)
		if !ok {
			continue
		}
		switch race.Passive.Kind {
		case game.PassiveRegeneration:
			if applied := p.ApplyHealing(race.Passive.Heal); applied > 0 {
				rc.addPublic(PriorityEndOfRound, game.LogKindStatus,
					fmt.Sprintf("%s slowly regenerates %d HP", p.PlayerName, applied),
					"", p.PlayerUUID)
			}
		case game.PassiveRage:
			if p.DamageTakenThisRound > 0 && p.RageStacks < race.Passive.MaxStacks {
				p.RageStacks++
				p.DamageMod = p.DamageModifier() + race.Passive.ModPerStack
				rc.addPrivate(PriorityEndOfRound, game.LogKindStatus,
					fmt.Sprintf("Your rage builds (%d stacks)", p.RageStacks),
					"", p.PlayerUUID, p.PlayerUUID)
			}
		case game.PassivePack:
			allies := rc.sameRaceAllies(p)
			if allies == 0 {
				continue
			}
			armor := allies * race.Passive.ArmorPerAlly
			if race.Passive.MaxArmor > 0 && armor > race.Passive.MaxArmor {
				armor = race.Passive.MaxArmor
			}
			// Lasts through the coming round; the countdown below consumes one turn.
			rc.statuses.Add(p.PlayerUUID, game.StatusEffect{
				Kind:      game.EffectShielded,
				TurnsLeft: 2,
				Armor:     armor,
			})
		}
	}
}

func (rc *roundContext) sameRaceAllies(p *game.Participant) int {
	n := 0
	for i := range rc.g.Participants {
		other := &rc.g.Participants[i]
		if other.IsAlive && other.PlayerUUID != p.PlayerUUID && other.Race == p.Race {
			n++
		}
	}
	return n
}

// applyCorruptionPressure damages every non-corrupted participant in
// proportion to the number of corrupted ones still alive, capped at the
// configured maximum corruption level.
func (rc *roundContext) applyCorruptionPressure() {
	corrupted := 0
	for i := range rc.g.Participants {
		if rc.g.Participants[i].IsAlive && rc.g.Participants[i].IsCorrupted {
			corrupted++
		}
	}
	if corrupted == 0 {
		return
	}
	if corrupted > rc.bal.CorruptionMaxLevel {
		corrupted = rc.bal.CorruptionMaxLevel
	}
	damage := corrupted * rc.bal.CorruptionDamagePerCorrupted
	if damage <= 0 {
		return
	}
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive || p.IsCorrupted {
			continue
		}
		applied := p.ApplyDamage(damage)
		rc.summary.DamageToParticipants += applied
		rc.addPublic(PriorityEndOfRound, game.LogKindStatus,
			fmt.Sprintf("%s suffers %d damage from the spreading corruption", p.PlayerName, damage),
			"", p.PlayerUUID)
		rc.checkDeath(p)
	}
}

func (rc *roundContext) decrementCooldowns() {
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		for t, cd := range p.Cooldowns {
			if cd > 0 {
				p.Cooldowns[t] = cd - 1
			}
		}
	}
}

func (rc *roundContext) decrementEffectDurations() {
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		expired := rc.statuses.DecrementDurations(p.PlayerUUID)
		for _, e := range expired {
			rc.addPrivate(PriorityEndOfRound, game.LogKindStatus,
				fmt.Sprintf("Your %s effect wore off", e.Kind),
				"", p.PlayerUUID, p.PlayerUUID)
		}
	}
}

// checkLevelProgression runs the once-per-round level check: cumulative
// damage to the monster unlocks the next level, granting every alive
// participant flat bonuses scaled by the new level plus a full heal.
func (rc *roundContext) checkLevelProgression() {
	if rc.g.Level <= 0 {
		rc.g.Level = 1
	}
	required := rc.g.Level * rc.g.Level * 100
	if rc.g.CumulativeDamage < required {
		return
	}
	rc.g.Level++
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive {
			continue
		}
		p.MaxHitPoints += rc.bal.LevelHPBonus * rc.g.Level
		p.Armor += rc.bal.LevelArmorBonus * rc.g.Level
		p.DamageMod = p.DamageModifier() + rc.bal.LevelDamageModBonus*float64(rc.g.Level)
		p.CurrentHitPoints = p.MaxHitPoints
	}
	rc.addPublic(PriorityOutcome, game.LogKindSystem,
		fmt.Sprintf("The party reaches level %d", rc.g.Level), "", "")
}
