package engine

import (
	"fmt"
	"math/rand"

	"github.com/zbonzo/warlock/internal/game"
)

// damageTargets expands a damaging plan's target id into concrete target
// ids. The multi sentinel hits every living participant except the actor.
func (rc *roundContext) damageTargets(plan *plannedAction) []string {
	if plan.targetID != game.MultiTargetID {
		return []string{plan.targetID}
	}
	out := make([]string, 0, len(rc.g.Participants))
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if p.IsAlive && p.PlayerUUID != plan.actor.PlayerUUID {
			out = append(out, p.PlayerUUID)
		}
	}
	return out
}

// healTargets expands a heal plan's target id. The multi sentinel covers
// every living participant, the actor included.
func (rc *roundContext) healTargets(plan *plannedAction) []*game.Participant {
	switch plan.targetID {
	case game.MultiTargetID:
		return rc.g.AliveParticipants()
	case "", plan.actor.PlayerUUID:
		return []*game.Participant{plan.actor}
	default:
		t := rc.g.ParticipantByUUID(plan.targetID)
		if t == nil || !t.IsAlive {
			return nil
		}
		return []*game.Participant{t}
	}
}

// execDamage resolves direct-damage abilities, including the DoT and stun
// variants. Amounts are computed for every target before any are applied
// so one action's effects land atomically.
func (rc *roundContext) execDamage(plan *plannedAction) ExecutionResult {
	spec := plan.ability.Effect
	comeback := rc.comeback.BonusFor(plan.actor)

	type pending struct {
		targetID string
		target   *game.Participant // nil for the monster
		result   DamageResult
		coordN   int
	}
	var hits []pending

	for _, targetID := range rc.damageTargets(plan) {
		bonus, count := rc.coord.Bonus(plan.actor.PlayerUUID, targetID)
		opts := DamageOptions{Coordination: bonus, Comeback: comeback}

		if targetID == game.MonsterTargetID {
			if !rc.monster.IsAlive() {
				continue
			}
			hits = append(hits, pending{
				targetID: targetID,
				result:   CalculateDamage(plan.actor, &rc.g.Monster, spec.Damage, spec.DamageType, opts),
				coordN:   count,
			})
			continue
		}
		target := rc.g.ParticipantByUUID(targetID)
		if target == nil || !target.IsAlive {
			continue
		}
		hits = append(hits, pending{
			targetID: targetID,
			target:   target,
			result:   CalculateDamage(plan.actor, target, spec.Damage, spec.DamageType, opts),
			coordN:   count,
		})
	}

	if len(hits) == 0 {
		rc.addPublic(PrioritySystem, game.LogKindSystem,
			plan.actor.PlayerName+"'s "+plan.ability.Name+" found no valid target",
			plan.actor.PlayerUUID, plan.targetID)
		return ExecutionResult{Reason: "no valid target"}
	}

	prio := PriorityAttack
	if plan.ability.Category == game.CategorySpecial {
		prio = PrioritySpecial
	}

	for _, h := range hits {
		if h.coordN > 0 {
			rc.summary.CoordinatedActions++
		}
		if h.target == nil {
			applied := rc.monster.TakeDamage(h.result.Final)
			rc.summary.DamageToMonster += applied
			rc.g.CumulativeDamage += applied
			rc.addPublic(prio, game.LogKindDamage,
				fmt.Sprintf("%s hits the monster with %s for %d damage", plan.actor.PlayerName, plan.ability.Name, h.result.Final),
				plan.actor.PlayerUUID, h.targetID)
			rc.addPrivate(prio, game.LogKindDamage,
				breakdownMessage(plan.ability.Name, h.result),
				plan.actor.PlayerUUID, h.targetID, plan.actor.PlayerUUID)
			continue
		}

		applied := h.target.ApplyDamage(h.result.Final)
		rc.summary.DamageToParticipants += applied
		rc.addPublic(prio, game.LogKindDamage,
			fmt.Sprintf("%s hits %s with %s for %d damage", plan.actor.PlayerName, h.target.PlayerName, plan.ability.Name, h.result.Final),
			plan.actor.PlayerUUID, h.targetID)
		rc.addPrivate(prio, game.LogKindDamage,
			breakdownMessage(plan.ability.Name, h.result),
			plan.actor.PlayerUUID, h.targetID, plan.actor.PlayerUUID)
		// The defender's true armor value is only shown to the defender.
		if red := armorStep(h.result); red > 0 {
			rc.addPrivate(prio, game.LogKindDamage,
				fmt.Sprintf("Your armor absorbed %d damage from %s", red, plan.ability.Name),
				plan.actor.PlayerUUID, h.targetID, h.targetID)
		}

		rc.applyDamageRiders(plan, h.target)
		rc.checkDeath(h.target)
	}
	return ExecutionResult{Applied: true}
}

// applyDamageRiders attaches the DoT or stun side effects of a damaging
// ability to a participant target.
func (rc *roundContext) applyDamageRiders(plan *plannedAction, target *game.Participant) {
	spec := plan.ability.Effect
	switch spec.Kind {
	case game.EffectKindDamageDoT:
		kind := spec.DotKind
		if kind == "" {
			kind = game.EffectPoison
		}
		rc.statuses.Add(target.PlayerUUID, game.StatusEffect{
			Kind:      kind,
			TurnsLeft: spec.DotTurns,
			Damage:    spec.DotDamage,
			SourceID:  plan.actor.PlayerUUID,
		})
		rc.addPublic(PriorityAttack, game.LogKindStatus,
			fmt.Sprintf("%s is afflicted with %s", target.PlayerName, kind),
			plan.actor.PlayerUUID, target.PlayerUUID)
	case game.EffectKindStun:
		if spec.Chance > 0 && rand.Float64() >= spec.Chance {
			return
		}
		dur := spec.Duration
		if dur <= 0 {
			dur = 1
		}
		rc.statuses.Add(target.PlayerUUID, game.StatusEffect{
			Kind:      game.EffectStunned,
			TurnsLeft: dur + 1,
			SourceID:  plan.actor.PlayerUUID,
		})
		rc.addPublic(PriorityAttack, game.LogKindStatus,
			target.PlayerName+" is stunned", plan.actor.PlayerUUID, target.PlayerUUID)
	}
}

// execHeal resolves healing abilities, including heal-over-time.
func (rc *roundContext) execHeal(plan *plannedAction) ExecutionResult {
	spec := plan.ability.Effect
	targets := rc.healTargets(plan)
	if len(targets) == 0 {
		rc.addPublic(PrioritySystem, game.LogKindSystem,
			plan.actor.PlayerName+"'s "+plan.ability.Name+" found no valid target",
			plan.actor.PlayerUUID, plan.targetID)
		return ExecutionResult{Reason: "no valid target"}
	}

	comeback := rc.comeback.BonusFor(plan.actor)
	for _, target := range targets {
		if spec.Heal > 0 {
			result := CalculateHealing(plan.actor, spec.Heal, comeback)
			applied := target.ApplyHealing(result.Final)
			rc.summary.TotalHealing += applied
			rc.addPublic(PriorityHeal, game.LogKindHeal,
				fmt.Sprintf("%s heals %s for %d", plan.actor.PlayerName, target.PlayerName, applied),
				plan.actor.PlayerUUID, target.PlayerUUID)
			rc.addPrivate(PriorityHeal, game.LogKindHeal,
				breakdownMessage(plan.ability.Name, result),
				plan.actor.PlayerUUID, target.PlayerUUID, plan.actor.PlayerUUID)
		}
		if spec.Kind == game.EffectKindHealOT && spec.HealPerTurn > 0 {
			rc.statuses.Add(target.PlayerUUID, game.StatusEffect{
				Kind:      game.EffectRegeneration,
				TurnsLeft: spec.Duration,
				Heal:      spec.HealPerTurn,
				SourceID:  plan.actor.PlayerUUID,
			})
			rc.addPublic(PriorityHeal, game.LogKindStatus,
				target.PlayerName+" is regenerating", plan.actor.PlayerUUID, target.PlayerUUID)
		}
	}
	return ExecutionResult{Applied: true}
}

// execShield grants temporary armor via a shielded status effect.
func (rc *roundContext) execShield(plan *plannedAction) ExecutionResult {
	spec := plan.ability.Effect
	targets := rc.healTargets(plan)
	if len(targets) == 0 {
		return ExecutionResult{Reason: "no valid target"}
	}
	dur := spec.Duration
	if dur <= 0 {
		dur = 1
	}
	for _, target := range targets {
		rc.statuses.Add(target.PlayerUUID, game.StatusEffect{
			Kind:      game.EffectShielded,
			TurnsLeft: dur,
			Armor:     spec.Armor,
			SourceID:  plan.actor.PlayerUUID,
		})
		rc.addPublic(PriorityDefense, game.LogKindStatus,
			target.PlayerName+" is shielded", plan.actor.PlayerUUID, target.PlayerUUID)
		rc.addPrivate(PriorityDefense, game.LogKindStatus,
			fmt.Sprintf("%s grants you %d armor for %d round(s)", plan.ability.Name, spec.Armor, dur),
			plan.actor.PlayerUUID, target.PlayerUUID, target.PlayerUUID)
	}
	return ExecutionResult{Applied: true}
}

// execVulnerable marks targets as taking increased damage. The multi
// sentinel expands like a damaging ability: every living participant
// except the actor.
func (rc *roundContext) execVulnerable(plan *plannedAction) ExecutionResult {
	spec := plan.ability.Effect
	dur := spec.Duration
	if dur <= 0 {
		dur = 1
	}
	applied := false
	for _, targetID := range rc.damageTargets(plan) {
		if targetID == game.MonsterTargetID {
			continue
		}
		target := rc.g.ParticipantByUUID(targetID)
		if target == nil || !target.IsAlive {
			continue
		}
		// Special-priority actions run after this round's attacks, so the
		// extra turn keeps the mark alive through the next round's strikes.
		rc.statuses.Add(target.PlayerUUID, game.StatusEffect{
			Kind:      game.EffectVulnerable,
			TurnsLeft: dur + 1,
			Increase:  spec.Increase,
			SourceID:  plan.actor.PlayerUUID,
		})
		rc.addPublic(PrioritySpecial, game.LogKindStatus,
			target.PlayerName+" is vulnerable", plan.actor.PlayerUUID, target.PlayerUUID)
		applied = true
	}
	if !applied {
		return ExecutionResult{Reason: "no valid target"}
	}
	return ExecutionResult{Applied: true}
}

// breakdownMessage renders the calculator breakdown for private entries.
func breakdownMessage(abilityName string, res DamageResult) string {
	msg := abilityName + " breakdown:"
	for _, s := range res.Breakdown {
		msg += fmt.Sprintf(" %s %+d (=%d)", s.Name, s.Delta, s.Total)
	}
	return msg
}
