package engine

import (
	"fmt"
	"sort"

	"github.com/zbonzo/warlock/internal/game"
)

// plannedAction is one validated submission ready to execute.
type plannedAction struct {
	actor    *game.Participant
	ability  game.Ability
	targetID string
	isRacial bool
	options  map[string]interface{}
}

// ExecutionResult reports how one actor's action resolved.
type ExecutionResult struct {
	Applied bool   `json:"applied"`
	Failed  bool   `json:"failed"`
	Reason  string `json:"reason,omitempty"`
}

// categoryPriority orders actions: Heal > Defense > Attack > everything
// else, so shields and heals are in effect before attacks resolve.
func categoryPriority(c game.AbilityCategory) int {
	switch c {
	case game.CategoryHeal:
		return 0
	case game.CategoryDefense:
		return 1
	case game.CategoryAttack:
		return 2
	default:
		return 3
	}
}

// buildPlans converts pending submissions into an ordered execution list
// and pre-registers every damaging action with the coordination tracker,
// so simultaneous same-target actions mutually boost each other.
func (rc *roundContext) buildPlans() []plannedAction {
	plans := make([]plannedAction, 0, len(rc.g.Participants))
	for i := range rc.g.Participants {
		p := &rc.g.Participants[i]
		if !p.IsAlive || !p.HasSubmittedAction || p.PendingActionType == "" {
			continue
		}
		ability, ok := rc.reg.Lookup(p.PendingActionType, p.PendingIsRacial)
		if !ok {
			rc.addPublic(PrioritySystem, game.LogKindSystem,
				p.PlayerName+"'s action could not be resolved", p.PlayerUUID, "")
			continue
		}
		plans = append(plans, plannedAction{
			actor:    p,
			ability:  ability,
			targetID: p.PendingTargetID,
			isRacial: p.PendingIsRacial,
			options:  p.PendingOptions,
		})
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return categoryPriority(plans[i].ability.Category) < categoryPriority(plans[j].ability.Category)
	})

	for i := range plans {
		rc.registerCoordination(&plans[i])
	}
	return plans
}

// registerCoordination records the actor-target pairs of damaging plans.
// Multi-target plans register against each expanded target.
func (rc *roundContext) registerCoordination(plan *plannedAction) {
	switch plan.ability.Effect.Kind {
	case game.EffectKindDamage, game.EffectKindDamageDoT, game.EffectKindStun:
	default:
		return
	}
	if plan.targetID == game.MultiTargetID {
		for _, t := range rc.damageTargets(plan) {
			rc.coord.Track(plan.actor.PlayerUUID, t)
		}
		return
	}
	rc.coord.Track(plan.actor.PlayerUUID, plan.targetID)
}

// processPlayerActions executes the ordered plans. Failures inside one
// action are caught, logged as a system entry and do not abort the rest
// of the queue.
func (rc *roundContext) processPlayerActions(plans []plannedAction) map[string]ExecutionResult {
	results := make(map[string]ExecutionResult, len(plans))
	for i := range plans {
		plan := &plans[i]
		if !plan.actor.IsAlive {
			// Killed by a higher-priority action this round.
			results[plan.actor.PlayerUUID] = ExecutionResult{Reason: "actor eliminated before acting"}
			continue
		}
		res := rc.executePlanSafe(plan)
		results[plan.actor.PlayerUUID] = res
		if res.Applied {
			rc.summary.AbilitiesUsed++
			if plan.ability.Cooldown > 0 {
				if plan.actor.Cooldowns == nil {
					plan.actor.Cooldowns = make(map[string]int)
				}
				plan.actor.Cooldowns[plan.ability.Type] = plan.ability.Cooldown
			}
		}
	}
	return results
}

// executePlanSafe runs one plan, converting panics into a system-level
// failure entry for that actor only.
func (rc *roundContext) executePlanSafe(plan *plannedAction) (res ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			rc.addPublic(PrioritySystem, game.LogKindSystem,
				plan.actor.PlayerName+"'s action failed to resolve", plan.actor.PlayerUUID, "")
			res = ExecutionResult{Failed: true, Reason: fmt.Sprintf("%v", r)}
		}
	}()

	switch plan.ability.Effect.Kind {
	case game.EffectKindDamage, game.EffectKindDamageDoT, game.EffectKindStun:
		return rc.execDamage(plan)
	case game.EffectKindHeal, game.EffectKindHealOT:
		return rc.execHeal(plan)
	case game.EffectKindShield:
		return rc.execShield(plan)
	case game.EffectKindVulnerable:
		return rc.execVulnerable(plan)
	default:
		rc.addPublic(PrioritySystem, game.LogKindSystem,
			plan.actor.PlayerName+" used an ability with no effect", plan.actor.PlayerUUID, "")
		return ExecutionResult{Failed: true, Reason: "unknown effect kind"}
	}
}

// processMonsterAction lets the monster strike once after player actions.
func (rc *roundContext) processMonsterAction() {
	if !rc.monster.IsAlive() {
		return
	}
	target := rc.monster.ChooseTarget(rc.g)
	if target == nil {
		return
	}
	result := CalculateDamage(&rc.g.Monster, target, rc.monster.AttackDamage(), game.DamagePhysical, DamageOptions{})
	applied := target.ApplyDamage(result.Final)
	rc.summary.DamageToParticipants += applied

	rc.addPublic(PriorityMonster, game.LogKindMonster,
		fmt.Sprintf("The monster strikes %s for %d damage", target.PlayerName, result.Final),
		game.MonsterTargetID, target.PlayerUUID)
	if red := armorStep(result); red > 0 {
		rc.addPrivate(PriorityMonster, game.LogKindMonster,
			fmt.Sprintf("Your armor absorbed %d damage from the monster", red),
			game.MonsterTargetID, target.PlayerUUID, target.PlayerUUID)
	}
	rc.checkDeath(target)
}

// checkDeath marks a participant dead once HP hits zero and records the
// elimination in the round summary.
func (rc *roundContext) checkDeath(p *game.Participant) {
	if !p.IsAlive || p.CurrentHitPoints > 0 {
		return
	}
	p.CurrentHitPoints = 0
	p.IsAlive = false
	p.ClearPendingAction()
	rc.addPublic(PriorityDeath, game.LogKindDeath, p.PlayerName+" has fallen", "", p.PlayerUUID)
	rc.summary.PlayersEliminated++
	rc.summary.EliminatedIDs = append(rc.summary.EliminatedIDs, p.PlayerUUID)
}

// armorStep extracts the absolute armor reduction from a breakdown, 0 if
// armor never applied.
func armorStep(res DamageResult) int {
	for _, s := range res.Breakdown {
		if s.Name == "armor" {
			return -s.Delta
		}
	}
	return 0
}
