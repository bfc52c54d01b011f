package engine

import (
	"github.com/zbonzo/warlock/internal/game"
)

// StatusQuery is the status-effect lookup the validator depends on.
type StatusQuery interface {
	IsStunned(participantID string) bool
}

// ActionRequest is one submitted action before validation.
type ActionRequest struct {
	AbilityType string
	TargetID    string
	IsRacial    bool
	Options     map[string]interface{}
}

// ValidationResult collects every problem found with a submission so the
// client sees all of them, not just the first.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validation error reasons. Each check failure produces a distinct one.
const (
	ReasonDead             = "participant is dead"
	ReasonStunned          = "participant is stunned"
	ReasonAlreadySubmitted = "action already submitted this round"
	ReasonAbilityNotFound  = "ability not found"
	ReasonAbilityLocked    = "ability not unlocked"
	ReasonOnCooldown       = "ability is on cooldown"
	ReasonNotMultiTarget   = "ability does not support multi-targeting"
	ReasonNotSelfTarget    = "self-targeted ability cannot target others"
	ReasonTargetNotFound   = "target not found"
	ReasonTargetDead       = "target is dead"
	ReasonMonsterDead      = "the monster is already dead"
	ReasonWrongRacial      = "racial ability not available to this participant"
)

// ActionValidator gates submitted actions. Validation is read-only; the
// caller decides whether to accept or discard the action.
type ActionValidator struct {
	reg      *game.Registry
	statuses StatusQuery
}

// NewActionValidator builds a validator over the ability registry and a
// status-effect query.
func NewActionValidator(reg *game.Registry, statuses StatusQuery) *ActionValidator {
	return &ActionValidator{reg: reg, statuses: statuses}
}

// Validate checks one submission against actor liveness, stun, duplicate
// submission, ability ownership, cooldown and target validity. All checks
// run; failures accumulate.
func (v *ActionValidator) Validate(g *game.Game, p *game.Participant, req ActionRequest) ValidationResult {
	var errs []string

	if !p.IsAlive {
		errs = append(errs, ReasonDead)
	}
	if v.statuses != nil && v.statuses.IsStunned(p.PlayerUUID) {
		errs = append(errs, ReasonStunned)
	}
	if p.HasSubmittedAction {
		errs = append(errs, ReasonAlreadySubmitted)
	}

	ability, found := v.reg.Lookup(req.AbilityType, req.IsRacial)
	if !found {
		// A missing registry entry is a validation failure, never a crash.
		errs = append(errs, ReasonAbilityNotFound)
	} else {
		if req.IsRacial {
			if p.RacialAbility != req.AbilityType {
				errs = append(errs, ReasonWrongRacial)
			}
		} else if !p.HasUnlocked(req.AbilityType) {
			errs = append(errs, ReasonAbilityLocked)
		}
		if p.CooldownFor(req.AbilityType) > 0 {
			errs = append(errs, ReasonOnCooldown)
		}
		errs = append(errs, v.validateTarget(g, p, ability, req.TargetID)...)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (v *ActionValidator) validateTarget(g *game.Game, p *game.Participant, ability game.Ability, targetID string) []string {
	var errs []string

	switch targetID {
	case game.MultiTargetID:
		// The target mode flag is the single source of truth for whether an
		// ability may take the multi sentinel.
		if ability.Target != game.TargetMulti {
			errs = append(errs, ReasonNotMultiTarget)
		}
	case game.MonsterTargetID:
		if g.Monster.CurrentHitPoints <= 0 {
			errs = append(errs, ReasonMonsterDead)
		}
	case "", p.PlayerUUID:
		// Self target; always resolvable while the actor lives.
	default:
		if ability.Target == game.TargetSelf {
			errs = append(errs, ReasonNotSelfTarget)
			break
		}
		target := g.ParticipantByUUID(targetID)
		if target == nil {
			errs = append(errs, ReasonTargetNotFound)
		} else if !target.IsAlive {
			errs = append(errs, ReasonTargetDead)
		}
	}

	return errs
}
