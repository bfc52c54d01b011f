package engine

import (
	"math"

	"github.com/zbonzo/warlock/internal/game"
)

// Attacker is the minimal view of an attacking entity the calculator
// needs. Both participants and the monster satisfy it.
type Attacker interface {
	DamageModifier() float64
}

// Defender is the minimal view of the entity receiving damage.
type Defender interface {
	TotalArmor() int
	VulnerabilityIncrease() float64
}

// DamageOptions carries the round-scoped additive bonuses. Both are
// fractions of the original base value, not of the running total.
type DamageOptions struct {
	Coordination float64
	Comeback     float64
}

// ModifierStep records one applied modifier for the breakdown.
type ModifierStep struct {
	Name  string `json:"name"`
	Delta int    `json:"delta"`
	Total int    `json:"total"`
}

// DamageResult is the outcome of a damage or healing computation.
type DamageResult struct {
	Final     int            `json:"final"`
	Breakdown []ModifierStep `json:"breakdown"`
}

// CalculateDamage converts a base damage number into a final integer,
// applying modifiers in a fixed order:
//
//	1. attacker damage modifier (multiplicative, floored)
//	2. target vulnerability (multiplicative, floored)
//	3. coordination bonus (additive, computed off the original base)
//	4. comeback bonus (additive, computed off the original base)
//	5. armor reduction (flat), skipped for bypass damage types
//
// The result never drops below 1. The calculator only computes; callers
// apply the result to entity state.
func CalculateDamage(attacker Attacker, target Defender, baseDamage int, damageType game.DamageType, opts DamageOptions) DamageResult {
	total := baseDamage
	steps := []ModifierStep{{Name: "base", Delta: baseDamage, Total: total}}

	mod := 1.0
	if attacker != nil {
		mod = attacker.DamageModifier()
	}
	if mod != 1.0 {
		next := int(math.Floor(float64(total) * mod))
		steps = append(steps, ModifierStep{Name: "damage_modifier", Delta: next - total, Total: next})
		total = next
	}

	if target != nil {
		if v := target.VulnerabilityIncrease(); v > 0 {
			next := int(math.Floor(float64(total) * (1 + v)))
			steps = append(steps, ModifierStep{Name: "vulnerability", Delta: next - total, Total: next})
			total = next
		}
	}

	if opts.Coordination > 0 {
		add := int(math.Floor(float64(baseDamage) * opts.Coordination))
		if add > 0 {
			total += add
			steps = append(steps, ModifierStep{Name: "coordination", Delta: add, Total: total})
		}
	}

	if opts.Comeback > 0 {
		add := int(math.Floor(float64(baseDamage) * opts.Comeback))
		if add > 0 {
			total += add
			steps = append(steps, ModifierStep{Name: "comeback", Delta: add, Total: total})
		}
	}

	if target != nil && !damageType.BypassesArmor() {
		reduction := CalculateArmorReduction(target.TotalArmor(), total, damageType)
		if reduction > 0 {
			total -= reduction
			steps = append(steps, ModifierStep{Name: "armor", Delta: -reduction, Total: total})
		}
	}

	if total < 1 {
		total = 1
	}
	return DamageResult{Final: total, Breakdown: steps}
}

// CalculateArmorReduction returns the flat reduction armor grants against
// the given damage, never reducing damage below 1. Bypass damage types
// always return 0.
func CalculateArmorReduction(totalArmor, damage int, damageType game.DamageType) int {
	if damageType.BypassesArmor() {
		return 0
	}
	if totalArmor <= 0 || damage <= 1 {
		return 0
	}
	reduction := totalArmor
	if reduction > damage-1 {
		reduction = damage - 1
	}
	return reduction
}

// CalculateHealing mirrors CalculateDamage for heals. The healer modifier
// is the inverse of the damage modifier (heavy hitters heal less),
// clamped at 0.1; the comeback bonus is additive off the base.
func CalculateHealing(healer Attacker, baseHeal int, comeback float64) DamageResult {
	healerMod := 1.0
	if healer != nil {
		healerMod = 2.0 - healer.DamageModifier()
	}
	if healerMod < 0.1 {
		healerMod = 0.1
	}

	total := int(math.Floor(float64(baseHeal) * healerMod))
	steps := []ModifierStep{{Name: "base", Delta: baseHeal, Total: baseHeal}}
	if total != baseHeal {
		steps = append(steps, ModifierStep{Name: "healer_modifier", Delta: total - baseHeal, Total: total})
	}

	if comeback > 0 {
		add := int(math.Floor(float64(baseHeal) * comeback))
		if add > 0 {
			total += add
			steps = append(steps, ModifierStep{Name: "comeback", Delta: add, Total: total})
		}
	}

	if total < 1 {
		total = 1
	}
	return DamageResult{Final: total, Breakdown: steps}
}
