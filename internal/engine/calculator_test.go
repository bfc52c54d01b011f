package engine

import (
	"testing"

	"github.com/zbonzo/warlock/internal/game"
)

func TestCalculateDamage_ArmorReduction(t *testing.T) {
	attacker := &game.Participant{DamageMod: 1.0}
	target := &game.Participant{Armor: 5}

	res := CalculateDamage(attacker, target, 20, game.DamagePhysical, DamageOptions{})
	if res.Final != 15 {
		t.Fatalf("expected 20 base - 5 armor = 15, got %d", res.Final)
	}
}

func TestCalculateDamage_NeverBelowOne(t *testing.T) {
	attacker := &game.Participant{DamageMod: 1.0}
	target := &game.Participant{Armor: 50}

	res := CalculateDamage(attacker, target, 10, game.DamagePhysical, DamageOptions{})
	if res.Final != 1 {
		t.Fatalf("expected minimum damage 1 against heavy armor, got %d", res.Final)
	}
}

func TestCalculateDamage_BypassTypesIgnoreArmor(t *testing.T) {
	attacker := &game.Participant{DamageMod: 1.0}
	target := &game.Participant{Armor: 10}

	for _, dt := range []game.DamageType{game.DamagePoison, game.DamageFire, game.DamageRecoil, game.DamageHoly} {
		res := CalculateDamage(attacker, target, 20, dt, DamageOptions{})
		if res.Final != 20 {
			t.Fatalf("expected %s damage to bypass armor (20), got %d", dt, res.Final)
		}
	}
}

func TestCalculateDamage_ModifierOrder(t *testing.T) {
	attacker := &game.Participant{DamageMod: 1.5}
	target := &game.Participant{
		Armor:         4,
		StatusEffects: []game.StatusEffect{{Kind: game.EffectVulnerable, TurnsLeft: 1, Increase: 0.25}},
	}

	// base 10 -> x1.5 = 15 -> x1.25 = 18 -> +floor(10*0.15)=1 -> 19
	// -> +floor(10*0.2)=2 -> 21 -> -4 armor = 17
	res := CalculateDamage(attacker, target, 10, game.DamagePhysical, DamageOptions{Coordination: 0.15, Comeback: 0.2})
	if res.Final != 17 {
		t.Fatalf("expected 17 after ordered modifiers, got %d (%+v)", res.Final, res.Breakdown)
	}

	want := []string{"base", "damage_modifier", "vulnerability", "coordination", "comeback", "armor"}
	if len(res.Breakdown) != len(want) {
		t.Fatalf("expected %d breakdown steps, got %d", len(want), len(res.Breakdown))
	}
	for i, name := range want {
		if res.Breakdown[i].Name != name {
			t.Fatalf("step %d: expected %q, got %q", i, name, res.Breakdown[i].Name)
		}
	}
}

func TestCalculateDamage_BonusesComputedOffBase(t *testing.T) {
	attacker := &game.Participant{DamageMod: 2.0}
	target := &game.Participant{}

	// Coordination applies to base 10, not to the modified 20.
	res := CalculateDamage(attacker, target, 10, game.DamagePhysical, DamageOptions{Coordination: 0.3})
	if res.Final != 23 {
		t.Fatalf("expected 20 + floor(10*0.3) = 23, got %d", res.Final)
	}
}

func TestCalculateArmorReduction(t *testing.T) {
	if r := CalculateArmorReduction(5, 20, game.DamagePhysical); r != 5 {
		t.Fatalf("expected reduction 5, got %d", r)
	}
	if r := CalculateArmorReduction(50, 10, game.DamagePhysical); r != 9 {
		t.Fatalf("expected reduction capped at damage-1=9, got %d", r)
	}
	if r := CalculateArmorReduction(5, 1, game.DamagePhysical); r != 0 {
		t.Fatalf("expected no reduction for damage 1, got %d", r)
	}
	if r := CalculateArmorReduction(5, 20, game.DamageFire); r != 0 {
		t.Fatalf("expected bypass type to skip armor, got %d", r)
	}
}

func TestCalculateHealing_InverseModifier(t *testing.T) {
	// A heavy hitter (mod 1.5) heals at 2.0-1.5 = 0.5.
	res := CalculateHealing(&game.Participant{DamageMod: 1.5}, 20, 0)
	if res.Final != 10 {
		t.Fatalf("expected floor(20*0.5) = 10, got %d", res.Final)
	}
	// A support build (mod 0.8) heals at 1.2.
	res = CalculateHealing(&game.Participant{DamageMod: 0.8}, 20, 0)
	if res.Final != 24 {
		t.Fatalf("expected floor(20*1.2) = 24, got %d", res.Final)
	}
}

func TestCalculateHealing_ModifierClampedAtTenth(t *testing.T) {
	res := CalculateHealing(&game.Participant{DamageMod: 2.5}, 20, 0)
	if res.Final != 2 {
		t.Fatalf("expected floor(20*0.1) = 2, got %d", res.Final)
	}
}

func TestCalculateHealing_ComebackBonus(t *testing.T) {
	res := CalculateHealing(&game.Participant{DamageMod: 1.0}, 20, 0.2)
	if res.Final != 24 {
		t.Fatalf("expected 20 + floor(20*0.2) = 24, got %d", res.Final)
	}
}

func TestCalculateHealing_NeverBelowOne(t *testing.T) {
	res := CalculateHealing(&game.Participant{DamageMod: 2.5}, 1, 0)
	if res.Final != 1 {
		t.Fatalf("expected minimum heal 1, got %d", res.Final)
	}
}
