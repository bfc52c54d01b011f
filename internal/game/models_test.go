package game

import "testing"

func TestParticipant_ApplyDamageClamps(t *testing.T) {
	p := &Participant{MaxHitPoints: 100, CurrentHitPoints: 10, IsAlive: true}
	applied := p.ApplyDamage(25)
	if applied != 10 {
		t.Fatalf("expected 10 applied (clamped), got %d", applied)
	}
	if p.CurrentHitPoints != 0 {
		t.Fatalf("expected 0 HP, got %d", p.CurrentHitPoints)
	}
	if p.DamageTakenThisRound != 25 {
		t.Fatalf("expected raw damage tracked for rage, got %d", p.DamageTakenThisRound)
	}
}

func TestParticipant_ApplyHealingClamps(t *testing.T) {
	p := &Participant{MaxHitPoints: 100, CurrentHitPoints: 95}
	if applied := p.ApplyHealing(20); applied != 5 {
		t.Fatalf("expected 5 applied, got %d", applied)
	}
	if p.CurrentHitPoints != 100 {
		t.Fatalf("expected full HP, got %d", p.CurrentHitPoints)
	}
}

func TestParticipant_TotalArmorIncludesShields(t *testing.T) {
	p := &Participant{Armor: 3, StatusEffects: []StatusEffect{
		{Kind: EffectShielded, TurnsLeft: 2, Armor: 5},
	}}
	if got := p.TotalArmor(); got != 8 {
		t.Fatalf("expected base+shield armor 8, got %d", got)
	}
}

func TestParticipant_DamageModifierDefaultsToNeutral(t *testing.T) {
	p := &Participant{}
	if got := p.DamageModifier(); got != 1.0 {
		t.Fatalf("expected neutral modifier, got %f", got)
	}
}

func TestGame_ParticipantByUUID(t *testing.T) {
	g := &Game{Participants: []Participant{{PlayerUUID: "a"}, {PlayerUUID: "b"}}}
	if p := g.ParticipantByUUID("b"); p == nil || p.PlayerUUID != "b" {
		t.Fatal("expected lookup to find participant b")
	}
	if p := g.ParticipantByUUID("z"); p != nil {
		t.Fatal("expected nil for unknown uuid")
	}
}

func TestEffectStore_AddRefreshesSameKind(t *testing.T) {
	g := &Game{Participants: []Participant{{PlayerUUID: "p1", IsAlive: true}}}
	s := NewEffectStore(g)

	s.Add("p1", StatusEffect{Kind: EffectPoison, TurnsLeft: 2, Damage: 3})
	s.Add("p1", StatusEffect{Kind: EffectPoison, TurnsLeft: 3, Damage: 5})

	effects := s.OfType("p1", EffectPoison)
	if len(effects) != 1 {
		t.Fatalf("expected same-kind effects to refresh, not stack: %d", len(effects))
	}
	if effects[0].TurnsLeft != 3 || effects[0].Damage != 5 {
		t.Fatalf("expected refreshed payload, got %+v", effects[0])
	}
}

func TestEffectStore_DecrementDurationsExpires(t *testing.T) {
	g := &Game{Participants: []Participant{{PlayerUUID: "p1", IsAlive: true, StatusEffects: []StatusEffect{
		{Kind: EffectStunned, TurnsLeft: 1},
		{Kind: EffectPoison, TurnsLeft: 2, Damage: 3},
	}}}}
	s := NewEffectStore(g)

	expired := s.DecrementDurations("p1")
	if len(expired) != 1 || expired[0].Kind != EffectStunned {
		t.Fatalf("expected only the stun to expire, got %+v", expired)
	}
	p := g.ParticipantByUUID("p1")
	if len(p.StatusEffects) != 1 || p.StatusEffects[0].TurnsLeft != 1 {
		t.Fatalf("expected poison at 1 turn, got %+v", p.StatusEffects)
	}
	if s.IsStunned("p1") {
		t.Fatal("expected stun cleared")
	}
}
