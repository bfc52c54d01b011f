package game

// Balance carries the numeric tuning knobs consumed by the resolution
// pipeline. Values come from the server config; knobs the config omits
// fall back to the defaults below at load time.
type Balance struct {
	// Coordination bonus per other attacker on the same target, and its cap.
	CoordinationPerAttackerBonus float64 `json:"coordination_per_attacker_bonus"`
	CoordinationMaxBonus         float64 `json:"coordination_max_bonus"`

	// Comeback activates when the average HP ratio of alive, non-corrupted
	// participants drops below the threshold while the monster still holds
	// more than half its HP.
	ComebackThreshold float64 `json:"comeback_threshold"`
	ComebackBonus     float64 `json:"comeback_bonus"`

	// Corruption pressure: flat end-of-round damage to each non-corrupted
	// participant per alive corrupted one, capped at the max level.
	CorruptionDamagePerCorrupted int `json:"corruption_damage_per_corrupted"`
	CorruptionMaxLevel           int `json:"corruption_max_level"`

	// Monster scaling: extra attack damage per point of age.
	MonsterDamagePerAge int `json:"monster_damage_per_age"`

	// Per-level bonuses granted on level progression.
	LevelHPBonus        int     `json:"level_hp_bonus"`
	LevelArmorBonus     int     `json:"level_armor_bonus"`
	LevelDamageModBonus float64 `json:"level_damage_mod_bonus"`
}

// DefaultBalance returns the tuning used when the config omits a value.
func DefaultBalance() Balance {
	return Balance{
		CoordinationPerAttackerBonus: 0.15,
		CoordinationMaxBonus:         0.5,
		ComebackThreshold:            0.4,
		ComebackBonus:                0.2,
		CorruptionDamagePerCorrupted: 2,
		CorruptionMaxLevel:           3,
		MonsterDamagePerAge:          3,
		LevelHPBonus:                 10,
		LevelArmorBonus:              1,
		LevelDamageModBonus:          0.05,
	}
}

// BalanceOverrides mirrors Balance with optional fields, so a knob
// explicitly configured to zero is distinguishable from an omitted one.
type BalanceOverrides struct {
	CoordinationPerAttackerBonus *float64 `json:"coordination_per_attacker_bonus"`
	CoordinationMaxBonus         *float64 `json:"coordination_max_bonus"`
	ComebackThreshold            *float64 `json:"comeback_threshold"`
	ComebackBonus                *float64 `json:"comeback_bonus"`
	CorruptionDamagePerCorrupted *int     `json:"corruption_damage_per_corrupted"`
	CorruptionMaxLevel           *int     `json:"corruption_max_level"`
	MonsterDamagePerAge          *int     `json:"monster_damage_per_age"`
	LevelHPBonus                 *int     `json:"level_hp_bonus"`
	LevelArmorBonus              *int     `json:"level_armor_bonus"`
	LevelDamageModBonus          *float64 `json:"level_damage_mod_bonus"`
}

// Resolve applies the overrides present in o onto def.
func (o BalanceOverrides) Resolve(def Balance) Balance {
	b := def
	if o.CoordinationPerAttackerBonus != nil {
		b.CoordinationPerAttackerBonus = *o.CoordinationPerAttackerBonus
	}
	if o.CoordinationMaxBonus != nil {
		b.CoordinationMaxBonus = *o.CoordinationMaxBonus
	}
	if o.ComebackThreshold != nil {
		b.ComebackThreshold = *o.ComebackThreshold
	}
	if o.ComebackBonus != nil {
		b.ComebackBonus = *o.ComebackBonus
	}
	if o.CorruptionDamagePerCorrupted != nil {
		b.CorruptionDamagePerCorrupted = *o.CorruptionDamagePerCorrupted
	}
	if o.CorruptionMaxLevel != nil {
		b.CorruptionMaxLevel = *o.CorruptionMaxLevel
	}
	if o.MonsterDamagePerAge != nil {
		b.MonsterDamagePerAge = *o.MonsterDamagePerAge
	}
	if o.LevelHPBonus != nil {
		b.LevelHPBonus = *o.LevelHPBonus
	}
	if o.LevelArmorBonus != nil {
		b.LevelArmorBonus = *o.LevelArmorBonus
	}
	if o.LevelDamageModBonus != nil {
		b.LevelDamageModBonus = *o.LevelDamageModBonus
	}
	return b
}
