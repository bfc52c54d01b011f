package game

// AbilityCategory groups abilities for action-priority ordering.
type AbilityCategory string

const (
	CategoryAttack  AbilityCategory = "Attack"
	CategoryDefense AbilityCategory = "Defense"
	CategoryHeal    AbilityCategory = "Heal"
	CategorySpecial AbilityCategory = "Special"
)

// TargetMode declares how an ability selects targets. The mode is the
// single source of truth for multi-target validity.
type TargetMode string

const (
	TargetSingle TargetMode = "Single"
	TargetMulti  TargetMode = "Multi"
	TargetSelf   TargetMode = "Self"
)

// DamageType tags a damage computation. Types in the armor bypass set are
// exempt from flat armor reduction.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamagePoison   DamageType = "poison"
	DamageFire     DamageType = "fire"
	DamageRecoil   DamageType = "recoil"
	DamageHoly     DamageType = "holy"
)

// BypassesArmor reports whether the damage type skips armor reduction.
func (t DamageType) BypassesArmor() bool {
	switch t {
	case DamagePoison, DamageFire, DamageRecoil, DamageHoly:
		return true
	}
	return false
}

// EffectKind selects which generic executor interprets an ability.
type EffectKind string

const (
	EffectKindDamage     EffectKind = "damage"
	EffectKindDamageDoT  EffectKind = "damage_dot"
	EffectKindHeal       EffectKind = "heal"
	EffectKindHealOT     EffectKind = "heal_ot"
	EffectKindShield     EffectKind = "shield"
	EffectKindVulnerable EffectKind = "vulnerable"
	EffectKindStun       EffectKind = "stun"
)

// EffectSpec is the structured effect descriptor carried by an ability.
// A small set of generic executors interprets Kind plus the typed
// parameters; there is no dispatch on ability names.
type EffectSpec struct {
	Kind       EffectKind `json:"kind"`
	Damage     int        `json:"damage,omitempty"`
	DamageType DamageType `json:"damage_type,omitempty"`

	// Damage-over-time rider (poison/burn applied alongside the hit).
	DotDamage int    `json:"dot_damage,omitempty"`
	DotTurns  int    `json:"dot_turns,omitempty"`
	DotKind   string `json:"dot_kind,omitempty"`

	Heal        int `json:"heal,omitempty"`
	HealPerTurn int `json:"heal_per_turn,omitempty"`

	Armor    int `json:"armor,omitempty"`
	Duration int `json:"duration,omitempty"`

	// Increase is the vulnerability fraction for EffectKindVulnerable.
	Increase float64 `json:"increase,omitempty"`
	// Chance gates probabilistic effects (stun); 0 means always.
	Chance float64 `json:"chance,omitempty"`
}

// Ability is an immutable definition supplied by configuration. The
// engine treats it as read-only input.
type Ability struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Category    AbilityCategory `json:"category"`
	Target      TargetMode      `json:"target"`
	Effect      EffectSpec      `json:"effect"`
	Cooldown    int             `json:"cooldown"`
	UnlockLevel int             `json:"unlock_level"`
}

// RacialPassiveKind selects the end-of-round passive executor for a race.
type RacialPassiveKind string

const (
	PassiveNone         RacialPassiveKind = ""
	PassiveRegeneration RacialPassiveKind = "regeneration"
	PassiveRage         RacialPassiveKind = "rage"
	PassivePack         RacialPassiveKind = "pack"
)

// RacialPassive describes a race's automatic end-of-round effect.
type RacialPassive struct {
	Kind RacialPassiveKind `json:"kind"`
	// Heal per round for regeneration.
	Heal int `json:"heal,omitempty"`
	// Damage modifier added per rage stack, and the stack cap.
	ModPerStack float64 `json:"mod_per_stack,omitempty"`
	MaxStacks   int     `json:"max_stacks,omitempty"`
	// Armor per same-race ally for pack, and its cap.
	ArmorPerAlly int `json:"armor_per_ally,omitempty"`
	MaxArmor     int `json:"max_armor,omitempty"`
}

// Race couples a racial ability with a passive.
type Race struct {
	Name    string        `json:"name"`
	Ability string        `json:"ability"`
	Passive RacialPassive `json:"passive"`
}

// Registry holds the externally supplied ability catalog, keyed by type
// string. The engine only does existence checks and field reads.
type Registry struct {
	class  map[string]Ability
	racial map[string]Ability
	races  map[string]Race
}

// NewRegistry builds a registry from configured catalogs.
func NewRegistry(class, racial []Ability, races []Race) *Registry {
	r := &Registry{
		class:  make(map[string]Ability, len(class)),
		racial: make(map[string]Ability, len(racial)),
		races:  make(map[string]Race, len(races)),
	}
	for _, a := range class {
		r.class[a.Type] = a
	}
	for _, a := range racial {
		r.racial[a.Type] = a
	}
	for _, rc := range races {
		r.races[rc.Name] = rc
	}
	return r
}

// HasClassAbility reports whether the type exists in the class catalog.
func (r *Registry) HasClassAbility(abilityType string) bool {
	_, ok := r.class[abilityType]
	return ok
}

// HasRacialAbility reports whether the type exists in the racial catalog.
func (r *Registry) HasRacialAbility(abilityType string) bool {
	_, ok := r.racial[abilityType]
	return ok
}

// ClassAbility returns the definition for a class ability type.
func (r *Registry) ClassAbility(abilityType string) (Ability, bool) {
	a, ok := r.class[abilityType]
	return a, ok
}

// RacialAbility returns the definition for a racial ability type.
func (r *Registry) RacialAbility(abilityType string) (Ability, bool) {
	a, ok := r.racial[abilityType]
	return a, ok
}

// Lookup resolves an ability type against both catalogs, racial first
// when the submission is flagged racial.
func (r *Registry) Lookup(abilityType string, racial bool) (Ability, bool) {
	if racial {
		return r.RacialAbility(abilityType)
	}
	return r.ClassAbility(abilityType)
}

// RaceByName returns the race definition, if configured.
func (r *Registry) RaceByName(name string) (Race, bool) {
	rc, ok := r.races[name]
	return rc, ok
}

// ClassAbilities returns every configured class ability (catalog order is
// not guaranteed).
func (r *Registry) ClassAbilities() []Ability {
	out := make([]Ability, 0, len(r.class))
	for _, a := range r.class {
		out = append(out, a)
	}
	return out
}
