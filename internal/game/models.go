package game

import (
	"time"

	"gorm.io/gorm"
)

// GamePhase is the round state machine position for a game room.
// Using a dedicated type instead of plain string makes code safer and self-documenting.
type GamePhase string

const (
	PhaseLobby   GamePhase = "lobby"
	PhaseAction  GamePhase = "action"
	PhaseResults GamePhase = "results"
)

// GameStatus tracks the overall lifecycle of a game room.
type GameStatus string

const (
	StatusWaitingForPlayers GameStatus = "waiting_for_players"
	StatusInProgress        GameStatus = "in_progress"
	StatusFinished          GameStatus = "finished"
)

// Winner values recorded when a game finishes.
const (
	WinnerHeroes    = "heroes"
	WinnerCorrupted = "corrupted"
	WinnerMonster   = "monster"
)

// Target sentinels. Actions either name a participant UUID, the shared
// monster, or the multi-target sentinel.
const (
	MonsterTargetID = "__monster__"
	MultiTargetID   = "multi"
)

// Status effect kinds tracked on participants.
const (
	EffectStunned      = "stunned"
	EffectPoison       = "poison"
	EffectBurn         = "burn"
	EffectRegeneration = "regeneration"
	EffectVulnerable   = "vulnerable"
	EffectShielded     = "shielded"
)

// StatusEffect is one named effect on a participant with its remaining
// duration and effect-specific payload. All payload fields are optional;
// only the ones relevant to the Kind are set.
type StatusEffect struct {
	Kind      string  `json:"kind"`
	TurnsLeft int     `json:"turns_left"`
	Damage    int     `json:"damage,omitempty"`
	Heal      int     `json:"heal,omitempty"`
	Armor     int     `json:"armor,omitempty"`
	Increase  float64 `json:"increase,omitempty"`
	SourceID  string  `json:"source_id,omitempty"`
}

// Participant is one player inside a game room. Owned exclusively by the
// room; only the resolution pipeline mutates it.
type Participant struct {
	gorm.Model
	GameID      uint   `json:"-"`
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
	Race        string `json:"race"`
	Class       string `json:"class"`

	MaxHitPoints     int     `json:"max_hp"`
	CurrentHitPoints int     `json:"current_hp"`
	Armor            int     `json:"armor"`
	DamageMod        float64 `json:"damage_mod"`
	IsAlive          bool    `json:"is_alive"`
	// IsCorrupted is the hidden allegiance. Never serialized to clients;
	// the api layer reveals it only at game end.
	IsCorrupted bool `json:"-"`

	StatusEffects []StatusEffect `json:"status_effects" gorm:"serializer:json"`
	Cooldowns     map[string]int `json:"cooldowns" gorm:"serializer:json"`
	// Unlocked lists the class ability types this participant may use.
	Unlocked      []string `json:"unlocked" gorm:"serializer:json"`
	RacialAbility string   `json:"racial_ability"`

	HasSubmittedAction bool                   `json:"has_submitted_action"`
	PendingActionType  string                 `json:"pending_action_type"`
	PendingTargetID    string                 `json:"pending_target_id"`
	PendingIsRacial    bool                   `json:"pending_is_racial"`
	PendingOptions     map[string]interface{} `json:"pending_options" gorm:"serializer:json"`

	// IsReady marks the results-phase acknowledgement for the next round.
	IsReady bool `json:"is_ready"`
	// PendingDisconnect is recorded when the transport loses the player
	// mid-round; consumed at the next safe point (round finalization).
	PendingDisconnect bool `json:"-"`

	RageStacks int `json:"rage_stacks"`
	// DamageTakenThisRound feeds the rage passive; reset every round.
	DamageTakenThisRound int `json:"-" gorm:"-"`
}

func (Participant) TableName() string { return "game_participants" }

// DamageModifier returns the participant's damage multiplier, defaulting
// to neutral when unset.
func (p *Participant) DamageModifier() float64 {
	if p.DamageMod <= 0 {
		return 1.0
	}
	return p.DamageMod
}

// TotalArmor is base armor plus any shield effects currently active.
func (p *Participant) TotalArmor() int {
	total := p.Armor
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind == EffectShielded {
			total += p.StatusEffects[i].Armor
		}
	}
	return total
}

// VulnerabilityIncrease returns the damage-taken increase fraction from
// an active vulnerable status, or 0.
func (p *Participant) VulnerabilityIncrease() float64 {
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind == EffectVulnerable {
			return p.StatusEffects[i].Increase
		}
	}
	return 0
}

// HasEffect reports whether an effect of the given kind is active.
func (p *Participant) HasEffect(kind string) bool {
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind == kind {
			return true
		}
	}
	return false
}

// ApplyDamage reduces HP, clamping at zero, and returns the amount
// actually applied. Callers decide when to mark the participant dead.
func (p *Participant) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	applied := amount
	if applied > p.CurrentHitPoints {
		applied = p.CurrentHitPoints
	}
	p.CurrentHitPoints -= applied
	p.DamageTakenThisRound += amount
	return applied
}

// ApplyHealing raises HP, clamping at max, and returns the amount applied.
func (p *Participant) ApplyHealing(amount int) int {
	if amount < 0 {
		amount = 0
	}
	missing := p.MaxHitPoints - p.CurrentHitPoints
	if amount > missing {
		amount = missing
	}
	p.CurrentHitPoints += amount
	return amount
}

// CooldownFor returns the remaining cooldown turns for an ability type.
func (p *Participant) CooldownFor(abilityType string) int {
	if p.Cooldowns == nil {
		return 0
	}
	return p.Cooldowns[abilityType]
}

// HasUnlocked reports whether the ability type is in the unlocked set.
func (p *Participant) HasUnlocked(abilityType string) bool {
	for _, t := range p.Unlocked {
		if t == abilityType {
			return true
		}
	}
	return false
}

// ClearPendingAction resets the per-round submission fields.
func (p *Participant) ClearPendingAction() {
	p.HasSubmittedAction = false
	p.PendingActionType = ""
	p.PendingTargetID = ""
	p.PendingIsRacial = false
	p.PendingOptions = nil
}

// Monster is the shared NPC entity, one per game room. Its power scales
// with the Age counter.
type Monster struct {
	gorm.Model
	GameID           uint `json:"-"`
	MaxHitPoints     int  `json:"max_hp"`
	CurrentHitPoints int  `json:"current_hp"`
	BaseDamage       int  `json:"base_damage"`
	Age              int  `json:"age"`
}

func (Monster) TableName() string { return "game_monsters" }

// DamageModifier satisfies the engine's attacker contract; the monster's
// scaling lives in its damage formula, not the modifier.
func (m *Monster) DamageModifier() float64 { return 1.0 }

// TotalArmor: the monster has no armor.
func (m *Monster) TotalArmor() int { return 0 }

// VulnerabilityIncrease: the monster never carries the vulnerable status.
func (m *Monster) VulnerabilityIncrease() float64 { return 0 }

// RoundSummary aggregates one round's outcome. Write-once per round, read
// by statistics and win-condition logic, persisted as its own row.
type RoundSummary struct {
	gorm.Model
	GameID               uint     `json:"-"`
	Round                int      `json:"round"`
	DamageToMonster      int      `json:"damage_to_monster"`
	DamageToParticipants int      `json:"damage_to_participants"`
	TotalHealing         int      `json:"total_healing"`
	PlayersEliminated    int      `json:"players_eliminated"`
	EliminatedIDs        []string `json:"eliminated_ids" gorm:"serializer:json"`
	CoordinatedActions   int      `json:"coordinated_actions"`
	AbilitiesUsed        int      `json:"abilities_used"`
}

func (RoundSummary) TableName() string { return "round_summaries" }

// LogEntry is one combat log record. Each entry is modeled once with a
// visibility set; the transport layer projects it per viewer. Priority
// orders entries at emission time (lower sorts first).
type LogEntry struct {
	Priority int      `json:"priority"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	ActorID  string   `json:"actor_id,omitempty"`
	TargetID string   `json:"target_id,omitempty"`
	Public   bool     `json:"public"`
	// VisibleTo lists participant UUIDs allowed to see a non-public entry.
	VisibleTo []string `json:"visible_to,omitempty"`
}

// Log entry kinds.
const (
	LogKindAction  = "action"
	LogKindDamage  = "damage"
	LogKindHeal    = "heal"
	LogKindStatus  = "status"
	LogKindMonster = "monster"
	LogKindDeath   = "death"
	LogKindSystem  = "system"
)

// Game is one room: roster, monster, phase machine position and per-round
// bookkeeping. Mutated only through the service layer under the room lock.
type Game struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:32"`
	Private  bool   `json:"private"`
	JoinCode string `json:"join_code" gorm:"unique"`

	Participants []Participant `json:"participants"`
	Monster      Monster       `json:"monster"`

	Round            int        `json:"round"`
	Level            int        `json:"level"`
	CumulativeDamage int        `json:"cumulative_damage"`
	Phase            GamePhase  `json:"phase"`
	Status           GameStatus `json:"status"`
	Winner           string     `json:"winner"`
	Message          string     `json:"message"`
	ComebackActive   bool       `json:"comeback_active"`

	RoundLog []LogEntry `json:"round_log" gorm:"serializer:json"`

	ActionDeadline time.Time `json:"action_deadline"`
	// Claim fields let the timeout scanner take ownership of an expired
	// room so concurrent replicas do not double-resolve it.
	ClaimedBy    string    `json:"-"`
	ClaimedAt    time.Time `json:"-"`
	StatsCounted bool      `json:"-"`
}

// ParticipantByUUID returns the roster entry with the given id, or nil.
func (g *Game) ParticipantByUUID(id string) *Participant {
	for i := range g.Participants {
		if g.Participants[i].PlayerUUID == id {
			return &g.Participants[i]
		}
	}
	return nil
}

// AliveParticipants returns pointers to every living roster entry.
func (g *Game) AliveParticipants() []*Participant {
	out := make([]*Participant, 0, len(g.Participants))
	for i := range g.Participants {
		if g.Participants[i].IsAlive {
			out = append(out, &g.Participants[i])
		}
	}
	return out
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID  string `gorm:"index"`
	PlayerName  string
	Email       string `gorm:"uniqueIndex"`
	GamesPlayed int
	Wins        int
	TimesKilled int
}

func (User) TableName() string { return "player_profiles" }
