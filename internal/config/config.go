package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

// ClassDef couples a playable class with its base stats and the class
// abilities unlocked for its members.
type ClassDef struct {
	Name      string   `json:"name"`
	HitPoints int      `json:"hit_points"`
	Armor     int      `json:"armor"`
	DamageMod float64  `json:"damage_mod"`
	Abilities []string `json:"abilities"`
}

type monsterEntry struct {
	HitPoints  int `json:"hit_points"`
	BaseDamage int `json:"base_damage"`
}

type rawConfig struct {
	AbilityList       []game.Ability        `json:"ability_list"`
	RacialAbilityList []game.Ability        `json:"racial_ability_list"`
	RaceList          []game.Race           `json:"race_list"`
	ClassList         []ClassDef            `json:"class_list"`
	Balance           game.BalanceOverrides `json:"balance"`
	Monster           *monsterEntry         `json:"monster"`
	Server            *struct {
		Address              string `json:"address"`
		ActionTimeoutSeconds int    `json:"action_timeout_seconds"`
		PublicGamesTTLHours  int    `json:"public_games_ttl_hours"`
	} `json:"server"`
}

// LoadedConfig is the validated server configuration: the ability
// catalogs the engine treats as read-only input, plus tuning and server
// settings.
type LoadedConfig struct {
	Abilities       []game.Ability
	RacialAbilities []game.Ability
	Races           []game.Race
	Classes         []ClassDef
	Balance         game.Balance
	MonsterHP       int
	MonsterDamage   int
	ServerAddress   string
	ActionTimeout   time.Duration
	PublicGamesTTL  time.Duration
}

// Registry builds the ability registry from the loaded catalogs.
func (c *LoadedConfig) Registry() *game.Registry {
	return game.NewRegistry(c.Abilities, c.RacialAbilities, c.Races)
}

// ClassByName returns a configured class definition.
func (c *LoadedConfig) ClassByName(name string) (ClassDef, bool) {
	for _, cl := range c.Classes {
		if strings.EqualFold(cl.Name, name) {
			return cl, true
		}
	}
	return ClassDef{}, false
}

// LoadConfig reads the configuration file at path and validates the
// ability catalogs. It requires the key `ability_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.AbilityList) == 0 {
		return nil, fmt.Errorf("config file %s: ability_list is empty (provide an 'ability_list' array)", path)
	}

	// Cross-entry validation: unique ability types, known effect kinds,
	// and classes/races that only reference catalog entries.
	typeSet := make(map[string]struct{}, len(rc.AbilityList)+len(rc.RacialAbilityList))
	for _, a := range append(append([]game.Ability{}, rc.AbilityList...), rc.RacialAbilityList...) {
		t := strings.TrimSpace(a.Type)
		if t == "" {
			return nil, fmt.Errorf("config file %s: ability '%s' missing 'type'", path, a.Name)
		}
		if _, exists := typeSet[t]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability type '%s'", path, t)
		}
		typeSet[t] = struct{}{}
		switch a.Effect.Kind {
		case game.EffectKindDamage, game.EffectKindDamageDoT, game.EffectKindHeal,
			game.EffectKindHealOT, game.EffectKindShield, game.EffectKindVulnerable,
			game.EffectKindStun:
		default:
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown effect kind '%s'", path, t, a.Effect.Kind)
		}
	}
	classTypes := make(map[string]struct{}, len(rc.AbilityList))
	for _, a := range rc.AbilityList {
		classTypes[a.Type] = struct{}{}
	}
	racialTypes := make(map[string]struct{}, len(rc.RacialAbilityList))
	for _, a := range rc.RacialAbilityList {
		racialTypes[a.Type] = struct{}{}
	}
	for _, cl := range rc.ClassList {
		for _, t := range cl.Abilities {
			if _, ok := classTypes[t]; !ok {
				return nil, fmt.Errorf("config file %s: class '%s' references unknown ability '%s'", path, cl.Name, t)
			}
		}
	}
	for _, r := range rc.RaceList {
		if r.Ability == "" {
			continue
		}
		if _, ok := racialTypes[r.Ability]; !ok {
			return nil, fmt.Errorf("config file %s: race '%s' references unknown racial ability '%s'", path, r.Name, r.Ability)
		}
	}

	addr := ":8080"
	actionTimeout := 60 * time.Second
	publicTTL := 24 * time.Hour
	if rc.Server != nil {
		if rc.Server.Address != "" {
			addr = rc.Server.Address
		}
		if rc.Server.ActionTimeoutSeconds > 0 {
			actionTimeout = time.Duration(rc.Server.ActionTimeoutSeconds) * time.Second
		}
		if rc.Server.PublicGamesTTLHours > 0 {
			publicTTL = time.Duration(rc.Server.PublicGamesTTLHours) * time.Hour
		}
	}

	monsterHP := 200
	monsterDamage := 10
	if rc.Monster != nil {
		if rc.Monster.HitPoints > 0 {
			monsterHP = rc.Monster.HitPoints
		}
		if rc.Monster.BaseDamage > 0 {
			monsterDamage = rc.Monster.BaseDamage
		}
	}

	return &LoadedConfig{
		Abilities:       rc.AbilityList,
		RacialAbilities: rc.RacialAbilityList,
		Races:           rc.RaceList,
		Classes:         rc.ClassList,
		Balance:         rc.Balance.Resolve(game.DefaultBalance()),
		MonsterHP:       monsterHP,
		MonsterDamage:   monsterDamage,
		ServerAddress:   addr,
		ActionTimeout:   actionTimeout,
		PublicGamesTTL:  publicTTL,
	}, nil
}
