package service

import (
	"strings"
	"time"

	"github.com/zbonzo/warlock/internal/config"
	"github.com/zbonzo/warlock/internal/game"
	"gorm.io/gorm"
)

// mockRepo is an in-memory Repository for service tests.
type mockRepo struct {
	nextID      uint
	games       map[uint]*game.Game
	summaries   []*game.RoundSummary
	users       map[string]*game.User
	statsCalled bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{games: map[uint]*game.Game{}, users: map[string]*game.User{}}
}

func (m *mockRepo) CreateGame(g *game.Game) error {
	m.nextID++
	g.ID = m.nextID
	m.games[g.ID] = g
	return nil
}

func (m *mockRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) FindGameByJoinCode(code string) (*game.Game, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, g := range m.games {
		if g.JoinCode == code {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) UpdateGame(g *game.Game) error {
	m.games[g.ID] = g
	return nil
}

func (m *mockRepo) GetPublicGames() ([]game.Game, error) {
	var out []game.Game
	for _, g := range m.games {
		if !g.Private && g.Status == game.StatusWaitingForPlayers {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockRepo) RemoveParticipantByUUID(gameID uint, playerUUID string) error {
	g, ok := m.games[gameID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	kept := g.Participants[:0]
	for _, p := range g.Participants {
		if p.PlayerUUID != playerUUID {
			kept = append(kept, p)
		}
	}
	g.Participants = kept
	return nil
}

func (m *mockRepo) SaveRoundSummary(s *game.RoundSummary) error {
	m.summaries = append(m.summaries, s)
	return nil
}

func (m *mockRepo) GetRoundSummaries(gameID uint) ([]game.RoundSummary, error) {
	var out []game.RoundSummary
	for _, s := range m.summaries {
		if s.GameID == gameID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateStatsOnGameEnd(g *game.Game) error {
	m.statsCalled = true
	return nil
}

func (m *mockRepo) UpsertUser(email, uuid, name string) error {
	if email == "" {
		return nil
	}
	m.users[email] = &game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
	return nil
}

func (m *mockRepo) GetStatsByEmail(email string) (*game.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.User, error) {
	return nil, nil
}

func (m *mockRepo) ClaimTimedOutGameIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error) {
	var ids []uint
	for id, g := range m.games {
		if g.Status == game.StatusInProgress && g.Phase == game.PhaseAction &&
			!g.ActionDeadline.IsZero() && !g.ActionDeadline.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// testConfig builds a LoadedConfig equivalent to a small config file.
func testConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		Abilities: []game.Ability{
			{Type: "strike", Name: "Strike", Category: game.CategoryAttack, Target: game.TargetSingle, UnlockLevel: 1,
				Effect: game.EffectSpec{Kind: game.EffectKindDamage, Damage: 10, DamageType: game.DamagePhysical}},
			{Type: "big_strike", Name: "Big Strike", Category: game.CategoryAttack, Target: game.TargetSingle, UnlockLevel: 2, Cooldown: 2,
				Effect: game.EffectSpec{Kind: game.EffectKindDamage, Damage: 25, DamageType: game.DamagePhysical}},
			{Type: "mend", Name: "Mend", Category: game.CategoryHeal, Target: game.TargetSingle, UnlockLevel: 1,
				Effect: game.EffectSpec{Kind: game.EffectKindHeal, Heal: 20}},
		},
		RacialAbilities: []game.Ability{
			{Type: "stone_skin", Name: "Stone Skin", Category: game.CategoryDefense, Target: game.TargetSelf, Cooldown: 4,
				Effect: game.EffectSpec{Kind: game.EffectKindShield, Armor: 8, Duration: 1}},
		},
		Races: []game.Race{
			{Name: "Rockhewn", Ability: "stone_skin", Passive: game.RacialPassive{Kind: game.PassiveRegeneration, Heal: 3}},
		},
		Classes: []config.ClassDef{
			{Name: "Warrior", HitPoints: 100, Armor: 0, DamageMod: 1.0, Abilities: []string{"strike", "big_strike", "mend"}},
		},
		Balance:       game.DefaultBalance(),
		MonsterHP:     200,
		MonsterDamage: 10,
		ActionTimeout: time.Minute,
	}
}

// runningGame seeds the repo with an in-progress action-phase room.
func runningGame(m *mockRepo, code string, playerIDs ...string) *game.Game {
	g := &game.Game{
		JoinCode: code,
		Status:   game.StatusInProgress,
		Phase:    game.PhaseAction,
		Round:    1,
		Level:    1,
		Monster:  game.Monster{MaxHitPoints: 200, CurrentHitPoints: 200, BaseDamage: 10},
	}
	for _, id := range playerIDs {
		g.Participants = append(g.Participants, game.Participant{
			PlayerUUID:       id,
			PlayerName:       strings.ToUpper(id),
			Race:             "Rockhewn",
			Class:            "Warrior",
			RacialAbility:    "stone_skin",
			MaxHitPoints:     100,
			CurrentHitPoints: 100,
			DamageMod:        1.0,
			IsAlive:          true,
			Unlocked:         []string{"strike", "big_strike", "mend"},
			Cooldowns:        map[string]int{},
		})
	}
	_ = m.CreateGame(g)
	return g
}
