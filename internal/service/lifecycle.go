package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
	"gorm.io/gorm"
)

// PlayerInfo identifies the authenticated player behind a request.
type PlayerInfo struct {
	UUID  string
	Name  string
	Email string
}

var (
	ErrUnknownRace       = errors.New("unknown race")
	ErrUnknownClass      = errors.New("unknown class")
	ErrAlreadyInGame     = errors.New("player already joined this game")
	ErrCharacterRequired = errors.New("every player must pick a race and class before start")
	ErrNotGameHost       = errors.New("only the game host may do this")
)

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newJoinCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}

// CreateGame opens a new lobby with the creator as its first (host)
// participant. The creator still has to pick a race and class.
func (s *Service) CreateGame(player PlayerInfo, gameName string, private bool, race, class string) (*game.Game, error) {
	if err := s.validateCharacter(race, class); err != nil {
		return nil, err
	}
	g := &game.Game{
		Name:    strings.TrimSpace(gameName),
		Private: private,
		Level:   1,
		Phase:   game.PhaseLobby,
		Status:  game.StatusWaitingForPlayers,
		Participants: []game.Participant{
			newParticipant(player, race, class),
		},
	}
	// Join codes are unique; retry on the rare collision.
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		g.JoinCode = newJoinCode()
		if err = s.repo.CreateGame(g); err == nil {
			logging.Info("game created", logging.Fields{"game_id": g.ID, "join_code": g.JoinCode})
			return g, nil
		}
	}
	return nil, fmt.Errorf("could not allocate a join code: %w", err)
}

// JoinGame adds a player to a lobby by join code.
func (s *Service) JoinGame(code string, player PlayerInfo, race, class string) (*game.Game, error) {
	if err := s.validateCharacter(race, class); err != nil {
		return nil, err
	}
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if g.Status != game.StatusWaitingForPlayers {
		return nil, ErrGameStarted
	}
	if len(g.Participants) >= MaxParticipants {
		return nil, ErrGameFull
	}
	if g.ParticipantByUUID(player.UUID) != nil {
		return nil, ErrAlreadyInGame
	}
	g.Participants = append(g.Participants, newParticipant(player, race, class))
	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// StartGame moves the lobby into the first action phase: hidden roles are
// dealt, character stats initialized from the configured class, and the
// monster scaled to the roster size.
func (s *Service) StartGame(code, requesterUUID string) (*game.Game, error) {
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if g.Status != game.StatusWaitingForPlayers {
		return nil, ErrGameStarted
	}
	if len(g.Participants) == 0 || g.Participants[0].PlayerUUID != requesterUUID {
		return nil, ErrNotGameHost
	}
	if len(g.Participants) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	for i := range g.Participants {
		if g.Participants[i].Race == "" || g.Participants[i].Class == "" {
			return nil, ErrCharacterRequired
		}
	}

	s.initializeCharacters(g)
	s.assignRoles(g)

	n := len(g.Participants)
	g.Monster = game.Monster{
		MaxHitPoints:     s.cfg.MonsterHP * n,
		CurrentHitPoints: s.cfg.MonsterHP * n,
		BaseDamage:       s.cfg.MonsterDamage,
	}

	g.Status = game.StatusInProgress
	g.Round = 1
	g.Level = 1
	if err := engine.AdvancePhase(g, game.PhaseAction); err != nil {
		return nil, err
	}
	g.ActionDeadline = time.Now().Add(s.cfg.ActionTimeout)
	g.Message = "The hunt begins. Choose your actions."

	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	logging.Info("game started", logging.Fields{
		"game_id": g.ID, "players": n, "monster_hp": g.Monster.MaxHitPoints})
	return g, nil
}

// LeaveGame removes a player from a lobby immediately, or flags the
// disconnect for the next safe point when the game is already running.
func (s *Service) LeaveGame(code, playerUUID string) (*game.Game, error) {
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p := g.ParticipantByUUID(playerUUID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}
	if g.Status == game.StatusWaitingForPlayers {
		if err := s.repo.RemoveParticipantByUUID(g.ID, playerUUID); err != nil {
			return nil, err
		}
		return s.repo.GetGameByID(g.ID)
	}
	// Mid-game departures are consumed at round finalization so an
	// already-resolved action is never retroactively undone.
	p.PendingDisconnect = true
	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// EndGame lets the host abort a running game.
func (s *Service) EndGame(code, requesterUUID string) (*game.Game, error) {
	g, unlock, err := s.lockGameByCode(code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if len(g.Participants) == 0 || g.Participants[0].PlayerUUID != requesterUUID {
		return nil, ErrNotGameHost
	}
	if g.Status == game.StatusFinished {
		return g, nil
	}
	g.Status = game.StatusFinished
	g.Message = "The game was ended by the host."
	if err := s.repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGame fetches a room by join code.
func (s *Service) GetGame(code string) (*game.Game, error) {
	g, err := s.repo.FindGameByJoinCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	return g, err
}

// PublicGames lists joinable public lobbies.
func (s *Service) PublicGames() ([]game.Game, error) {
	return s.repo.GetPublicGames()
}

func (s *Service) validateCharacter(race, class string) error {
	if _, ok := s.reg.RaceByName(race); !ok {
		return ErrUnknownRace
	}
	if _, ok := s.cfg.ClassByName(class); !ok {
		return ErrUnknownClass
	}
	return nil
}

func newParticipant(player PlayerInfo, race, class string) game.Participant {
	return game.Participant{
		PlayerUUID:  player.UUID,
		PlayerName:  player.Name,
		PlayerEmail: player.Email,
		Race:        race,
		Class:       class,
		IsAlive:     true,
	}
}

// initializeCharacters applies the configured class stats and unlocks the
// level-one class abilities plus the racial ability.
func (s *Service) initializeCharacters(g *game.Game) {
	for i := range g.Participants {
		p := &g.Participants[i]
		cl, _ := s.cfg.ClassByName(p.Class)
		p.MaxHitPoints = cl.HitPoints
		p.CurrentHitPoints = cl.HitPoints
		p.Armor = cl.Armor
		p.DamageMod = cl.DamageMod
		p.IsAlive = true
		p.Cooldowns = map[string]int{}
		p.Unlocked = nil
		for _, t := range cl.Abilities {
			if a, ok := s.reg.ClassAbility(t); ok && a.UnlockLevel <= 1 {
				p.Unlocked = append(p.Unlocked, t)
			}
		}
		if race, ok := s.reg.RaceByName(p.Race); ok {
			p.RacialAbility = race.Ability
		}
	}
}

// assignRoles deals the hidden corrupted role: one participant per started
// block of four, minimum one, chosen uniformly.
func (s *Service) assignRoles(g *game.Game) {
	n := len(g.Participants)
	corrupted := (n + 3) / 4
	if corrupted < 1 {
		corrupted = 1
	}
	for _, idx := range rand.Perm(n)[:corrupted] {
		g.Participants[idx].IsCorrupted = true
	}
}

// lockGameByCode resolves the join code, takes the room lock and reloads
// the row under it. The caller must invoke the returned unlock func.
func (s *Service) lockGameByCode(code string) (*game.Game, func(), error) {
	g, err := s.repo.FindGameByJoinCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrGameNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	lk := s.locks.forGame(g.ID)
	lk.Lock()
	g, err = s.repo.GetGameByID(g.ID)
	if err != nil {
		lk.Unlock()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGameNotFound
		}
		return nil, nil, err
	}
	return g, lk.Unlock, nil
}
