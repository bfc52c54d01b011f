package service

import (
	"errors"
	"testing"

	"github.com/zbonzo/warlock/internal/game"
)

func host() PlayerInfo           { return PlayerInfo{UUID: "host", Name: "Host", Email: "host@example.com"} }
func guest(id string) PlayerInfo { return PlayerInfo{UUID: id, Name: id} }

func TestCreateGame_OpensLobby(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())

	g, err := svc.CreateGame(host(), "Friday Night", false, "Rockhewn", "Warrior")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.JoinCode) != 6 {
		t.Fatalf("expected a 6-character join code, got %q", g.JoinCode)
	}
	if g.Phase != game.PhaseLobby || g.Status != game.StatusWaitingForPlayers {
		t.Fatalf("expected a waiting lobby, got phase=%s status=%s", g.Phase, g.Status)
	}
	if len(g.Participants) != 1 || g.Participants[0].PlayerUUID != "host" {
		t.Fatal("expected the creator seated as the first participant")
	}
}

func TestCreateGame_RejectsUnknownCharacter(t *testing.T) {
	svc := New(newMockRepo(), testConfig())
	if _, err := svc.CreateGame(host(), "x", false, "Elf", "Warrior"); !errors.Is(err, ErrUnknownRace) {
		t.Fatalf("expected ErrUnknownRace, got %v", err)
	}
	if _, err := svc.CreateGame(host(), "x", false, "Rockhewn", "Bard"); !errors.Is(err, ErrUnknownClass) {
		t.Fatalf("expected ErrUnknownClass, got %v", err)
	}
}

func TestJoinGame_Gates(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())
	g, _ := svc.CreateGame(host(), "x", false, "Rockhewn", "Warrior")

	if _, err := svc.JoinGame(g.JoinCode, host(), "Rockhewn", "Warrior"); !errors.Is(err, ErrAlreadyInGame) {
		t.Fatalf("expected ErrAlreadyInGame, got %v", err)
	}

	for i := 1; i < MaxParticipants; i++ {
		if _, err := svc.JoinGame(g.JoinCode, guest(string(rune('a'+i))), "Rockhewn", "Warrior"); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}
	if _, err := svc.JoinGame(g.JoinCode, guest("z"), "Rockhewn", "Warrior"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}

	g.Status = game.StatusInProgress
	if _, err := svc.JoinGame(g.JoinCode, guest("late"), "Rockhewn", "Warrior"); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("expected ErrGameStarted, got %v", err)
	}
}

func TestStartGame_DealsRolesAndStats(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())
	g, _ := svc.CreateGame(host(), "x", false, "Rockhewn", "Warrior")
	for _, id := range []string{"p2", "p3", "p4"} {
		if _, err := svc.JoinGame(g.JoinCode, guest(id), "Rockhewn", "Warrior"); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}

	g2, err := svc.StartGame(g.JoinCode, "host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g2.Status != game.StatusInProgress || g2.Phase != game.PhaseAction || g2.Round != 1 {
		t.Fatalf("expected an in-progress action phase, got status=%s phase=%s round=%d", g2.Status, g2.Phase, g2.Round)
	}
	if g2.ActionDeadline.IsZero() {
		t.Fatal("expected the action deadline armed at start")
	}

	// Four players deal exactly one hidden corrupted role.
	corrupted := 0
	for i := range g2.Participants {
		p := &g2.Participants[i]
		if p.IsCorrupted {
			corrupted++
		}
		if p.MaxHitPoints != 100 || p.CurrentHitPoints != 100 {
			t.Fatalf("expected class HP applied, got %d/%d", p.CurrentHitPoints, p.MaxHitPoints)
		}
		if p.RacialAbility != "stone_skin" {
			t.Fatalf("expected racial ability wired, got %q", p.RacialAbility)
		}
		for _, unlocked := range p.Unlocked {
			if unlocked == "big_strike" {
				t.Fatal("level-2 abilities must not be unlocked at start")
			}
		}
	}
	if corrupted != 1 {
		t.Fatalf("expected exactly 1 corrupted among 4 players, got %d", corrupted)
	}

	if g2.Monster.MaxHitPoints != 200*4 {
		t.Fatalf("expected monster HP scaled to roster size, got %d", g2.Monster.MaxHitPoints)
	}
}

func TestStartGame_Gates(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())
	g, _ := svc.CreateGame(host(), "x", false, "Rockhewn", "Warrior")

	if _, err := svc.StartGame(g.JoinCode, "host"); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	_, _ = svc.JoinGame(g.JoinCode, guest("p2"), "Rockhewn", "Warrior")
	if _, err := svc.StartGame(g.JoinCode, "p2"); !errors.Is(err, ErrNotGameHost) {
		t.Fatalf("expected ErrNotGameHost, got %v", err)
	}
	if _, err := svc.StartGame("ZZZZZZ", "host"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestLeaveGame_LobbyVsRunning(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())
	g, _ := svc.CreateGame(host(), "x", false, "Rockhewn", "Warrior")
	_, _ = svc.JoinGame(g.JoinCode, guest("p2"), "Rockhewn", "Warrior")

	// Lobby departures remove the seat immediately.
	g2, err := svc.LeaveGame(g.JoinCode, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g2.Participants) != 1 {
		t.Fatalf("expected 1 participant after lobby leave, got %d", len(g2.Participants))
	}

	// Mid-game departures only flag the disconnect.
	_, _ = svc.JoinGame(g.JoinCode, guest("p3"), "Rockhewn", "Warrior")
	if _, err := svc.StartGame(g.JoinCode, "host"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	g3, err := svc.LeaveGame(g.JoinCode, "p3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p3 := g3.ParticipantByUUID("p3")
	if !p3.PendingDisconnect {
		t.Fatal("expected a pending disconnect flag")
	}
	if !p3.IsAlive {
		t.Fatal("the participant must stay alive until the next safe point")
	}
}

func TestEndGame_HostOnly(t *testing.T) {
	mr := newMockRepo()
	svc := New(mr, testConfig())
	g, _ := svc.CreateGame(host(), "x", false, "Rockhewn", "Warrior")
	_, _ = svc.JoinGame(g.JoinCode, guest("p2"), "Rockhewn", "Warrior")
	_, _ = svc.StartGame(g.JoinCode, "host")

	if _, err := svc.EndGame(g.JoinCode, "p2"); !errors.Is(err, ErrNotGameHost) {
		t.Fatalf("expected ErrNotGameHost, got %v", err)
	}
	g2, err := svc.EndGame(g.JoinCode, "host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g2.Status != game.StatusFinished {
		t.Fatalf("expected finished game, got %s", g2.Status)
	}
}
