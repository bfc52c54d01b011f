package service

import (
	"errors"
	"testing"
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
)

func TestSubmitAction_StoresThenResolves(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1", "p2")
	g.ActionDeadline = time.Now().Add(time.Minute)
	svc := New(mr, testConfig())

	res, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Resolved {
		t.Fatal("round must not resolve after one of two submissions")
	}
	if !g.ParticipantByUUID("p1").HasSubmittedAction {
		t.Fatal("expected the pending action to be stored")
	}

	res, err = svc.SubmitAction("ABC123", "p2", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Resolved {
		t.Fatal("expected the last submission to resolve the round")
	}
	if res.Game.Round != 2 || res.Game.Phase != game.PhaseResults {
		t.Fatalf("expected round 2 in results phase, got round=%d phase=%s", res.Game.Round, res.Game.Phase)
	}
	if len(mr.summaries) != 1 {
		t.Fatalf("expected one persisted round summary, got %d", len(mr.summaries))
	}
	if !res.Game.ActionDeadline.IsZero() {
		t.Fatal("expected the action deadline to be cleared after resolution")
	}
}

func TestSubmitAction_InvalidRejectedWithReasons(t *testing.T) {
	mr := newMockRepo()
	runningGame(mr, "ABC123", "p1", "p2")
	svc := New(mr, testConfig())

	res, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "no_such", TargetID: game.MonsterTargetID})
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if len(res.Validation.Errors) == 0 {
		t.Fatal("expected validation reasons to ride along")
	}
	if res.Game.ParticipantByUUID("p1").HasSubmittedAction {
		t.Fatal("a rejected action must not be stored")
	}
}

func TestSubmitAction_DuplicateIsDistinctError(t *testing.T) {
	mr := newMockRepo()
	runningGame(mr, "ABC123", "p1", "p2")
	svc := New(mr, testConfig())

	if _, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID})
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction for duplicate, got %v", err)
	}
	found := false
	for _, reason := range res.Validation.Errors {
		if reason == engine.ReasonAlreadySubmitted {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among %v", engine.ReasonAlreadySubmitted, res.Validation.Errors)
	}
}

func TestSubmitAction_PhaseAndStatusGates(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1", "p2")
	svc := New(mr, testConfig())

	g.Phase = game.PhaseResults
	if _, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID}); !errors.Is(err, ErrActionsLocked) {
		t.Fatalf("expected ErrActionsLocked in results phase, got %v", err)
	}

	g.Phase = game.PhaseAction
	g.Status = game.StatusFinished
	if _, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID}); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}
}

func TestSubmitAction_UnknownGameAndPlayer(t *testing.T) {
	mr := newMockRepo()
	runningGame(mr, "ABC123", "p1")
	svc := New(mr, testConfig())

	if _, err := svc.SubmitAction("ZZZZZZ", "p1", engine.ActionRequest{}); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := svc.SubmitAction("ABC123", "ghost", engine.ActionRequest{}); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("expected ErrPlayerNotInGame, got %v", err)
	}
}

func TestSubmitAction_StatsCountedOnceOnFinish(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1", "p2")
	g.Monster.CurrentHitPoints = 5
	svc := New(mr, testConfig())

	if _, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.SubmitAction("ABC123", "p2", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Game.Status != game.StatusFinished {
		t.Fatalf("expected a finished game, got %s", res.Game.Status)
	}
	if !mr.statsCalled {
		t.Fatal("expected stats sink to run on game end")
	}
	if !res.Game.StatsCounted {
		t.Fatal("expected StatsCounted flag so stats never run twice")
	}
}
