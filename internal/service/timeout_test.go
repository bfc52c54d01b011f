package service

import (
	"testing"
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
)

func TestHandleTimedOutGame_ForcesResolution(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1", "p2")
	g.ActionDeadline = time.Now().Add(-time.Second)
	svc := New(mr, testConfig())

	// Only one player submitted before the deadline.
	p1 := g.ParticipantByUUID("p1")
	p1.HasSubmittedAction = true
	p1.PendingActionType = "strike"
	p1.PendingTargetID = game.MonsterTargetID

	if err := svc.HandleTimedOutGame(g.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Round != 2 || g.Phase != game.PhaseResults {
		t.Fatalf("expected forced resolution to round 2/results, got round=%d phase=%s", g.Round, g.Phase)
	}
	// The submitted strike still landed; the silent player simply did nothing.
	if g.Monster.CurrentHitPoints >= 200 {
		t.Fatal("expected the submitted action to resolve")
	}
	if len(mr.summaries) != 1 {
		t.Fatalf("expected one round summary, got %d", len(mr.summaries))
	}
}

func TestHandleTimedOutGame_ReleasesStaleClaim(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1")
	// The round resolved between the claim and the lock.
	g.Phase = game.PhaseResults
	g.ClaimedBy = "worker-1"
	g.ClaimedAt = time.Now()
	svc := New(mr, testConfig())

	if err := svc.HandleTimedOutGame(g.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ClaimedBy != "" {
		t.Fatal("expected the claim to be released without resolving")
	}
	if g.Round != 1 {
		t.Fatalf("expected no resolution, got round %d", g.Round)
	}
}

func TestSubmitAfterTimeoutWindowStillWorks(t *testing.T) {
	mr := newMockRepo()
	g := runningGame(mr, "ABC123", "p1", "p2")
	g.ActionDeadline = time.Now().Add(time.Minute)
	svc := New(mr, testConfig())

	// A future deadline means the scanner never claims the room.
	ids, _ := mr.ClaimTimedOutGameIDs(time.Now(), 20, 2*time.Minute, "w")
	if len(ids) != 0 {
		t.Fatalf("expected no claimable games, got %v", ids)
	}
	if _, err := svc.SubmitAction("ABC123", "p1", engine.ActionRequest{AbilityType: "strike", TargetID: game.MonsterTargetID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
