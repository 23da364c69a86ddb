package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"ballotbox/contexts/election/voting-engine/adapters/memory"
	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
)

const (
	presidentCandidateID     = "8f14e45f-ceea-467f-a34e-2f2d7c1b4e01"
	presidentRivalID         = "8f14e45f-ceea-467f-a34e-2f2d7c1b4e02"
	secretaryCandidateID     = "8f14e45f-ceea-467f-a34e-2f2d7c1b4e03"
	unknownCandidateID       = "8f14e45f-ceea-467f-a34e-2f2d7c1b4eff"
	noPositionCandidateID    = "8f14e45f-ceea-467f-a34e-2f2d7c1b4e04"
	testPresidentPositionKey = "President"
)

func newBallotFixture() (BallotUseCase, *memory.Store, *memory.Store) {
	store := memory.NewStore()
	demo := memory.NewStore()
	store.SetCandidate(entities.Candidate{
		CandidateID: presidentCandidateID,
		Name:        "Jordan Okafor",
		Department:  "Computer Science",
		Position:    testPresidentPositionKey,
	})
	store.SetCandidate(entities.Candidate{
		CandidateID: presidentRivalID,
		Name:        "Amina Bello",
		Department:  "Economics",
		Position:    testPresidentPositionKey,
	})
	store.SetCandidate(entities.Candidate{
		CandidateID: secretaryCandidateID,
		Name:        "Chidi Eze",
		Department:  "Law",
		Position:    "Secretary",
	})
	store.SetCandidate(entities.Candidate{
		CandidateID: noPositionCandidateID,
		Name:        "Blank Position",
		Department:  "Physics",
	})
	uc := BallotUseCase{
		Ledger:     store,
		Demo:       demo,
		Candidates: store,
	}
	return uc, store, demo
}

func TestCastVotesRecordsSingleVote(t *testing.T) {
	uc, _, _ := newBallotFixture()

	result, err := uc.CastVotes(context.Background(), CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !result.Applied {
		t.Fatalf("expected batch to apply, got results %+v", result.Results)
	}
	if len(result.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.Results))
	}
	got := result.Results[0]
	if got.Status != entities.ResultStatusSuccess {
		t.Fatalf("expected success status, got %q", got.Status)
	}
	if got.VoteCount != 1 {
		t.Fatalf("expected vote count 1, got %d", got.VoteCount)
	}
	if !strings.Contains(got.Message, "Jordan Okafor") {
		t.Fatalf("expected message to name the candidate, got %q", got.Message)
	}
}

func TestCastVotesRejectsSecondVoteForSamePosition(t *testing.T) {
	uc, _, _ := newBallotFixture()
	ctx := context.Background()

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	result, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: presidentRivalID}},
	})
	if err != nil {
		t.Fatalf("expected graceful rejection, got error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected rejection, batch applied")
	}
	got := result.Results[0]
	if got.Status != entities.ResultStatusError {
		t.Fatalf("expected error status, got %q", got.Status)
	}
	if !strings.Contains(got.Message, testPresidentPositionKey) {
		t.Fatalf("expected message to name the taken position, got %q", got.Message)
	}

	count, err := uc.Ledger.CountVotesFor(ctx, presidentRivalID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected vote must not count, got %d", count)
	}
}

func TestCastVotesNormalizesVoterIdentity(t *testing.T) {
	uc, _, _ := newBallotFixture()
	ctx := context.Background()

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "REG-001",
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	result, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "  reg-001 ",
		Entries:        []BatchEntry{{CandidateID: presidentRivalID}},
	})
	if err != nil {
		t.Fatalf("expected graceful rejection, got error: %v", err)
	}
	if result.Applied {
		t.Fatal("case and whitespace variants must resolve to the same voter")
	}
}

func TestCastVotesRejectsWholeBatchWhenOnePositionConflicts(t *testing.T) {
	uc, store, _ := newBallotFixture()
	ctx := context.Background()

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	}); err != nil {
		t.Fatalf("seed cast failed: %v", err)
	}

	result, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries: []BatchEntry{
			{CandidateID: secretaryCandidateID},
			{CandidateID: presidentRivalID},
		},
	})
	if err != nil {
		t.Fatalf("expected graceful rejection, got error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected whole batch rejected")
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected a result per entry, got %d", len(result.Results))
	}

	// The non-conflicting secretary vote must not have been written either.
	count, err := store.CountVotesFor(ctx, secretaryCandidateID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("conflicting batch must leave the ledger untouched, got %d secretary votes", count)
	}
}

func TestCastVotesRejectsDuplicatePositionWithinBatch(t *testing.T) {
	uc, _, _ := newBallotFixture()

	_, err := uc.CastVotes(context.Background(), CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries: []BatchEntry{
			{CandidateID: presidentCandidateID},
			{CandidateID: presidentRivalID},
		},
	})
	if !errors.Is(err, domainerrors.ErrDuplicatePositionInBatch) {
		t.Fatalf("expected ErrDuplicatePositionInBatch, got %v", err)
	}
}

func TestCastVotesValidatesInput(t *testing.T) {
	uc, _, _ := newBallotFixture()
	ctx := context.Background()

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		Entries: []BatchEntry{{CandidateID: presidentCandidateID}},
	}); !errors.Is(err, domainerrors.ErrVoterIdentityRequired) {
		t.Fatalf("expected ErrVoterIdentityRequired, got %v", err)
	}

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
	}); !errors.Is(err, domainerrors.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: "not-a-uuid"}},
	}); !errors.Is(err, domainerrors.ErrInvalidCandidateID) {
		t.Fatalf("expected ErrInvalidCandidateID, got %v", err)
	}

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: unknownCandidateID}},
	}); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}

	if _, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: noPositionCandidateID}},
	}); !errors.Is(err, domainerrors.ErrPositionNotConfigured) {
		t.Fatalf("expected ErrPositionNotConfigured, got %v", err)
	}
}

func TestCastVotesDemoPathLeavesDurableLedgerUntouched(t *testing.T) {
	uc, store, demo := newBallotFixture()
	ctx := context.Background()

	result, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Demo:           true,
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	})
	if err != nil {
		t.Fatalf("demo cast failed: %v", err)
	}
	if !result.Applied {
		t.Fatalf("expected demo batch to apply, got %+v", result.Results)
	}
	if !strings.Contains(result.Results[0].Message, "demo mode") {
		t.Fatalf("expected demo marker in message, got %q", result.Results[0].Message)
	}

	demoCount, _ := demo.CountVotesFor(ctx, presidentCandidateID)
	if demoCount != 1 {
		t.Fatalf("expected 1 demo vote, got %d", demoCount)
	}
	liveCount, _ := store.CountVotesFor(ctx, presidentCandidateID)
	if liveCount != 0 {
		t.Fatalf("demo vote leaked into durable ledger: %d", liveCount)
	}

	// A demo vote must not block the real ballot for the same position.
	liveResult, err := uc.CastVotes(ctx, CastVotesCommand{
		VoterRegNumber: "reg-001",
		Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
	})
	if err != nil {
		t.Fatalf("live cast after demo failed: %v", err)
	}
	if !liveResult.Applied {
		t.Fatalf("demo vote must not block the live ballot, got %+v", liveResult.Results)
	}
}

func TestCastVotesConcurrentSubmissionsAdmitExactlyOne(t *testing.T) {
	uc, store, _ := newBallotFixture()
	ctx := context.Background()

	const submissions = 16
	var wg sync.WaitGroup
	applied := make(chan bool, submissions)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := uc.CastVotes(ctx, CastVotesCommand{
				VoterRegNumber: "reg-001",
				Entries:        []BatchEntry{{CandidateID: presidentCandidateID}},
			})
			if err != nil {
				t.Errorf("cast returned error: %v", err)
				return
			}
			applied <- result.Applied
		}()
	}
	wg.Wait()
	close(applied)

	successes := 0
	for ok := range applied {
		if ok {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 admitted submission, got %d", successes)
	}
	count, _ := store.CountVotesFor(ctx, presidentCandidateID)
	if count != 1 {
		t.Fatalf("expected exactly 1 recorded vote, got %d", count)
	}
}
