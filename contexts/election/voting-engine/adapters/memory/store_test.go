package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
)

func vote(voter, candidateID, position string, at time.Time) entities.Vote {
	return entities.Vote{
		VoteID:         voter + ":" + position,
		VoterRegNumber: voter,
		CandidateID:    candidateID,
		Position:       position,
		CreatedAt:      at,
	}
}

func TestApplyBatchConflictLeavesStoreUntouched(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.ApplyBatch(ctx, []entities.Vote{
		vote("REG-001", "cand-a", "President", now),
	}); err != nil {
		t.Fatalf("seed apply failed: %v", err)
	}

	err := store.ApplyBatch(ctx, []entities.Vote{
		vote("REG-001", "cand-b", "Secretary", now),
		vote("REG-001", "cand-c", "President", now),
	})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// The non-conflicting secretary fact must not have been written.
	count, _ := store.CountVotesFor(ctx, "cand-b")
	if count != 0 {
		t.Fatalf("partial write on conflict: got %d secretary votes", count)
	}
	tallies, _ := store.Tallies(ctx, []string{"cand-b"})
	if tallies["cand-b"] != 0 {
		t.Fatalf("tally incremented on rejected batch: %d", tallies["cand-b"])
	}
}

func TestFindVotesForReturnsOnlyRequestedPositions(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.ApplyBatch(ctx, []entities.Vote{
		vote("REG-001", "cand-a", "President", now),
		vote("REG-001", "cand-b", "Secretary", now.Add(time.Second)),
	}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	held, err := store.FindVotesFor(ctx, "REG-001", []string{"President", "Treasurer"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(held) != 1 || held[0].Position != "President" {
		t.Fatalf("expected only the president vote, got %+v", held)
	}

	held, err = store.FindVotesFor(ctx, "REG-404", []string{"President"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(held) != 0 {
		t.Fatalf("expected no votes for unknown voter, got %+v", held)
	}
}

func TestResetPositionRecomputesTallies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.ApplyBatch(ctx, []entities.Vote{
		vote("REG-001", "cand-a", "President", now),
		vote("REG-002", "cand-a", "President", now),
		vote("REG-001", "cand-b", "Secretary", now),
	}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	deleted, err := store.ResetPosition(ctx, "President", []string{"cand-a"})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted votes, got %d", deleted)
	}

	tallies, _ := store.Tallies(ctx, []string{"cand-a", "cand-b"})
	if tallies["cand-a"] != 0 {
		t.Fatalf("expected cand-a tally recomputed to 0, got %d", tallies["cand-a"])
	}
	if tallies["cand-b"] != 1 {
		t.Fatalf("secretary tally must survive, got %d", tallies["cand-b"])
	}
}

func TestCandidateListingsCarryLiveTallies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.SetCandidate(entities.Candidate{CandidateID: "cand-a", Name: "A", Position: "President"})
	store.SetCandidate(entities.Candidate{CandidateID: "cand-b", Name: "B", Position: "Secretary"})

	if err := store.ApplyBatch(ctx, []entities.Vote{
		vote("REG-001", "cand-a", "President", time.Now().UTC()),
	}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	candidates, err := store.GetCandidates(ctx, []string{"cand-a"})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].TotalVotes != 1 {
		t.Fatalf("expected live tally on candidate record, got %+v", candidates)
	}

	byPosition, err := store.ListCandidatesByPosition(ctx, "Secretary")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byPosition) != 1 || byPosition[0].CandidateID != "cand-b" {
		t.Fatalf("expected only the secretary candidate, got %+v", byPosition)
	}
}
