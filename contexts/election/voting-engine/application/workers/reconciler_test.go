package workers

import (
	"context"
	"testing"

	"ballotbox/contexts/election/voting-engine/adapters/memory"
	"ballotbox/contexts/election/voting-engine/application/commands"
	"ballotbox/contexts/election/voting-engine/domain/entities"
)

const (
	reconPresidentID = "6c1a9f3e-2d4b-4e8f-8a10-9b7c5d3e1f01"
	reconRivalID     = "6c1a9f3e-2d4b-4e8f-8a10-9b7c5d3e1f02"
)

func newReconcilerFixture(t *testing.T) (TallyReconciler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetCandidate(entities.Candidate{
		CandidateID: reconPresidentID,
		Name:        "Jordan Okafor",
		Position:    "President",
	})
	store.SetCandidate(entities.Candidate{
		CandidateID: reconRivalID,
		Name:        "Amina Bello",
		Position:    "Secretary",
	})

	uc := commands.BallotUseCase{Ledger: store, Demo: memory.NewStore(), Candidates: store}
	for _, voter := range []string{"reg-001", "reg-002", "reg-003"} {
		result, err := uc.CastVotes(context.Background(), commands.CastVotesCommand{
			VoterRegNumber: voter,
			Entries:        []commands.BatchEntry{{CandidateID: reconPresidentID}},
		})
		if err != nil || !result.Applied {
			t.Fatalf("seed cast for %s failed: err=%v applied=%v", voter, err, result.Applied)
		}
	}
	return TallyReconciler{Ledger: store, Candidates: store}, store
}

func TestReconcilerReportsNothingWhenTalliesMatch(t *testing.T) {
	reconciler, _ := newReconcilerFixture(t)

	report, err := reconciler.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if report.SyncedCount != 0 {
		t.Fatalf("expected no corrections, got %d", report.SyncedCount)
	}
	if len(report.Discrepancies) != 0 {
		t.Fatalf("expected no discrepancies, got %+v", report.Discrepancies)
	}
}

func TestReconcilerCorrectsDriftedTally(t *testing.T) {
	reconciler, store := newReconcilerFixture(t)
	ctx := context.Background()

	if err := store.SetTally(ctx, reconPresidentID, 7); err != nil {
		t.Fatalf("inject drift failed: %v", err)
	}

	report, err := reconciler.RunOnce(ctx)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if report.SyncedCount != 1 {
		t.Fatalf("expected 1 correction, got %d", report.SyncedCount)
	}
	got := report.Discrepancies[0]
	if got.CandidateID != reconPresidentID || got.StoredCount != 7 || got.ActualCount != 3 {
		t.Fatalf("unexpected discrepancy %+v", got)
	}

	tallies, err := store.Tallies(ctx, []string{reconPresidentID})
	if err != nil {
		t.Fatalf("tallies failed: %v", err)
	}
	if tallies[reconPresidentID] != 3 {
		t.Fatalf("expected counter corrected to 3, got %d", tallies[reconPresidentID])
	}

	// A second run finds nothing left to fix.
	report, err = reconciler.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if report.SyncedCount != 0 {
		t.Fatalf("expected clean second run, got %d corrections", report.SyncedCount)
	}
}
