package workers

import (
	"context"
	"log/slog"

	application "ballotbox/contexts/election/voting-engine/application"
	"ballotbox/contexts/election/voting-engine/domain/entities"
	"ballotbox/contexts/election/voting-engine/ports"
)

// TallyReconciler recomputes each candidate's tally counter from raw ledger
// facts and corrects any drift. Counters are maintained incrementally inside
// the cast transaction and can only drift under partial-failure bugs or
// manual data edits; this job is the self-healing path. It is safe to run
// repeatedly and concurrently with voting: it only ever moves a counter
// toward the recount.
type TallyReconciler struct {
	Ledger     ports.VoteLedger
	Candidates ports.CandidateRegistry
	Logger     *slog.Logger
}

func (r TallyReconciler) RunOnce(ctx context.Context) (entities.ReconciliationReport, error) {
	logger := application.ResolveLogger(r.Logger)

	candidates, err := r.Candidates.ListCandidates(ctx)
	if err != nil {
		logger.Error("reconciler candidate listing failed",
			"event", "election_reconcile_list_failed",
			"module", "election/voting-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return entities.ReconciliationReport{}, err
	}

	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.CandidateID)
	}
	stored, err := r.Ledger.Tallies(ctx, candidateIDs)
	if err != nil {
		return entities.ReconciliationReport{}, err
	}

	report := entities.ReconciliationReport{}
	for _, candidate := range candidates {
		actual, err := r.Ledger.CountVotesFor(ctx, candidate.CandidateID)
		if err != nil {
			return entities.ReconciliationReport{}, err
		}
		storedCount := stored[candidate.CandidateID]
		if actual == storedCount {
			continue
		}

		if err := r.Ledger.SetTally(ctx, candidate.CandidateID, actual); err != nil {
			return entities.ReconciliationReport{}, err
		}
		report.SyncedCount++
		report.Discrepancies = append(report.Discrepancies, entities.TallyDiscrepancy{
			CandidateID: candidate.CandidateID,
			StoredCount: storedCount,
			ActualCount: actual,
		})
		logger.Warn("tally discrepancy corrected",
			"event", "election_reconcile_corrected",
			"module", "election/voting-engine",
			"layer", "worker",
			"candidate_id", candidate.CandidateID,
			"stored_count", storedCount,
			"actual_count", actual,
		)
	}

	logger.Info("tally reconciliation completed",
		"event", "election_reconcile_completed",
		"module", "election/voting-engine",
		"layer", "worker",
		"candidate_count", len(candidates),
		"synced_count", report.SyncedCount,
	)
	return report, nil
}
