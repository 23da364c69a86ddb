package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "ballotbox/contexts/election/voting-engine/application"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
	"ballotbox/contexts/election/voting-engine/ports"
)

// ResetReport summarizes an administrative reset.
type ResetReport struct {
	DeletedVotes     int64
	DeletedDemoVotes int64
}

// ResetUseCase owns the administrative reset paths. Resets are the only
// operations that delete ledger facts; they never increment anything.
// Each is idempotent: a second run deletes zero rows and leaves counters
// where the first run put them.
type ResetUseCase struct {
	Ledger     ports.VoteLedger
	Demo       ports.VoteLedger
	Candidates ports.CandidateRegistry
	Notifier   TallyNotifier
	Logger     *slog.Logger
}

// ResetAll deletes every vote fact, zeroes every tally counter (one store
// transaction), clears the demo ledger, and republishes counts for every
// candidate.
func (uc ResetUseCase) ResetAll(ctx context.Context) (ResetReport, error) {
	logger := application.ResolveLogger(uc.Logger)

	deleted, err := uc.Ledger.ResetAll(ctx)
	if err != nil {
		return ResetReport{}, err
	}
	demoDeleted, err := uc.Demo.ResetAll(ctx)
	if err != nil {
		return ResetReport{}, err
	}

	logger.Info("all votes reset",
		"event", "election_reset_all",
		"module", "election/voting-engine",
		"layer", "application",
		"deleted_votes", deleted,
		"deleted_demo_votes", demoDeleted,
	)

	uc.publishAll(ctx)
	return ResetReport{DeletedVotes: deleted, DeletedDemoVotes: demoDeleted}, nil
}

// ResetPosition deletes facts for one position and recomputes (not zeroes)
// each affected candidate's counter from the remaining facts.
func (uc ResetUseCase) ResetPosition(ctx context.Context, position string) (ResetReport, error) {
	logger := application.ResolveLogger(uc.Logger)

	position = strings.TrimSpace(position)
	if position == "" {
		return ResetReport{}, domainerrors.ErrPositionRequired
	}

	candidates, err := uc.Candidates.ListCandidatesByPosition(ctx, position)
	if err != nil {
		return ResetReport{}, err
	}
	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.CandidateID)
	}

	deleted, err := uc.Ledger.ResetPosition(ctx, position, candidateIDs)
	if err != nil {
		return ResetReport{}, fmt.Errorf("reset position %q: %w", position, err)
	}
	demoDeleted, err := uc.Demo.ResetPosition(ctx, position, candidateIDs)
	if err != nil {
		return ResetReport{}, fmt.Errorf("reset demo position %q: %w", position, err)
	}

	logger.Info("position votes reset",
		"event", "election_reset_position",
		"module", "election/voting-engine",
		"layer", "application",
		"position", position,
		"deleted_votes", deleted,
		"deleted_demo_votes", demoDeleted,
	)

	if len(candidateIDs) > 0 {
		uc.Notifier.PublishCountUpdates(ctx, candidateIDs)
	}
	return ResetReport{DeletedVotes: deleted, DeletedDemoVotes: demoDeleted}, nil
}

// ResetDemo clears only the demo ledger; the durable ledger and its counters
// are untouched.
func (uc ResetUseCase) ResetDemo(ctx context.Context) (ResetReport, error) {
	logger := application.ResolveLogger(uc.Logger)

	demoDeleted, err := uc.Demo.ResetAll(ctx)
	if err != nil {
		return ResetReport{}, err
	}
	logger.Info("demo votes reset",
		"event", "election_reset_demo",
		"module", "election/voting-engine",
		"layer", "application",
		"deleted_demo_votes", demoDeleted,
	)

	uc.publishAll(ctx)
	return ResetReport{DeletedDemoVotes: demoDeleted}, nil
}

func (uc ResetUseCase) publishAll(ctx context.Context) {
	logger := application.ResolveLogger(uc.Logger)
	candidates, err := uc.Candidates.ListCandidates(ctx)
	if err != nil {
		logger.Warn("post-reset candidate listing failed; skipping notifications",
			"event", "election_reset_notify_skipped",
			"module", "election/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	if len(candidates) == 0 {
		return
	}
	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.CandidateID)
	}
	uc.Notifier.PublishCountUpdates(ctx, candidateIDs)
}
