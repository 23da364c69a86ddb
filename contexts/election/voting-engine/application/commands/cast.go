package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/election/voting-engine/application"
	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
	"ballotbox/contexts/election/voting-engine/ports"

	"github.com/google/uuid"
)

// BatchEntry is one caller-selected vote: a candidate and, optionally, the
// position the caller believes the candidate runs for. The canonical position
// always comes from the candidate record; the caller's value is never
// trusted.
type BatchEntry struct {
	CandidateID string
	Position    string
}

// CastVotesCommand is the write-model input for a vote submission.
type CastVotesCommand struct {
	VoterRegNumber string
	Demo           bool
	Entries        []BatchEntry
}

// CastVotesResult reports per-position outcomes. Applied is true only when
// the whole batch committed; conflict rejections come back with Applied false
// and error entries naming every conflicting position.
type CastVotesResult struct {
	Applied bool
	Results []entities.PositionResult
}

// BallotUseCase orchestrates vote casting: batch validation, canonical
// position resolution, the optimistic duplicate pre-check, the atomic apply,
// the post-commit recount, and observer notification. The algorithm is
// written once against ports.VoteLedger; the persistent and demo paths differ
// only in which ledger they resolve.
type BallotUseCase struct {
	Ledger     ports.VoteLedger
	Demo       ports.VoteLedger
	Candidates ports.CandidateRegistry
	Notifier   TallyNotifier
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc BallotUseCase) CastVotes(ctx context.Context, cmd CastVotesCommand) (CastVotesResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	voter := strings.ToUpper(strings.TrimSpace(cmd.VoterRegNumber))
	if voter == "" {
		return CastVotesResult{}, domainerrors.ErrVoterIdentityRequired
	}
	if len(cmd.Entries) == 0 {
		return CastVotesResult{}, domainerrors.ErrEmptyBatch
	}

	logger.Info("vote cast processing started",
		"event", "election_cast_started",
		"module", "election/voting-engine",
		"layer", "application",
		"voter_reg_number", voter,
		"batch_size", len(cmd.Entries),
		"demo", cmd.Demo,
	)

	candidateIDs := make([]string, 0, len(cmd.Entries))
	for _, entry := range cmd.Entries {
		id := strings.TrimSpace(entry.CandidateID)
		if uuid.Validate(id) != nil {
			return CastVotesResult{}, fmt.Errorf("%w: %s", domainerrors.ErrInvalidCandidateID, id)
		}
		candidateIDs = append(candidateIDs, id)
	}

	candidates, missing, err := uc.resolveCandidates(ctx, candidateIDs)
	if err != nil {
		return CastVotesResult{}, err
	}
	if len(missing) > 0 {
		return CastVotesResult{}, fmt.Errorf("%w: %s", domainerrors.ErrCandidateNotFound, strings.Join(missing, ", "))
	}

	// Canonical positions come from the candidate records; submitting two
	// candidates for the same position is rejected before any ledger access.
	positions := make([]string, 0, len(candidateIDs))
	seen := make(map[string]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		position := candidates[id].Position
		if position == "" {
			return CastVotesResult{}, fmt.Errorf("%w: %s", domainerrors.ErrPositionNotConfigured, id)
		}
		if _, dup := seen[position]; dup {
			return CastVotesResult{}, fmt.Errorf("%w: %s", domainerrors.ErrDuplicatePositionInBatch, position)
		}
		seen[position] = struct{}{}
		positions = append(positions, position)
	}

	ledger := uc.resolveLedger(cmd.Demo)

	// Optimistic pre-check: fail fast with a precise error before opening a
	// transaction that is certain to hit the uniqueness constraint. This is a
	// UX path only; the constraint inside ApplyBatch is the actual guarantee.
	existing, err := ledger.FindVotesFor(ctx, voter, positions)
	if err != nil {
		return CastVotesResult{}, err
	}
	if len(existing) > 0 {
		taken := make([]string, 0, len(existing))
		for _, vote := range existing {
			taken = append(taken, vote.Position)
		}
		logger.Info("vote cast rejected on pre-check",
			"event", "election_cast_duplicate_precheck",
			"module", "election/voting-engine",
			"layer", "application",
			"voter_reg_number", voter,
			"positions", strings.Join(taken, ","),
			"demo", cmd.Demo,
		)
		return conflictResult(candidateIDs, candidates, taken, cmd.Demo), nil
	}

	now := uc.now()
	facts := make([]entities.Vote, 0, len(candidateIDs))
	for i, id := range candidateIDs {
		voteID, err := uc.newID(ctx)
		if err != nil {
			return CastVotesResult{}, err
		}
		facts = append(facts, entities.Vote{
			VoteID:         voteID,
			VoterRegNumber: voter,
			CandidateID:    id,
			Position:       positions[i],
			CreatedAt:      now,
		})
	}

	if err := ledger.ApplyBatch(ctx, facts); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			// Lost the race against a concurrent submission; re-query so the
			// rejection names the exact positions now taken.
			taken := positions
			if held, lookupErr := ledger.FindVotesFor(ctx, voter, positions); lookupErr == nil && len(held) > 0 {
				taken = make([]string, 0, len(held))
				for _, vote := range held {
					taken = append(taken, vote.Position)
				}
			}
			logger.Info("vote cast rejected by uniqueness constraint",
				"event", "election_cast_duplicate_commit",
				"module", "election/voting-engine",
				"layer", "application",
				"voter_reg_number", voter,
				"demo", cmd.Demo,
			)
			return conflictResult(candidateIDs, candidates, taken, cmd.Demo), nil
		}
		logger.Error("vote cast apply failed",
			"event", "election_cast_apply_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"voter_reg_number", voter,
			"demo", cmd.Demo,
			"error", err.Error(),
		)
		return CastVotesResult{}, err
	}

	// Read-after-write recount: the response carries the authoritative
	// post-commit count, never a client-side increment.
	counts, err := ledger.CountVotesByCandidate(ctx, candidateIDs)
	if err != nil {
		logger.Warn("post-commit recount failed; reporting without counts",
			"event", "election_cast_recount_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"voter_reg_number", voter,
			"error", err.Error(),
		)
		counts = map[string]int64{}
	}

	for _, id := range candidateIDs {
		uc.Notifier.PublishVoteCast(ctx, candidates[id], cmd.Demo, counts[id])
	}
	uc.Notifier.PublishCountUpdates(ctx, candidateIDs)

	results := make([]entities.PositionResult, 0, len(candidateIDs))
	for i, id := range candidateIDs {
		candidate := candidates[id]
		suffix := ""
		if cmd.Demo {
			suffix = " (demo mode)"
		}
		results = append(results, entities.PositionResult{
			Position:    positions[i],
			CandidateID: id,
			Status:      entities.ResultStatusSuccess,
			Message: fmt.Sprintf("Your vote for %q as %q has been recorded%s.",
				candidate.Name, positions[i], suffix),
			VoteCount: counts[id],
		})
	}

	logger.Info("vote cast committed",
		"event", "election_cast_committed",
		"module", "election/voting-engine",
		"layer", "application",
		"voter_reg_number", voter,
		"batch_size", len(facts),
		"demo", cmd.Demo,
	)
	return CastVotesResult{Applied: true, Results: results}, nil
}

func (uc BallotUseCase) resolveCandidates(
	ctx context.Context,
	candidateIDs []string,
) (map[string]entities.Candidate, []string, error) {
	found, err := uc.Candidates.GetCandidates(ctx, candidateIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]entities.Candidate, len(found))
	for _, candidate := range found {
		byID[candidate.CandidateID] = candidate
	}
	var missing []string
	for _, id := range candidateIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return byID, missing, nil
}

func (uc BallotUseCase) resolveLedger(demo bool) ports.VoteLedger {
	if demo {
		return uc.Demo
	}
	return uc.Ledger
}

func (uc BallotUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc BallotUseCase) newID(ctx context.Context) (string, error) {
	if uc.IDGen != nil {
		return uc.IDGen.NewID(ctx)
	}
	return uuid.NewString(), nil
}

// conflictResult rejects the whole batch, naming every conflicting position
// so the caller can correct the submission without guessing.
func conflictResult(
	candidateIDs []string,
	candidates map[string]entities.Candidate,
	takenPositions []string,
	demo bool,
) CastVotesResult {
	takenSet := make(map[string]struct{}, len(takenPositions))
	for _, position := range takenPositions {
		takenSet[position] = struct{}{}
	}
	suffix := ""
	if demo {
		suffix = " (demo mode)"
	}
	results := make([]entities.PositionResult, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		position := candidates[id].Position
		message := fmt.Sprintf("Cannot process vote: you have already voted for %s.",
			strings.Join(takenPositions, ", "))
		if _, taken := takenSet[position]; taken {
			message = fmt.Sprintf("You have already voted for %s%s. Each voter can only vote once per position.",
				position, suffix)
		}
		results = append(results, entities.PositionResult{
			Position:    position,
			CandidateID: id,
			Status:      entities.ResultStatusError,
			Message:     message,
		})
	}
	return CastVotesResult{Applied: false, Results: results}
}
