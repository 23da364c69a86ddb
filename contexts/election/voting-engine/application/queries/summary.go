package queries

import (
	"context"
	"fmt"
	"strings"

	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
	"ballotbox/contexts/election/voting-engine/ports"

	"github.com/google/uuid"
)

// TallyQueryUseCase serves read-only tally views. Counts are recomputed from
// ledger facts on every read, so a drifted cached counter can never leak into
// a summary.
type TallyQueryUseCase struct {
	Ledger     ports.VoteLedger
	Demo       ports.VoteLedger
	Candidates ports.CandidateRegistry
}

// Summary returns every candidate's authoritative count plus demo count,
// grouped by position.
func (uc TallyQueryUseCase) Summary(ctx context.Context) (map[string][]entities.CandidateTally, error) {
	candidates, err := uc.Candidates.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	tallies, err := uc.tally(ctx, candidates)
	if err != nil {
		return nil, err
	}

	summary := make(map[string][]entities.CandidateTally)
	for _, tally := range tallies {
		position := tally.Position
		if position == "" {
			position = "Unknown"
		}
		summary[position] = append(summary[position], tally)
	}
	return summary, nil
}

// RealtimeCounts returns counts for the requested candidates, or all
// candidates when none are named. Malformed ids are rejected before any
// store access.
func (uc TallyQueryUseCase) RealtimeCounts(ctx context.Context, candidateIDs []string) ([]entities.CandidateTally, error) {
	var candidates []entities.Candidate
	var err error

	if len(candidateIDs) == 0 {
		candidates, err = uc.Candidates.ListCandidates(ctx)
	} else {
		cleaned := make([]string, 0, len(candidateIDs))
		for _, id := range candidateIDs {
			id = strings.TrimSpace(id)
			if uuid.Validate(id) != nil {
				return nil, fmt.Errorf("%w: %s", domainerrors.ErrInvalidCandidateID, id)
			}
			cleaned = append(cleaned, id)
		}
		candidates, err = uc.Candidates.GetCandidates(ctx, cleaned)
	}
	if err != nil {
		return nil, err
	}
	return uc.tally(ctx, candidates)
}

func (uc TallyQueryUseCase) tally(ctx context.Context, candidates []entities.Candidate) ([]entities.CandidateTally, error) {
	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.CandidateID)
	}
	counts, err := uc.Ledger.CountVotesByCandidate(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	demoCounts := map[string]int64{}
	if uc.Demo != nil {
		if dc, err := uc.Demo.CountVotesByCandidate(ctx, candidateIDs); err == nil {
			demoCounts = dc
		}
	}

	items := make([]entities.CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, entities.CandidateTally{
			CandidateID: candidate.CandidateID,
			Name:        candidate.Name,
			Department:  candidate.Department,
			ImageURL:    candidate.ImageURL,
			Position:    candidate.Position,
			TotalVotes:  counts[candidate.CandidateID],
			DemoVotes:   demoCounts[candidate.CandidateID],
		})
	}
	return items, nil
}
