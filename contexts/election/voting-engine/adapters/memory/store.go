package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory vote ledger. It backs two roles: the demo ledger in
// production (process-lifetime, per-instance, cleared on restart) and the
// ledger stand-in for unit tests. Each Store is an isolated instance; nothing
// here is package-level state.
type Store struct {
	mu sync.RWMutex

	// votes[voterRegNumber][position] holds at most one fact, which is the
	// uniqueness constraint expressed structurally.
	votes      map[string]map[string]entities.Vote
	tallies    map[string]int64
	candidates map[string]entities.Candidate
}

func NewStore() *Store {
	return &Store{
		votes:      make(map[string]map[string]entities.Vote),
		tallies:    make(map[string]int64),
		candidates: make(map[string]entities.Candidate),
	}
}

// SetCandidate seeds a canonical candidate record. Test and demo wiring only;
// production candidate data lives in postgres.
func (s *Store) SetCandidate(candidate entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(candidate.CandidateID)
	candidate.CandidateID = id
	s.candidates[id] = candidate
	if _, ok := s.tallies[id]; !ok {
		s.tallies[id] = candidate.TotalVotes
	}
}

func (s *Store) FindVotesFor(_ context.Context, voterRegNumber string, positions []string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPosition := s.votes[strings.TrimSpace(voterRegNumber)]
	if len(byPosition) == 0 {
		return nil, nil
	}
	items := make([]entities.Vote, 0, len(positions))
	for _, position := range positions {
		if vote, ok := byPosition[position]; ok {
			items = append(items, vote)
		}
	}
	sortVotesByCreation(items)
	return items, nil
}

func (s *Store) ApplyBatch(_ context.Context, facts []entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before the first write so a conflict leaves
	// the store untouched.
	for _, fact := range facts {
		if byPosition, ok := s.votes[fact.VoterRegNumber]; ok {
			if _, taken := byPosition[fact.Position]; taken {
				return domainerrors.ErrAlreadyVoted
			}
		}
	}

	for _, fact := range facts {
		byPosition, ok := s.votes[fact.VoterRegNumber]
		if !ok {
			byPosition = make(map[string]entities.Vote)
			s.votes[fact.VoterRegNumber] = byPosition
		}
		byPosition[fact.Position] = fact
		s.tallies[fact.CandidateID]++
	}
	return nil
}

func (s *Store) CountVotesFor(_ context.Context, candidateID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(strings.TrimSpace(candidateID)), nil
}

func (s *Store) CountVotesByCandidate(_ context.Context, candidateIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64, len(candidateIDs))
	for _, id := range candidateIDs {
		counts[strings.TrimSpace(id)] = 0
	}
	for _, byPosition := range s.votes {
		for _, vote := range byPosition {
			if _, wanted := counts[vote.CandidateID]; wanted {
				counts[vote.CandidateID]++
			}
		}
	}
	return counts, nil
}

func (s *Store) Tallies(_ context.Context, candidateIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tallies := make(map[string]int64, len(candidateIDs))
	for _, id := range candidateIDs {
		tallies[strings.TrimSpace(id)] = s.tallies[strings.TrimSpace(id)]
	}
	return tallies, nil
}

func (s *Store) SetTally(_ context.Context, candidateID string, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[strings.TrimSpace(candidateID)] = count
	return nil
}

func (s *Store) ResetAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, byPosition := range s.votes {
		deleted += int64(len(byPosition))
	}
	s.votes = make(map[string]map[string]entities.Vote)
	s.tallies = make(map[string]int64)
	return deleted, nil
}

func (s *Store) ResetPosition(_ context.Context, position string, candidateIDs []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for voter, byPosition := range s.votes {
		if _, ok := byPosition[position]; ok {
			delete(byPosition, position)
			deleted++
		}
		if len(byPosition) == 0 {
			delete(s.votes, voter)
		}
	}
	// Recompute rather than zero: a candidate could still hold facts under
	// another position from stale cross-position data.
	for _, id := range candidateIDs {
		s.tallies[strings.TrimSpace(id)] = s.countLocked(strings.TrimSpace(id))
	}
	return deleted, nil
}

func (s *Store) GetCandidates(_ context.Context, candidateIDs []string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Candidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if candidate, ok := s.candidates[strings.TrimSpace(id)]; ok {
			candidate.TotalVotes = s.tallies[candidate.CandidateID]
			items = append(items, candidate)
		}
	}
	return items, nil
}

func (s *Store) ListCandidates(_ context.Context) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		candidate.TotalVotes = s.tallies[candidate.CandidateID]
		items = append(items, candidate)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CandidateID < items[j].CandidateID
	})
	return items, nil
}

func (s *Store) ListCandidatesByPosition(_ context.Context, position string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.Position == strings.TrimSpace(position) {
			candidate.TotalVotes = s.tallies[candidate.CandidateID]
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CandidateID < items[j].CandidateID
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) countLocked(candidateID string) int64 {
	var count int64
	for _, byPosition := range s.votes {
		for _, vote := range byPosition {
			if vote.CandidateID == candidateID {
				count++
			}
		}
	}
	return count
}

func sortVotesByCreation(items []entities.Vote) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
