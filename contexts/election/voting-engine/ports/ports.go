package ports

import (
	"context"
	"encoding/json"
	"time"

	"ballotbox/contexts/election/voting-engine/domain/entities"
)

// VoteLedger is the storage contract the ballot use case is written against.
// Two implementations exist: the durable transactional postgres repository
// and the in-memory demo ledger. ApplyBatch is all-or-nothing: every fact is
// inserted and every matching tally counter incremented in one unit, or
// nothing changes. Implementations must enforce uniqueness of
// (voterRegNumber, position) as a hard constraint and report violations as
// ErrAlreadyVoted; this constraint, not the caller's pre-check, is the
// correctness guarantee under concurrent submissions.
type VoteLedger interface {
	FindVotesFor(ctx context.Context, voterRegNumber string, positions []string) ([]entities.Vote, error)
	ApplyBatch(ctx context.Context, facts []entities.Vote) error
	CountVotesFor(ctx context.Context, candidateID string) (int64, error)
	CountVotesByCandidate(ctx context.Context, candidateIDs []string) (map[string]int64, error)
	Tallies(ctx context.Context, candidateIDs []string) (map[string]int64, error)
	SetTally(ctx context.Context, candidateID string, count int64) error
	ResetAll(ctx context.Context) (int64, error)
	ResetPosition(ctx context.Context, position string, candidateIDs []string) (int64, error)
}

// CandidateRegistry is a read-only view of the canonical candidate records.
// Creation and mutation of candidates belong to admin tooling outside this
// module; the ballot path only resolves and validates against them.
type CandidateRegistry interface {
	GetCandidates(ctx context.Context, candidateIDs []string) ([]entities.Candidate, error)
	ListCandidates(ctx context.Context) ([]entities.Candidate, error)
	ListCandidatesByPosition(ctx context.Context, position string) ([]entities.Candidate, error)
}

// EventEnvelope is the wire shape pushed to tally observers.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

// EventPublisher fans envelopes out to subscribers of a topic. Delivery is
// best effort; publishers must not block on slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
