package entities

import "time"

// Vote is an immutable ledger fact: one voter backing one candidate for one
// position. Facts are only ever inserted by the ballot use case and deleted
// by administrative resets; they are never updated in place.
type Vote struct {
	VoteID         string
	VoterRegNumber string
	CandidateID    string
	Position       string
	CreatedAt      time.Time
}

// Candidate mirrors the canonical candidate record owned by admin tooling.
// TotalVotes is the cached tally counter maintained in lockstep with ledger
// writes; the recount from raw facts is always authoritative over it.
type Candidate struct {
	CandidateID string
	Name        string
	Department  string
	Position    string
	ImageURL    string
	TotalVotes  int64
}

type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusError   ResultStatus = "error"
)

// PositionResult is the per-position outcome of a cast batch.
type PositionResult struct {
	Position    string
	CandidateID string
	Status      ResultStatus
	Message     string
	VoteCount   int64
}

// CandidateTally is a summary row: authoritative recounted totals plus the
// ephemeral demo counter for the same candidate.
type CandidateTally struct {
	CandidateID string
	Name        string
	Department  string
	ImageURL    string
	Position    string
	TotalVotes  int64
	DemoVotes   int64
}

// TallyDiscrepancy records one cached counter that disagreed with the ledger
// recount at reconciliation time.
type TallyDiscrepancy struct {
	CandidateID string
	StoredCount int64
	ActualCount int64
}

type ReconciliationReport struct {
	SyncedCount   int
	Discrepancies []TallyDiscrepancy
}
