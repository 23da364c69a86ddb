package errors

import "errors"

var (
	ErrVoterIdentityRequired    = errors.New("voter registration number is required")
	ErrEmptyBatch               = errors.New("vote batch is empty")
	ErrInvalidCandidateID       = errors.New("invalid candidate id")
	ErrCandidateNotFound        = errors.New("candidate not found")
	ErrPositionNotConfigured    = errors.New("candidate has no position configured")
	ErrDuplicatePositionInBatch = errors.New("only one candidate per position is allowed in a single submission")
	ErrAlreadyVoted             = errors.New("voter has already voted for this position")
	ErrPositionRequired         = errors.New("position is required")
	ErrLedgerUnavailable        = errors.New("vote ledger is unavailable")
)
