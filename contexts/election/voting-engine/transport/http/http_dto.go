package http

type ErrorResponse struct {
	Success            bool     `json:"success"`
	Code               string   `json:"code"`
	Message            string   `json:"message"`
	DuplicatePositions []string `json:"duplicatePositions,omitempty"`
	MissingCandidates  []string `json:"missingCandidateIds,omitempty"`
}

type VoteSelection struct {
	CandidateID string `json:"candidateId"`
	Position    string `json:"position,omitempty"`
}

// CastVotesRequest accepts either the single-vote shape (candidateId +
// position) or a votes array; both normalize to one batch.
type CastVotesRequest struct {
	CandidateID    string          `json:"candidateId,omitempty"`
	Position       string          `json:"position,omitempty"`
	Votes          []VoteSelection `json:"votes,omitempty"`
	IsDemo         bool            `json:"isDemo,omitempty"`
	VoterRegNumber string          `json:"voterRegNumber,omitempty"`
}

type VoteResult struct {
	Position    string `json:"position"`
	CandidateID string `json:"candidateId"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	VoteCount   int64  `json:"voteCount,omitempty"`
}

type CastVotesResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Results []VoteResult `json:"results"`
}

type CandidateTallyItem struct {
	CandidateID string `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Image       string `json:"image,omitempty"`
	TotalVotes  int64  `json:"totalVotes"`
	DemoVotes   int64  `json:"demoVotes"`
}

type SummaryResponse map[string][]CandidateTallyItem

type CandidateCountItem struct {
	CandidateID   string `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	Position      string `json:"position"`
	Department    string `json:"department"`
	VoteCount     int64  `json:"voteCount"`
	DemoVotes     int64  `json:"demoVotes"`
}

type CountsResponse struct {
	Success   bool                 `json:"success"`
	Counts    []CandidateCountItem `json:"counts"`
	Timestamp string               `json:"timestamp"`
}

type ResetPositionRequest struct {
	Position string `json:"position"`
}

type ResetResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DeletedVotes     int64  `json:"deletedVotes"`
	DeletedDemoVotes int64  `json:"deletedDemoVotes"`
}

type DiscrepancyItem struct {
	CandidateID string `json:"candidateId"`
	StoredCount int64  `json:"storedCount"`
	ActualCount int64  `json:"actualCount"`
}

type VerifyResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Synced        int               `json:"synced"`
	Discrepancies []DiscrepancyItem `json:"discrepancies"`
}
