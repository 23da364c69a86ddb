package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ballotbox/contexts/election/voting-engine/application/commands"
	"ballotbox/contexts/election/voting-engine/ports"
	votinghttp "ballotbox/contexts/election/voting-engine/transport/http"
)

// handleCastVotes godoc
// @Summary      Cast one or more votes
// @Description  Records a ballot for the authenticated voter. Accepts a single candidateId/position pair or a votes[] batch. The submission is all-or-nothing: any conflicting position rejects the whole batch.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        X-Voter-Reg  header    string                         false  "Voter registration number"
// @Param        request      body      votinghttp.CastVotesRequest    true   "Vote submission"
// @Success      200          {object}  votinghttp.CastVotesResponse
// @Failure      400          {object}  votinghttp.ErrorResponse
// @Failure      404          {object}  votinghttp.ErrorResponse
// @Router       /api/votes [post]
func (s *Server) handleCastVotes(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body.")
		return
	}

	voterRegNumber := strings.TrimSpace(r.Header.Get("X-Voter-Reg"))
	if voterRegNumber == "" {
		voterRegNumber = req.VoterRegNumber
	}

	resp, err := s.voting.Handler.CastVotesHandler(r.Context(), voterRegNumber, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

// handleVoteSummary godoc
// @Summary      Vote summary grouped by position
// @Description  Returns every candidate's live and demo tallies, grouped by the position they contest.
// @Tags         votes
// @Produce      json
// @Success      200  {object}  votinghttp.SummaryResponse
// @Failure      500  {object}  votinghttp.ErrorResponse
// @Router       /api/votes/summary [get]
func (s *Server) handleVoteSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.SummaryHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRealtimeCounts godoc
// @Summary      Realtime vote counts
// @Description  Returns current counts for the requested candidates, or for all candidates when candidate_ids is omitted.
// @Tags         votes
// @Produce      json
// @Param        candidate_ids  query     string  false  "Comma-separated candidate IDs"
// @Success      200            {object}  votinghttp.CountsResponse
// @Failure      400            {object}  votinghttp.ErrorResponse
// @Router       /api/votes/counts [get]
func (s *Server) handleRealtimeCounts(w http.ResponseWriter, r *http.Request) {
	var candidateIDs []string
	if raw := strings.TrimSpace(r.URL.Query().Get("candidate_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				candidateIDs = append(candidateIDs, id)
			}
		}
	}

	resp, err := s.voting.Handler.RealtimeCountsHandler(r.Context(), candidateIDs)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVoteStream godoc
// @Summary      Stream live count updates
// @Description  Server-sent event stream of vote count updates. Subscribe to a single candidate with the candidate_id query parameter, or omit it for all updates.
// @Tags         votes
// @Produce      text/event-stream
// @Param        candidate_id  query  string  false  "Candidate ID to follow"
// @Success      200
// @Router       /api/votes/stream [get]
func (s *Server) handleVoteStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeVotingError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "streaming unsupported")
		return
	}

	topic := commands.TopicAllUpdates
	if candidateID := strings.TrimSpace(r.URL.Query().Get("candidate_id")); candidateID != "" {
		topic = commands.CandidateTopic(candidateID)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan ports.EventEnvelope, 16)
	s.bus.Subscribe(ctx, topic, func(_ context.Context, event ports.EventEnvelope) error {
		select {
		case events <- event:
		case <-ctx.Done():
		}
		return nil
	})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			fmt.Fprintf(w, "event: %s\n", event.EventType)
			fmt.Fprintf(w, "data: %s\n\n", event.Data)
			flusher.Flush()
		}
	}
}
