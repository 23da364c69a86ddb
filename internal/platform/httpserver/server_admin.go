package httpserver

import (
	"encoding/json"
	"net/http"

	votinghttp "ballotbox/contexts/election/voting-engine/transport/http"
)

// handleResetAll godoc
// @Summary      Reset all vote counts
// @Description  Deletes every recorded vote (live and demo) and zeroes all candidate tallies.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  votinghttp.ResetResponse
// @Failure      401  {object}  votinghttp.ErrorResponse
// @Router       /api/admin/votes/reset [post]
func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if !requireAdminAuthorization(w, r) {
		return
	}
	resp, err := s.voting.Handler.ResetAllHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleResetPosition godoc
// @Summary      Reset votes for one position
// @Description  Deletes votes cast for the given position and recomputes the affected candidates' tallies from the remaining votes.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      votinghttp.ResetPositionRequest  true  "Position to reset"
// @Success      200      {object}  votinghttp.ResetResponse
// @Failure      400      {object}  votinghttp.ErrorResponse
// @Failure      401      {object}  votinghttp.ErrorResponse
// @Router       /api/admin/votes/reset-position [post]
func (s *Server) handleResetPosition(w http.ResponseWriter, r *http.Request) {
	if !requireAdminAuthorization(w, r) {
		return
	}
	var req votinghttp.ResetPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body.")
		return
	}
	resp, err := s.voting.Handler.ResetPositionHandler(r.Context(), req.Position)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleResetDemo godoc
// @Summary      Reset demo votes
// @Description  Clears the in-memory demo ledger without touching live votes.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  votinghttp.ResetResponse
// @Failure      401  {object}  votinghttp.ErrorResponse
// @Router       /api/admin/votes/reset-demo [post]
func (s *Server) handleResetDemo(w http.ResponseWriter, r *http.Request) {
	if !requireAdminAuthorization(w, r) {
		return
	}
	resp, err := s.voting.Handler.ResetDemoHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVerifyCounts godoc
// @Summary      Verify and sync vote counts
// @Description  Recounts every candidate's votes from the ledger and corrects any stored tally that drifted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  votinghttp.VerifyResponse
// @Failure      401  {object}  votinghttp.ErrorResponse
// @Router       /api/admin/votes/verify [post]
func (s *Server) handleVerifyCounts(w http.ResponseWriter, r *http.Request) {
	if !requireAdminAuthorization(w, r) {
		return
	}
	resp, err := s.voting.Handler.VerifyHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
