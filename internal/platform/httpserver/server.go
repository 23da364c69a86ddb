package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	votingengine "ballotbox/contexts/election/voting-engine"
	votingerrors "ballotbox/contexts/election/voting-engine/domain/errors"
	votinghttp "ballotbox/contexts/election/voting-engine/transport/http"
	"ballotbox/internal/platform/messaging"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "ballotbox/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	voting votingengine.Module
	bus    *messaging.Bus
}

func New(
	voting votingengine.Module,
	bus *messaging.Bus,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		voting: voting,
		bus:    bus,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for httptest wiring.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/votes", s.handleCastVotes)
	s.mux.HandleFunc("GET /api/votes/summary", s.handleVoteSummary)
	s.mux.HandleFunc("GET /api/votes/counts", s.handleRealtimeCounts)
	s.mux.HandleFunc("GET /api/votes/stream", s.handleVoteStream)

	s.mux.HandleFunc("POST /api/admin/votes/reset", s.handleResetAll)
	s.mux.HandleFunc("POST /api/admin/votes/reset-position", s.handleResetPosition)
	s.mux.HandleFunc("POST /api/admin/votes/reset-demo", s.handleResetDemo)
	s.mux.HandleFunc("POST /api/admin/votes/verify", s.handleVerifyCounts)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrVoterIdentityRequired):
		writeVotingError(w, http.StatusBadRequest, "VOTER_REQUIRED", err.Error())
	case errors.Is(err, votingerrors.ErrEmptyBatch):
		writeVotingError(w, http.StatusBadRequest, "EMPTY_BATCH", "Invalid request body. Provide candidateId/position or votes[].")
	case errors.Is(err, votingerrors.ErrInvalidCandidateID):
		writeVotingError(w, http.StatusBadRequest, "INVALID_CANDIDATE_ID", err.Error())
	case errors.Is(err, votingerrors.ErrDuplicatePositionInBatch):
		writeVotingError(w, http.StatusBadRequest, "DUPLICATE_POSITION", "You can only vote for one candidate per position in a single submission.")
	case errors.Is(err, votingerrors.ErrPositionNotConfigured):
		writeVotingError(w, http.StatusInternalServerError, "POSITION_NOT_CONFIGURED", err.Error())
	case errors.Is(err, votingerrors.ErrPositionRequired):
		writeVotingError(w, http.StatusBadRequest, "POSITION_REQUIRED", "Position is required.")
	case errors.Is(err, votingerrors.ErrCandidateNotFound):
		writeVotingError(w, http.StatusNotFound, "CANDIDATE_NOT_FOUND", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusBadRequest, "ALREADY_VOTED", err.Error())
	case errors.Is(err, votingerrors.ErrLedgerUnavailable):
		writeVotingError(w, http.StatusServiceUnavailable, "LEDGER_UNAVAILABLE", "Vote ledger is temporarily unavailable. Please retry.")
	default:
		writeVotingError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// requireAdminAuthorization checks for bearer-token presence only; token
// validation belongs to the external auth collaborator in front of this
// service.
func requireAdminAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeVotingError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return false
	}
	return true
}
