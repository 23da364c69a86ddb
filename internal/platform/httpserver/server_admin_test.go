package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	votinghttp "ballotbox/contexts/election/voting-engine/transport/http"
)

func adminPost(t *testing.T, server *Server, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestAdminEndpointsRequireAuthorization(t *testing.T) {
	server := newTestServer()

	for _, path := range []string{
		"/api/admin/votes/reset",
		"/api/admin/votes/reset-position",
		"/api/admin/votes/reset-demo",
		"/api/admin/votes/verify",
	} {
		rr := adminPost(t, server, path, "", `{}`)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestResetAllEndpointClearsVotes(t *testing.T) {
	server := newTestServer()

	if rr := castJSON(t, server, "REG-001", `{"candidateId":"`+testPresidentID+`"}`); rr.Code != http.StatusOK {
		t.Fatalf("seed cast failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr := adminPost(t, server, "/api/admin/votes/reset", "token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp votinghttp.ResetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DeletedVotes != 1 {
		t.Fatalf("expected 1 deleted vote, got %+v", resp)
	}

	// The voter can vote again after the reset.
	if rr := castJSON(t, server, "REG-001", `{"candidateId":"`+testPresidentID+`"}`); rr.Code != http.StatusOK {
		t.Fatalf("re-cast after reset failed: %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResetPositionEndpointValidatesPosition(t *testing.T) {
	server := newTestServer()

	rr := adminPost(t, server, "/api/admin/votes/reset-position", "token", `{"position":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestResetPositionEndpointDeletesOnlyThatRace(t *testing.T) {
	server := newTestServer()

	body := `{"votes":[{"candidateId":"` + testPresidentID + `"},{"candidateId":"` + testSecretaryID + `"}]}`
	if rr := castJSON(t, server, "REG-001", body); rr.Code != http.StatusOK {
		t.Fatalf("seed cast failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr := adminPost(t, server, "/api/admin/votes/reset-position", "token", `{"position":"President"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp votinghttp.ResetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DeletedVotes != 1 {
		t.Fatalf("expected 1 deleted vote, got %+v", resp)
	}

	// The secretary vote must still block a second secretary ballot.
	repeat := castJSON(t, server, "REG-001", `{"candidateId":"`+testSecretaryID+`"}`)
	if repeat.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for surviving secretary vote, got %d body=%s", repeat.Code, repeat.Body.String())
	}
}

func TestVerifyEndpointCorrectsDriftedTally(t *testing.T) {
	server := newTestServer()

	if rr := castJSON(t, server, "REG-001", `{"candidateId":"`+testPresidentID+`"}`); rr.Code != http.StatusOK {
		t.Fatalf("seed cast failed: %d body=%s", rr.Code, rr.Body.String())
	}
	if err := server.voting.Store.SetTally(context.Background(), testPresidentID, 42); err != nil {
		t.Fatalf("inject drift failed: %v", err)
	}

	rr := adminPost(t, server, "/api/admin/votes/verify", "token", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp votinghttp.VerifyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Synced != 1 {
		t.Fatalf("expected 1 synced counter, got %+v", resp)
	}
	if len(resp.Discrepancies) != 1 || resp.Discrepancies[0].ActualCount != 1 {
		t.Fatalf("unexpected discrepancies %+v", resp.Discrepancies)
	}
}
