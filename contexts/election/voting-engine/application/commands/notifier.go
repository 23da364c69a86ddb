package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/election/voting-engine/application"
	"ballotbox/contexts/election/voting-engine/domain/entities"
	"ballotbox/contexts/election/voting-engine/ports"
)

// TallyNotifier pushes tally changes to live observers after a commit has
// succeeded. It is strictly best effort: a publish failure is logged and
// swallowed, never surfaced to the voter whose batch already committed.
type TallyNotifier struct {
	Publisher  ports.EventPublisher
	Candidates ports.CandidateRegistry
	Ledger     ports.VoteLedger
	Demo       ports.VoteLedger
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// PublishVoteCast announces a single committed vote with the candidate's
// post-commit authoritative count.
func (n TallyNotifier) PublishVoteCast(ctx context.Context, candidate entities.Candidate, isDemo bool, voteCount int64) {
	if n.Publisher == nil {
		return
	}
	now := n.now()
	data := map[string]any{
		"candidateId": candidate.CandidateID,
		"position":    candidate.Position,
		"isDemo":      isDemo,
		"voteCount":   voteCount,
		"timestamp":   now.Format(time.RFC3339),
	}
	n.emit(ctx, TopicVoteCast, EventTypeVoteCast, candidate.CandidateID, now, data)
	n.emit(ctx, TopicAllUpdates, EventTypeVoteCast, candidate.CandidateID, now, data)
}

// PublishCountUpdates recomputes counts for the given candidates and fans a
// bulk update plus per-candidate updates out to subscribers. Used after casts
// and after resets (where every count may have changed).
func (n TallyNotifier) PublishCountUpdates(ctx context.Context, candidateIDs []string) {
	if n.Publisher == nil || len(candidateIDs) == 0 {
		return
	}
	logger := application.ResolveLogger(n.Logger)

	candidates, err := n.Candidates.GetCandidates(ctx, candidateIDs)
	if err != nil {
		logger.Warn("tally notifier candidate lookup failed",
			"event", "election_notify_candidates_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	counts, err := n.Ledger.CountVotesByCandidate(ctx, candidateIDs)
	if err != nil {
		logger.Warn("tally notifier recount failed",
			"event", "election_notify_recount_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	demoCounts := map[string]int64{}
	if n.Demo != nil {
		if dc, err := n.Demo.CountVotesByCandidate(ctx, candidateIDs); err == nil {
			demoCounts = dc
		}
	}

	now := n.now()
	timestamp := now.Format(time.RFC3339)
	updates := make([]map[string]any, 0, len(candidates))
	for _, candidate := range candidates {
		updates = append(updates, map[string]any{
			"candidateId":   candidate.CandidateID,
			"position":      candidate.Position,
			"voteCount":     counts[candidate.CandidateID],
			"candidateName": candidate.Name,
			"department":    candidate.Department,
			"demoVotes":     demoCounts[candidate.CandidateID],
			"timestamp":     timestamp,
		})
	}

	n.emit(ctx, TopicAllUpdates, EventTypeBulkCountUpdate, "", now, map[string]any{
		"updates":   updates,
		"timestamp": timestamp,
	})
	for _, update := range updates {
		candidateID, _ := update["candidateId"].(string)
		n.emit(ctx, TopicAllUpdates, EventTypeCountUpdate, candidateID, now, update)
		n.emit(ctx, CandidateTopic(candidateID), EventTypeCountUpdate, candidateID, now, update)
	}
}

func (n TallyNotifier) emit(
	ctx context.Context,
	topic string,
	eventType string,
	candidateID string,
	occurredAt time.Time,
	data map[string]any,
) {
	logger := application.ResolveLogger(n.Logger)
	eventID := ""
	if n.IDGen != nil {
		if id, err := n.IDGen.NewID(ctx); err == nil {
			eventID = id
		}
	}
	envelope, err := newTallyEnvelope(eventID, eventType, strings.TrimSpace(candidateID), occurredAt, data)
	if err != nil {
		logger.Warn("tally envelope encode failed",
			"event", "election_notify_encode_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}
	if err := n.Publisher.Publish(ctx, topic, envelope); err != nil {
		logger.Warn("tally publish failed",
			"event", "election_notify_publish_failed",
			"module", "election/voting-engine",
			"layer", "application",
			"topic", topic,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func (n TallyNotifier) now() time.Time {
	if n.Clock != nil {
		return n.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
