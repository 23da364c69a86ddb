package commands

import (
	"encoding/json"
	"time"

	"ballotbox/contexts/election/voting-engine/ports"
)

const (
	// TopicAllUpdates carries every tally change for observers that watch the
	// whole election; per-candidate observers subscribe to CandidateTopic.
	TopicAllUpdates = "vote_counts:all"
	TopicVoteCast   = "vote_cast"

	EventTypeVoteCast        = "vote_cast"
	EventTypeCountUpdate     = "vote_count_update"
	EventTypeBulkCountUpdate = "vote_counts_bulk_update"
)

func CandidateTopic(candidateID string) string {
	return "candidate:" + candidateID
}

func newTallyEnvelope(
	eventID string,
	eventType string,
	candidateID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Tally events are partitioned by candidate so candidate-scoped observers
	// see their updates in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: "voting-engine",
		SchemaVersion: 1,
		PartitionKey:  candidateID,
		Data:          payload,
	}, nil
}
