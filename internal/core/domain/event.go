package domain

import (
	"encoding/json"
	"time"
)

const CurrentEventSchemaVersion = 1

const AggregateTypeVaga = "vaga"

const (
	EventVagaCreated = "vaga.created"
	EventVagaUpdated = "vaga.updated"
	EventVagaDeleted = "vaga.deleted"
)

const (
	OutboxStatusPending    = "pending"
	OutboxStatusDispatched = "dispatched"
	OutboxStatusDead       = "dead"
)

type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SchemaVersion int             `json:"schema_version"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

type OutboxEvent struct {
	ID            int64
	EventID       string
	Topic         string
	PayloadJSON   json.RawMessage
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	DispatchedAt  *time.Time
}

// Topic returns the outbox topic for an event type.
func Topic(eventType string) string {
	return "events." + eventType
}
