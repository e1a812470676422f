package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eyecandy/internal/platform/kafka/producer"
)

// MessageProducer is the subset of the Kafka producer the sink needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// eventJSON is the wire format published to the audit topic.
type eventJSON struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	ViewerKey   string    `json:"viewer_key,omitempty"`
	PerformerID string    `json:"performer_id,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	Decision    string    `json:"decision,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	DecidedBy   string    `json:"decided_by,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	ActorID     string    `json:"actor_id,omitempty"`
}

// KafkaSink publishes audit events to a topic keyed by performer, so one
// performer's events stay ordered within a partition.
type KafkaSink struct {
	producer MessageProducer
	topic    string
}

// NewKafkaSink creates a sink publishing to topic.
func NewKafkaSink(p MessageProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: p, topic: topic}
}

func (k *KafkaSink) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(eventJSON{
		Timestamp:   event.Timestamp.UTC(),
		Action:      event.Action,
		ViewerKey:   event.ViewerKey,
		PerformerID: event.PerformerID,
		SessionID:   event.SessionID,
		Decision:    event.Decision,
		Reason:      event.Reason,
		DecidedBy:   event.DecidedBy,
		RequestID:   event.RequestID,
		ActorID:     event.ActorID,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	headers := map[string]string{"event_type": event.Action}
	if event.RequestID != "" {
		headers["request_id"] = event.RequestID
	}

	return k.producer.Produce(ctx, &producer.Message{
		Topic:   k.topic,
		Key:     []byte(event.PerformerID),
		Value:   value,
		Headers: headers,
	})
}
