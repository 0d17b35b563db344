package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"agora/contexts/procurement/tender-service/adapters/memory"
	"agora/contexts/procurement/tender-service/ports"
)

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

type capturingSubscriber struct {
	topics   []string
	groups   []string
	handlers []func(context.Context, ports.EventEnvelope) error
}

func (s *capturingSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.topics = append(s.topics, topic)
	s.groups = append(s.groups, consumerGroup)
	s.handlers = append(s.handlers, handler)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, eventID string, eventType string, occurredAt time.Time) {
	t.Helper()
	data, _ := json.Marshal(map[string]any{"tender_id": "tender-1", "phase": "approved"})
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt,
		SourceService: "tender-service",
		SchemaVersion: 1,
		PartitionKey:  "tender-1",
		Data:          data,
	})
	if err != nil {
		t.Fatalf("seed outbox failed: %v", err)
	}
}

func TestOutboxRelayPublishesPendingRowsOnce(t *testing.T) {
	store := memory.NewStore(nil)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	seedOutbox(t, store, "event-1", "tender.created", base)
	seedOutbox(t, store, "event-2", "tender.approved", base.Add(time.Minute))

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("expected 2 publishes, got %v", publisher.topics)
	}
	if publisher.topics[0] != "tender.created" || publisher.topics[1] != "tender.approved" {
		t.Fatalf("expected event-type topics in creation order, got %v", publisher.topics)
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained, got %d pending rows", len(pending))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("published rows must not be republished, got %v", publisher.topics)
	}
}

func TestOutboxRelayKeepsRowsPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore(nil)
	seedOutbox(t, store, "event-1", "tender.created", time.Now().UTC())

	relay := OutboxRelay{Outbox: store, Publisher: &capturingPublisher{fail: true}, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 1 {
		t.Fatalf("failed rows must stay pending, got %d", len(pending))
	}
}

func TestLifecycleAuditorSubscribesEveryTopic(t *testing.T) {
	subscriber := &capturingSubscriber{}
	auditor := LifecycleAuditor{
		Subscriber: subscriber,
		Topics:     []string{"tender.created", "tender.approved", "tender.awarded"},
	}
	if err := auditor.Start(context.Background()); err != nil {
		t.Fatalf("auditor start failed: %v", err)
	}
	if len(subscriber.topics) != 3 {
		t.Fatalf("expected 3 subscriptions, got %v", subscriber.topics)
	}
	for _, group := range subscriber.groups {
		if group != "tender-lifecycle-audit-cg" {
			t.Fatalf("expected default consumer group, got %q", group)
		}
	}

	data, _ := json.Marshal(map[string]any{"phase": "approved"})
	event := ports.EventEnvelope{EventID: "event-1", EventType: "tender.approved", PartitionKey: "tender-1", Data: data}
	if err := subscriber.handlers[0](context.Background(), event); err != nil {
		t.Fatalf("handler rejected well-formed event: %v", err)
	}
	if err := subscriber.handlers[0](context.Background(), ports.EventEnvelope{Data: json.RawMessage(`{"broken`)}); err == nil {
		t.Fatal("expected malformed payload to fail")
	}
}
