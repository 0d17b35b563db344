package commands

import (
	"context"
	"encoding/json"
	"time"

	"agora/contexts/procurement/tender-service/domain/entities"
	"agora/contexts/procurement/tender-service/ports"
)

// appendTenderEvent persists one lifecycle event to the module outbox.
// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
func (uc TenderUseCase) appendTenderEvent(
	ctx context.Context,
	eventType string,
	tender entities.Tender,
	occurredAt time.Time,
	metadata map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"tender_id":      tender.TenderID,
		"phase":          string(tender.Phase),
		"admin_id":       tender.AdminID,
		"yes_vote_count": tender.YesVoteCount,
		"proposal_count": tender.ProposalCount,
		"occurred_at":    occurredAt.Format(time.RFC3339),
	}
	for key, value := range metadata {
		data[key] = value
	}

	envelope, err := newTenderEnvelope(eventID, eventType, tender.TenderID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

// newTenderEnvelope builds canonical envelopes partitioned by tender so
// tender-scoped consumers observe lifecycle events in order.
func newTenderEnvelope(
	eventID string,
	eventType string,
	tenderID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "tender-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "tender_id",
		PartitionKey:     tenderID,
		Data:             payload,
	}, nil
}
