package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "agora/contexts/procurement/tender-service/application"
	"agora/contexts/procurement/tender-service/ports"
)

// LifecycleAuditor consumes published tender lifecycle events and writes an
// audit line per event. It keeps the phase history observable without giving
// read access to the tender tables.
type LifecycleAuditor struct {
	Subscriber    ports.EventSubscriber
	Topics        []string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (a LifecycleAuditor) Start(ctx context.Context) error {
	group := a.ConsumerGroup
	if group == "" {
		group = "tender-lifecycle-audit-cg"
	}
	for _, topic := range a.Topics {
		if err := a.Subscriber.Subscribe(ctx, topic, group, a.handle); err != nil {
			return err
		}
	}
	return nil
}

func (a LifecycleAuditor) handle(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(a.Logger)

	var data map[string]any
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &data); err != nil {
			logger.Error("tender lifecycle event decode failed",
				"event", "tender_lifecycle_audit_decode_failed",
				"module", "procurement/tender-service",
				"layer", "worker",
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("tender lifecycle event observed",
		"event", "tender_lifecycle_audit",
		"module", "procurement/tender-service",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"tender_id", event.PartitionKey,
		"phase", data["phase"],
	)
	return nil
}
