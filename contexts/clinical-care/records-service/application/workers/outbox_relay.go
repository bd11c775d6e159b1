package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"clinicalh/contexts/clinical-care/records-service/application"
	"clinicalh/contexts/clinical-care/records-service/ports"
)

// OutboxRelay drains pending outbox rows to the event bus. Rows are
// relayed in commit order; a publish failure stops the batch so the row
// is retried on the next tick.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("records outbox list failed",
			"event", "records_outbox_list_failed",
			"module", "clinical-care/records-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &envelope); err != nil {
			return err
		}
		if err := r.Publisher.Publish(ctx, row.EventType, envelope); err != nil {
			logger.Error("records outbox publish failed",
				"event", "records_outbox_publish_failed",
				"module", "clinical-care/records-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"topic", row.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
		logger.Info("records outbox row relayed",
			"event", "records_outbox_relayed",
			"module", "clinical-care/records-service",
			"layer", "worker",
			"outbox_id", row.OutboxID,
			"topic", row.EventType,
		)
	}
	return nil
}

// Run polls until the context is cancelled.
func (r OutboxRelay) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				application.ResolveLogger(r.Logger).Error("records outbox relay tick failed",
					"event", "records_outbox_tick_failed",
					"module", "clinical-care/records-service",
					"layer", "worker",
					"error", err.Error(),
				)
			}
		}
	}
}
