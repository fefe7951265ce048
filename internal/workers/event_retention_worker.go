package workers

import (
	"context"
	"time"

	"pulsehub/internal/domain"
	"pulsehub/internal/logger"
)

// EventRetentionWorker prunes audit trail rows older than the configured
// retention window.
type EventRetentionWorker struct {
	events    domain.EventRepository
	retention time.Duration
	log       logger.Logger
}

func (w *EventRetentionWorker) Name() string {
	return "event_retention"
}

func (w *EventRetentionWorker) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-w.retention)

	pruned, err := w.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if pruned > 0 {
		w.log.Info("worker: pruned audit trail", "rows", pruned, "cutoff", cutoff)
	}

	return nil
}
