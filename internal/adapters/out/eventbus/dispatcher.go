// Package eventbus hands the events recorded by committed aggregates to a
// ports.EventPublisher. Units of work of every store share it.
package eventbus

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// Dispatcher publishes after commit. A failed publish is logged and never
// undoes the committed write.
type Dispatcher struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewDispatcher accepts a nil publisher, in which case events are dropped.
func NewDispatcher(publisher ports.EventPublisher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{publisher: publisher, logger: logger.With("component", "event-dispatcher")}
}

// Flush pulls the pending events of each aggregate once, in tracking order.
func (d *Dispatcher) Flush(ctx context.Context, aggregates []*job.Job) {
	seen := make(map[*job.Job]struct{}, len(aggregates))
	for _, aggregate := range aggregates {
		if _, ok := seen[aggregate]; ok {
			continue
		}
		seen[aggregate] = struct{}{}

		for _, event := range aggregate.PullEvents() {
			if d == nil || d.publisher == nil {
				continue
			}
			if err := d.publisher.Publish(ctx, event); err != nil {
				d.logger.Error("failed to publish event",
					"event_type", string(event.Type),
					"job_id", event.JobID.String(),
					"error", err,
				)
			}
		}
	}
}
