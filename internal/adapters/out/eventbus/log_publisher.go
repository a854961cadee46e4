package eventbus

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/job"
)

// LogPublisher writes events to the structured log. It stands in when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, event job.Event) error {
	attrs := []any{
		"event_type", string(event.Type),
		"job_id", event.JobID.String(),
		"job_type", event.JobType.String(),
		"status", event.Status.String(),
	}
	if event.OfferID != "" {
		attrs = append(attrs, "offer_id", event.OfferID)
	}
	if event.DriverID != nil {
		attrs = append(attrs, "driver_id", event.DriverID.String())
	}
	p.logger.InfoContext(ctx, "job event", attrs...)
	return nil
}
