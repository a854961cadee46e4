package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
)

// EventPublisher delivers job events to interested parties. Publishing
// happens after commit and is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event job.Event) error
}
