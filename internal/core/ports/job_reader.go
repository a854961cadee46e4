package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobFilter narrows a job listing. Nil fields do not filter.
type JobFilter struct {
	AssignedDriverID *kernel.UUID
	CreatedByID      *kernel.UUID
	CompanyID        *kernel.UUID
	OriginalJobID    *kernel.UUID
	IsPublic         *bool
	Status           *job.Status
	Type             *job.Type
	Limit            int
	Offset           int
}

// DefaultListLimit caps listings that do not ask for a limit.
const DefaultListLimit = 100

// JobReader is the read side of the job store. It returns flat snapshots
// ordered newest first and never tracks aggregates.
type JobReader interface {
	Find(ctx context.Context, filter JobFilter) ([]job.Snapshot, error)
	FindByID(ctx context.Context, id kernel.UUID) (job.Snapshot, error)
}
