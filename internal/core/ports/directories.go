package ports

import (
	"context"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// UserDirectory resolves user accounts. Missing users report NotFound.
type UserDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (actor.Actor, error)
}

// VehicleDirectory resolves registered vehicles into the snapshot an offer
// freezes. Missing vehicles report NotFound.
type VehicleDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (job.VehicleSnapshot, error)
}
