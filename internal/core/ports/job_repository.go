// Package ports defines the contracts between the dispatch core and its
// adapters: the job store, the read-side projection, the directories of
// users and vehicles, and the event sink.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository persists Job aggregates. Every conditional method is a single
// atomic statement in the underlying store; they are the only coordination
// point between concurrent commands.
type JobRepository interface {
	// Add persists a new job. A duplicate offer id reports Conflict.
	Add(ctx context.Context, aggregate *job.Job) error

	// Get returns the job with the given id or NotFound.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetByOfferID returns the offer with the given copied_job_id or NotFound.
	GetByOfferID(ctx context.Context, offerID job.OfferID) (*job.Job, error)

	// Update writes the aggregate unconditionally. NotFound if it vanished.
	Update(ctx context.Context, aggregate *job.Job) error

	// UpdateIfStatus writes the aggregate only if the stored status still
	// equals expected. Conflict otherwise.
	UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) error

	// AssignIfUnassigned writes the assignment of an Original only if the
	// stored row is still an Original in Pending with no assigned driver (and
	// public, when requirePublic is set). Conflict when nothing matched.
	AssignIfUnassigned(ctx context.Context, aggregate *job.Job, requirePublic bool) error

	// ReleaseAssignment writes previous, the original as it was before an
	// assignment, only if the stored row is still an Assigned original held
	// by driverID. It reports whether the row was restored.
	ReleaseAssignment(ctx context.Context, previous *job.Job, driverID kernel.UUID) (bool, error)

	// SupersedeSiblings marks every live offer of the original except winner
	// as Superseded and returns how many were changed.
	SupersedeSiblings(ctx context.Context, originalID kernel.UUID, winner job.OfferID) (int64, error)

	// DeleteOfferIfStatus removes the offer only while its stored status is
	// one of statuses. It reports whether a row was removed.
	DeleteOfferIfStatus(ctx context.Context, offer *job.Job, statuses ...job.Status) (bool, error)

	// Delete removes the job. With no statuses the delete is unconditional and
	// reports NotFound if the job did not exist. Otherwise the stored status
	// must be one of statuses and a miss reports Conflict.
	Delete(ctx context.Context, aggregate *job.Job, statuses ...job.Status) error

	// ListLiveApplications returns the driver's pending applications for the
	// original.
	ListLiveApplications(ctx context.Context, originalID kernel.UUID, driverID kernel.UUID) ([]*job.Job, error)

	// SupersedeStaleOffers retires live offers whose original is gone or no
	// longer Pending and returns how many were changed.
	SupersedeStaleOffers(ctx context.Context) (int64, error)
}
