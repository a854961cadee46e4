package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AcceptOfferCommandHandler is the conflict resolution point between
// competing offers of one Original.
//
// Steps:
//  1. load the offer by its copied_job_id
//  2. require a link to its Original
//  3. assign the Original with one conditional write on
//     {type=Original, status=Pending, assigned_driver_id IS NULL}; a miss is
//     a Conflict and nothing else is written
//  4. mark the offer Accepted, conditional on it still being live; on a miss
//     the Original is released back to its previous state with a write
//     conditional on it still being held by the offer's driver
//  5. after commit, supersede the live siblings in a separate unit of work
//
// A deleted Original is reported as Conflict, like any other failed match on
// step 3. A Superseded offer already lost to a sibling and is reported as Conflict.
// Step 5 is best effort: a failure is logged and the accepted offer stands.
// Siblings it missed fail step 3 with Conflict and are retired by the
// reconciliation sweep.
type AcceptOfferCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
	logger     *slog.Logger
}

func NewAcceptOfferCommandHandler(
	uowFactory UoWFactory,
	users ports.UserDirectory,
	clock Clock,
	logger *slog.Logger,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		clock:      clock,
		logger:     logger.With("component", "accept-offer"),
	}
}

// Handle returns the updated Original.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by, err := resolveActor(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	original, offer, err := h.assign(ctx, cmd, by)
	if err != nil {
		return nil, err
	}

	h.supersedeSiblings(ctx, offer)
	return original, nil
}

func (h AcceptOfferCommandHandler) assign(ctx context.Context, cmd AcceptOfferCommand, by actor.Actor) (*job.Job, *job.Job, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	offer, err := repo.GetByOfferID(ctx, cmd.OfferID())
	if err != nil {
		return nil, nil, err
	}
	if !offer.Type().IsOffer() {
		return nil, nil, errs.NewObjectNotFoundError("offer", cmd.OfferID().String())
	}
	if offer.OriginalJobID() == nil {
		return nil, nil, errs.NewInvalidStateError("offer", job.ErrOfferHasNoOriginal)
	}
	if err = offer.ValidateRespondent(by); err != nil {
		return nil, nil, err
	}
	if offer.Status() == job.Superseded {
		return nil, nil, errs.NewConflictErrorWithCause("job", offer.OriginalJobID().String(), job.ErrOfferIsNotPending)
	}
	if !offer.IsLiveOffer() {
		return nil, nil, errs.NewInvalidStateError("offer", job.ErrOfferIsNotPending)
	}

	original, err := repo.Get(ctx, *offer.OriginalJobID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, errs.NewConflictErrorWithCause("job", offer.OriginalJobID().String(), err)
		}
		return nil, nil, err
	}
	previous, err := job.RestoreJob(original.Snapshot())
	if err != nil {
		return nil, nil, err
	}

	now := h.clock()
	if err = original.AssignFromOffer(offer, now); err != nil {
		return nil, nil, err
	}
	if err = repo.AssignIfUnassigned(ctx, original, false); err != nil {
		return nil, nil, err
	}

	read := offer.Status()
	if err = offer.Accept(now); err != nil {
		return nil, nil, err
	}
	if err = repo.UpdateIfStatus(ctx, offer, read); err != nil {
		h.releaseOriginal(ctx, repo, previous, original)
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return original, offer, nil
}

// releaseOriginal undoes step 3 after step 4 missed. Stores without
// transactions have already made the assignment visible.
func (h AcceptOfferCommandHandler) releaseOriginal(ctx context.Context, repo ports.JobRepository, previous, assigned *job.Job) {
	log := h.logger.With("original_job_id", previous.ID().String())

	released, err := repo.ReleaseAssignment(context.WithoutCancel(ctx), previous, *assigned.Assignment().DriverID)
	if err != nil {
		log.Error("failed to release assignment of original", "error", err)
		return
	}
	if !released {
		log.Warn("original no longer held by the offer's driver")
	}
}

func (h AcceptOfferCommandHandler) supersedeSiblings(ctx context.Context, winner *job.Job) {
	log := h.logger.With("offer_id", winner.OfferID().String(), "original_job_id", winner.OriginalJobID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Error("failed to supersede sibling offers", "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	count, err := uow.JobRepository().SupersedeSiblings(ctx, *winner.OriginalJobID(), winner.OfferID())
	if err != nil {
		log.Error("failed to supersede sibling offers", "error", err)
		return
	}
	if err = uow.Commit(ctx); err != nil {
		log.Error("failed to supersede sibling offers", "error", err)
		return
	}

	log.Info("offer accepted", "superseded", count)
}
