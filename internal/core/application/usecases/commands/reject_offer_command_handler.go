package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RejectOfferCommandHandler declines an offer by deleting it while it is still
// live. The Original stays Pending.
type RejectOfferCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewRejectOfferCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

// Handle reports whether a live offer was removed. An offer that is gone or
// already settled yields false without an error.
func (h RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	by, err := resolveActor(ctx, h.users, cmd.ActorID())
	if err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	offer, err := repo.GetByOfferID(ctx, cmd.OfferID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !offer.Type().IsOffer() {
		return false, nil
	}
	if err = offer.ValidateRespondent(by); err != nil {
		return false, err
	}
	if !offer.IsLiveOffer() {
		return false, nil
	}

	if err = offer.Reject(h.clock()); err != nil {
		return false, err
	}

	deleted, err := repo.DeleteOfferIfStatus(ctx, offer, job.PendingOfferStatuses()...)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
