package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
)

type DeleteOwnApplicationCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewDeleteOwnApplicationCommandHandler(uowFactory UoWFactory, clock Clock) DeleteOwnApplicationCommandHandler {
	return DeleteOwnApplicationCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle removes the offer if it belongs to the driver and is Superseded,
// Rejected or Accepted. The delete is conditional on that status.
func (h DeleteOwnApplicationCommandHandler) Handle(ctx context.Context, cmd DeleteOwnApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	offer, err := repo.GetByOfferID(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	if err = offer.ValidateOwnDeletion(cmd.DriverID()); err != nil {
		return err
	}
	offer.MarkDeleted(h.clock())

	deleted, err := repo.DeleteOfferIfStatus(ctx, offer, job.TerminalOfferStatuses()...)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewObjectNotFoundError("offer", cmd.OfferID().String())
	}

	return uow.Commit(ctx)
}
