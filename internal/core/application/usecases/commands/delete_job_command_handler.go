package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// DeleteJobCommandHandler removes an Original that is not completed. The
// delete is conditional on the status, so a racing completion wins and the
// delete reports Conflict. Offers left behind are retired by the
// reconciliation sweep.
type DeleteJobCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewDeleteJobCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) DeleteJobCommandHandler {
	return DeleteJobCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

func (h DeleteJobCommandHandler) Handle(ctx context.Context, cmd DeleteJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	by, err := resolveActor(ctx, h.users, cmd.ActorID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	j, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = j.ValidateDeletion(by); err != nil {
		return err
	}
	j.MarkDeleted(h.clock())

	if err = repo.Delete(ctx, j, job.DeletableOriginalStatuses()...); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
