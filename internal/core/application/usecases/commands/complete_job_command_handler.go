package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
)

// CompleteJobCommandHandler finishes a job on behalf of its assigned driver.
// The driver id is compared against the stored assignment, so no directory
// lookup is needed.
type CompleteJobCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCompleteJobCommandHandler(uowFactory UoWFactory, clock Clock) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	j, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	read := j.Status()
	if err = j.Complete(cmd.DriverID(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.UpdateIfStatus(ctx, j, read); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
