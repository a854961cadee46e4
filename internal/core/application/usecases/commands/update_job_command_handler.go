package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
)

type UpdateJobCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewUpdateJobCommandHandler(uowFactory UoWFactory, clock Clock) UpdateJobCommandHandler {
	return UpdateJobCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle applies the patch. The write is conditional on the status read so a
// concurrent transition is not silently overwritten.
func (h UpdateJobCommandHandler) Handle(ctx context.Context, cmd UpdateJobCommand) (*job.Job, error) {
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
	if err = j.Update(cmd.Patch(), h.clock()); err != nil {
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
