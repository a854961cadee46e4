package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// CancelJobCommandHandler withdraws an Original on behalf of its creator or
// owning company.
type CancelJobCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewCancelJobCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) CancelJobCommandHandler {
	return CancelJobCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by, err := resolveActor(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
	if err = j.Cancel(by, h.clock()); err != nil {
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
