package commands

import (
	"context"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateJobCommandHandler creates Originals. The creator must be a dispatcher
// or a company; a dispatcher's company context is captured on the job.
type CreateJobCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewCreateJobCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) CreateJobCommandHandler {
	return CreateJobCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	creator, err := resolveActor(ctx, h.users, cmd.CreatorID())
	if err != nil {
		return nil, err
	}
	if !creator.HasRole(actor.Dispatcher) && !creator.HasRole(actor.Company) {
		return nil, errs.NewUnauthorizedError("create job", job.ErrCreatorRoleRequired)
	}

	original, err := job.NewOriginal(cmd.JobID(), cmd.Details(), cmd.IsPublic(), job.OwnerFromActor(creator), h.clock())
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

	if err = uow.JobRepository().Add(ctx, original); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return original, nil
}
