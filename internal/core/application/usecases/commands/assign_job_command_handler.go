package commands

import (
	"context"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignJobCommandHandler lets any dispatcher assign any Pending Original.
// There is no ownership check on the dispatcher.
type AssignJobCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewAssignJobCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) AssignJobCommandHandler {
	return AssignJobCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

func (h AssignJobCommandHandler) Handle(ctx context.Context, cmd AssignJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	dispatcher, err := resolveActor(ctx, h.users, cmd.DispatcherID())
	if err != nil {
		return nil, err
	}
	if !dispatcher.HasRole(actor.Dispatcher) {
		return nil, errs.NewUnauthorizedError("assign job", job.ErrDispatcherRoleRequired)
	}

	driver, err := resolveActor(ctx, h.users, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if !driver.HasRole(actor.Driver) {
		return nil, errs.NewInvalidStateError("driver", job.ErrDriverRoleRequired)
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

	if err = j.Assign(driver.ID(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.AssignIfUnassigned(ctx, j, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
