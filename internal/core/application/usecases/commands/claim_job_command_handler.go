package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// ClaimJobCommandHandler assigns a public job to the claiming driver.
//
// The in-memory checks give precise reasons (not pending, not public, already
// assigned); the conditional write is what actually prevents a racing claim,
// assignment or offer acceptance from double-assigning the job.
type ClaimJobCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	clock      Clock
}

func NewClaimJobCommandHandler(uowFactory UoWFactory, users ports.UserDirectory, clock Clock) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{uowFactory: uowFactory, users: users, clock: clock}
}

func (h ClaimJobCommandHandler) Handle(ctx context.Context, cmd ClaimJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	driver, err := resolveDriver(ctx, h.users, cmd.DriverID(), "claim job")
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

	if err = j.Claim(driver.ID(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.AssignIfUnassigned(ctx, j, true); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
