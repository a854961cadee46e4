package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateCopiedOfferCommandHandler fans an Original out to a driver. The
// Original itself is not modified, so any number of offers can coexist.
type CreateCopiedOfferCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	vehicles   ports.VehicleDirectory
	factory    services.OfferFactory
}

func NewCreateCopiedOfferCommandHandler(
	uowFactory UoWFactory,
	users ports.UserDirectory,
	vehicles ports.VehicleDirectory,
	factory services.OfferFactory,
) CreateCopiedOfferCommandHandler {
	return CreateCopiedOfferCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		vehicles:   vehicles,
		factory:    factory,
	}
}

func (h CreateCopiedOfferCommandHandler) Handle(ctx context.Context, cmd CreateCopiedOfferCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by, err := resolveActor(ctx, h.users, cmd.ActorID())
	if err != nil {
		return nil, err
	}
	driver, err := resolveActor(ctx, h.users, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	vehicle, err := h.vehicles.Get(ctx, cmd.VehicleID())
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
	original, err := repo.Get(ctx, cmd.OriginalID())
	if err != nil {
		return nil, err
	}

	offer, err := h.factory.CopyToDriver(original, by, services.Candidate{
		Driver:      driver,
		VehicleID:   cmd.VehicleID(),
		Vehicle:     vehicle,
		DriverName:  cmd.DriverName(),
		DriverPhone: cmd.DriverPhone(),
	})
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, offer); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return offer, nil
}
