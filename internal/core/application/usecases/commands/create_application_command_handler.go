package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateApplicationCommandHandler records a driver's application for a
// public Original. A driver holds at most one live application per Original.
type CreateApplicationCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserDirectory
	vehicles   ports.VehicleDirectory
	factory    services.OfferFactory
}

func NewCreateApplicationCommandHandler(
	uowFactory UoWFactory,
	users ports.UserDirectory,
	vehicles ports.VehicleDirectory,
	factory services.OfferFactory,
) CreateApplicationCommandHandler {
	return CreateApplicationCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		vehicles:   vehicles,
		factory:    factory,
	}
}

func (h CreateApplicationCommandHandler) Handle(ctx context.Context, cmd CreateApplicationCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
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

	existing, err := repo.ListLiveApplications(ctx, original.ID(), driver.ID())
	if err != nil {
		return nil, err
	}

	offer, err := h.factory.Apply(original, services.Candidate{
		Driver:      driver,
		VehicleID:   cmd.VehicleID(),
		Vehicle:     vehicle,
		DriverName:  cmd.DriverName(),
		DriverPhone: cmd.DriverPhone(),
	}, existing)
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
