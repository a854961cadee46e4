package commands

import (
	"context"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

func resolveActor(ctx context.Context, users ports.UserDirectory, id kernel.UUID) (actor.Actor, error) {
	a, err := users.Get(ctx, id)
	if err != nil {
		return actor.Actor{}, err
	}
	if err := a.Validate(); err != nil {
		return actor.Actor{}, err
	}
	return a, nil
}

// resolveDriver loads the acting user and requires the Driver role.
func resolveDriver(ctx context.Context, users ports.UserDirectory, id kernel.UUID, action string) (actor.Actor, error) {
	a, err := resolveActor(ctx, users, id)
	if err != nil {
		return actor.Actor{}, err
	}
	if !a.HasRole(actor.Driver) {
		return actor.Actor{}, errs.NewUnauthorizedError(action, job.ErrDriverRoleRequired)
	}
	return a, nil
}
