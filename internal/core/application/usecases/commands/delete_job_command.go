package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteJobCommandIsNotConstructed = errors.New(
	"DeleteJobCommand must be created via NewDeleteJobCommand constructor",
)

type DeleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteJobCommand(jobID kernel.UUID, actorID kernel.UUID) (DeleteJobCommand, error) {
	if err := errors.Join(jobID.Validate(), actorID.Validate()); err != nil {
		return DeleteJobCommand{}, err
	}
	return DeleteJobCommand{jobID: jobID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteJobCommand) Validate() error {
	return c.guard.Validate(ErrDeleteJobCommandIsNotConstructed)
}

func (c DeleteJobCommand) JobID() kernel.UUID   { return c.jobID }
func (c DeleteJobCommand) ActorID() kernel.UUID { return c.actorID }
