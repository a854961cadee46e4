package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateJobCommandIsNotConstructed = errors.New(
		"UpdateJobCommand must be created via NewUpdateJobCommand constructor",
	)
	ErrPatchIsEmpty = errors.New("patch changes nothing")
)

// UpdateJobCommand merges descriptive fields and visibility into an
// Original. Status and assignment are not part of the patch.
type UpdateJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	patch job.Patch

	guard guard.ConstructorGuard
}

func NewUpdateJobCommand(jobID kernel.UUID, patch job.Patch) (UpdateJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return UpdateJobCommand{}, err
	}
	if patch.IsEmpty() {
		return UpdateJobCommand{}, ErrPatchIsEmpty
	}
	return UpdateJobCommand{jobID: jobID, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateJobCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobCommandIsNotConstructed)
}

func (c UpdateJobCommand) JobID() kernel.UUID { return c.jobID }
func (c UpdateJobCommand) Patch() job.Patch   { return c.patch }
