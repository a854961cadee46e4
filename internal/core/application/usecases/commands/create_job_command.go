package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand registers a new Original work order.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(kernel.NewUUID(), dispatcherID, details, true)
//	if err != nil {
//	    return fmt.Errorf("invalid job: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	creatorID kernel.UUID
	details   job.TripDetails
	isPublic  bool

	guard guard.ConstructorGuard
}

func NewCreateJobCommand(
	jobID kernel.UUID,
	creatorID kernel.UUID,
	details job.TripDetails,
	isPublic bool,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		isPublic: isPublic,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setCreatorID(creatorID),
		cmd.setDetails(details),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) JobID() kernel.UUID       { return c.jobID }
func (c CreateJobCommand) CreatorID() kernel.UUID   { return c.creatorID }
func (c CreateJobCommand) Details() job.TripDetails { return c.details }
func (c CreateJobCommand) IsPublic() bool           { return c.isPublic }

func (c *CreateJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *CreateJobCommand) setCreatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.creatorID = id
	return nil
}

func (c *CreateJobCommand) setDetails(details job.TripDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}
