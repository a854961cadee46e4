package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

type RejectOfferCommand struct { //nolint:recvcheck //using for validation
	offerID job.OfferID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectOfferCommand(offerID string, actorID kernel.UUID) (RejectOfferCommand, error) {
	id, idErr := job.OfferIDFromString(offerID)
	if err := errors.Join(idErr, actorID.Validate()); err != nil {
		return RejectOfferCommand{}, err
	}
	return RejectOfferCommand{offerID: id, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

func (c RejectOfferCommand) OfferID() job.OfferID { return c.offerID }
func (c RejectOfferCommand) ActorID() kernel.UUID { return c.actorID }
