package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand resolves an offer in favour of its driver.
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	offerID job.OfferID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOfferCommand(offerID string, actorID kernel.UUID) (AcceptOfferCommand, error) {
	id, idErr := job.OfferIDFromString(offerID)
	if err := errors.Join(idErr, actorID.Validate()); err != nil {
		return AcceptOfferCommand{}, err
	}
	return AcceptOfferCommand{offerID: id, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) OfferID() job.OfferID { return c.offerID }
func (c AcceptOfferCommand) ActorID() kernel.UUID { return c.actorID }
