package job

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrOfferIDIsNotConstructed = errors.New("OfferID must be created via a constructor")

// OfferID is the external identifier of an offer (copied_job_id). It embeds
// the original id so an operator can tell where an offer came from.
type OfferID struct {
	value string
	guard guard.ConstructorGuard
}

// NewCopiedOfferID mints "{original}-COPY-{unix nanos}".
func NewCopiedOfferID(originalID kernel.UUID, at time.Time) (OfferID, error) {
	if err := originalID.Validate(); err != nil {
		return OfferID{}, err
	}
	return OfferID{
		value: fmt.Sprintf("%s-COPY-%d", originalID, at.UnixNano()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewApplicationOfferID mints "{original}-APP-{driver}-{unix nanos}".
func NewApplicationOfferID(originalID kernel.UUID, driverID kernel.UUID, at time.Time) (OfferID, error) {
	if err := errors.Join(originalID.Validate(), driverID.Validate()); err != nil {
		return OfferID{}, err
	}
	return OfferID{
		value: fmt.Sprintf("%s-APP-%s-%d", originalID, driverID, at.UnixNano()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// OfferIDFromString wraps an id received from a caller or a store.
func OfferIDFromString(s string) (OfferID, error) {
	if s == "" {
		return OfferID{}, errs.NewValueIsRequiredError("copied_job_id")
	}
	return OfferID{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (o OfferID) String() string {
	return o.value
}

func (o OfferID) IsZero() bool {
	return o.value == ""
}

func (o OfferID) Validate() error {
	return o.guard.Validate(ErrOfferIDIsNotConstructed)
}
