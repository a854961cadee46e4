package services

import (
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Candidate is the driver and vehicle an offer is made for.
type Candidate struct {
	Driver      actor.Actor
	VehicleID   kernel.UUID
	Vehicle     job.VehicleSnapshot
	DriverName  string
	DriverPhone string
}

func (c Candidate) assignment() job.Assignment {
	driverID := c.Driver.ID()
	vehicleID := c.VehicleID
	return job.Assignment{
		DriverID:    &driverID,
		DriverName:  c.DriverName,
		DriverPhone: c.DriverPhone,
		VehicleID:   &vehicleID,
		Vehicle:     c.Vehicle,
	}
}

func (c Candidate) validate() error {
	if err := c.Driver.Validate(); err != nil {
		return err
	}
	if err := c.VehicleID.Validate(); err != nil {
		return err
	}
	if c.Vehicle.IsZero() {
		return errs.NewValueIsRequiredError("vehicle")
	}
	return nil
}

// OfferFactory fans an Original out into offers. Offer ids embed the creation
// instant, so the clock is injectable for tests.
//
// Example:
//
//	factory := services.NewOfferFactory(nil)
//	offer, err := factory.CopyToDriver(original, dispatcher, candidate)
type OfferFactory struct {
	now func() time.Time
}

// NewOfferFactory returns a factory using now as its clock, or the UTC wall
// clock when now is nil.
func NewOfferFactory(now func() time.Time) OfferFactory {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return OfferFactory{now: now}
}

// CopyToDriver builds a Copied offer of original for the candidate. Only the
// original's creator or owning company may push offers, and only to drivers.
func (f OfferFactory) CopyToDriver(original *job.Job, by actor.Actor, c Candidate) (*job.Job, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if !original.Owner().IsOwnedBy(by) {
		return nil, errs.NewUnauthorizedError("copy job", job.ErrNotJobOwner)
	}
	if !c.Driver.HasRole(actor.Driver) {
		return nil, errs.NewInvalidStateError("driver", job.ErrDriverRoleRequired)
	}

	return job.NewCopiedOffer(original, kernel.NewUUID(), c.assignment(), f.now())
}

// Apply builds an Application of the candidate driver for a public original.
// existing are the driver's live applications for the same original; a
// driver may hold only one.
func (f OfferFactory) Apply(original *job.Job, c Candidate, existing []*job.Job) (*job.Job, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if !c.Driver.HasRole(actor.Driver) {
		return nil, errs.NewUnauthorizedError("apply for job", job.ErrDriverRoleRequired)
	}

	driverID := c.Driver.ID()
	for _, e := range existing {
		if e.IsLiveOffer() && e.Type() == job.Application && driverID.SameAs(e.Assignment().DriverID) {
			return nil, errs.NewInvalidStateError("job", job.ErrAlreadyApplied)
		}
	}

	return job.NewApplication(original, kernel.NewUUID(), c.assignment(), f.now())
}
