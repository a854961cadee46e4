package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

// TripDetails is the descriptive payload of a job. The engine never
// interprets it beyond validation; offers carry a verbatim copy.
type TripDetails struct {
	Title          string
	Description    string
	PickupAddress  string
	DropoffAddress string
	PickupTime     *time.Time
	PassengerName  string
	PassengerPhone string
	PassengerCount int
	Price          float64
	Notes          string
}

func (d TripDetails) Validate() error {
	var errList []error
	if strings.TrimSpace(d.Title) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("title"))
	}
	if d.PassengerCount < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"passenger_count", fmt.Errorf("%d is negative", d.PassengerCount)))
	}
	if d.Price < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%v is negative", d.Price)))
	}
	return errors.Join(errList...)
}

// Patch is a partial update of the descriptive fields. Nil fields are left
// untouched. Status and assignment are deliberately absent: they only change
// through dedicated transitions.
type Patch struct {
	Title          *string
	Description    *string
	PickupAddress  *string
	DropoffAddress *string
	PickupTime     *time.Time
	PassengerName  *string
	PassengerPhone *string
	PassengerCount *int
	Price          *float64
	Notes          *string
	IsPublic       *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

func (p Patch) applyTo(d TripDetails) TripDetails {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.PickupAddress != nil {
		d.PickupAddress = *p.PickupAddress
	}
	if p.DropoffAddress != nil {
		d.DropoffAddress = *p.DropoffAddress
	}
	if p.PickupTime != nil {
		t := *p.PickupTime
		d.PickupTime = &t
	}
	if p.PassengerName != nil {
		d.PassengerName = *p.PassengerName
	}
	if p.PassengerPhone != nil {
		d.PassengerPhone = *p.PassengerPhone
	}
	if p.PassengerCount != nil {
		d.PassengerCount = *p.PassengerCount
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}
