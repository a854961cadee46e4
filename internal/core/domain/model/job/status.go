package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a job. Originals use Pending, Assigned,
// Completed and Cancelled; offers use PendingAcceptance or ApplicationRequested
// while live and end in Accepted, Rejected or Superseded.
//
// Statuses are persisted as their integer value and rendered with String.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	Pending
	Assigned
	Completed
	Cancelled

	PendingAcceptance
	Accepted
	Rejected
	Superseded
	ApplicationRequested
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		Pending:              "pending",
		Assigned:             "assigned",
		Completed:            "completed",
		Cancelled:            "cancelled",
		PendingAcceptance:    "pending_acceptance",
		Accepted:             "accepted",
		Rejected:             "rejected",
		Superseded:           "superseded",
		ApplicationRequested: "application_requested",
	}
}

// StatusFromString parses the API name of a status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves the status.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, Cancelled, Accepted, Rejected, Superseded:
		return true
	default:
		return false
	}
}

// IsPendingOffer reports whether an offer in this status can still be
// accepted, rejected or superseded.
func (s Status) IsPendingOffer() bool {
	return s == PendingAcceptance || s == ApplicationRequested
}

// IsValidFor reports whether the status belongs to the given job type.
func (s Status) IsValidFor(t Type) bool {
	switch t {
	case Original:
		return s == Pending || s == Assigned || s == Completed || s == Cancelled
	case Copied:
		return s == PendingAcceptance || s == Accepted || s == Rejected || s == Superseded
	case Application:
		return s == ApplicationRequested || s == Accepted || s == Rejected || s == Superseded
	default:
		return false
	}
}

// PendingOfferStatuses lists the statuses of live offers.
func PendingOfferStatuses() []Status {
	return []Status{PendingAcceptance, ApplicationRequested}
}

// TerminalOfferStatuses lists the statuses in which an offer may be deleted by
// its driver.
func TerminalOfferStatuses() []Status {
	return []Status{Accepted, Rejected, Superseded}
}

// DeletableOriginalStatuses lists the statuses in which an original may be
// removed by its owner.
func DeletableOriginalStatuses() []Status {
	return []Status{Pending, Assigned, Cancelled}
}

// Assign moves a Pending original to Assigned. Claim and dispatcher
// assignment share this transition.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("job", ErrJobIsNotPending)
	}
	return Assigned, nil
}

// Complete moves a non-terminal original to Completed.
func (s Status) Complete() (Status, error) {
	if err := s.validateOpenOriginal(); err != nil {
		return Unknown, err
	}
	return Completed, nil
}

// Cancel moves a non-terminal original to Cancelled. Cancelling straight from
// Pending is allowed.
func (s Status) Cancel() (Status, error) {
	if err := s.validateOpenOriginal(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

// Accept moves a live offer to Accepted.
func (s Status) Accept() (Status, error) {
	if !s.IsPendingOffer() {
		return Unknown, errs.NewInvalidStateError("offer", ErrOfferIsNotPending)
	}
	return Accepted, nil
}

// Reject moves a live offer to Rejected.
func (s Status) Reject() (Status, error) {
	if !s.IsPendingOffer() {
		return Unknown, errs.NewInvalidStateError("offer", ErrOfferIsNotPending)
	}
	return Rejected, nil
}

// Supersede moves a live offer to Superseded once a sibling won.
func (s Status) Supersede() (Status, error) {
	if !s.IsPendingOffer() {
		return Unknown, errs.NewInvalidStateError("offer", ErrOfferIsNotPending)
	}
	return Superseded, nil
}

func (s Status) validateOpenOriginal() error {
	switch s {
	case Pending, Assigned:
		return nil
	case Completed:
		return errs.NewInvalidStateError("job", ErrJobIsAlreadyCompleted)
	case Cancelled:
		return errs.NewInvalidStateError("job", ErrJobIsAlreadyCancelled)
	default:
		return errs.NewInvalidStateError("job", fmt.Errorf("%w: %s", ErrTransitionNotAllowed, s))
	}
}

// ResponseStatus records how the driver side of an offer was resolved.
type ResponseStatus string

const (
	NoResponse         ResponseStatus = ""
	ResponseAccepted   ResponseStatus = "accepted"
	ResponseSuperseded ResponseStatus = "superseded"
)

func (r ResponseStatus) Validate() error {
	switch r {
	case NoResponse, ResponseAccepted, ResponseSuperseded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("driver_response_status", fmt.Errorf("%q is not a valid response status", string(r)))
	}
}
