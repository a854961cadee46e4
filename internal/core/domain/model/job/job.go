package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job was not built through one
	// of the package constructors.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewOriginal, an offer constructor or RestoreJob")
)

// Job is the aggregate root for both Originals and offers.
//
// Invariants kept by the aggregate:
//   - an Original has no original job id and no offer id
//   - an offer has both, and its status belongs to its type
//   - an Original is assigned only while Pending and unassigned
//   - terminal statuses are never left
//
// The cross-aggregate invariants (one accepted offer per Original, siblings
// superseded) are enforced by the store's conditional writes.
type Job struct {
	id             kernel.UUID
	jobType        Type
	originalJobID  *kernel.UUID
	offerID        OfferID
	status         Status
	isPublic       bool
	assignment     Assignment
	owner          Owner
	responseStatus ResponseStatus
	details        TripDetails
	createdAt      time.Time
	updatedAt      time.Time

	events        []Event
	isConstructed bool
}

// Snapshot is the flat persistence form of a Job. Adapters map their DTOs to
// and from it; RestoreJob validates it before handing back an aggregate.
type Snapshot struct {
	ID             kernel.UUID
	Type           Type
	OriginalJobID  *kernel.UUID
	OfferID        string
	Status         Status
	IsPublic       bool
	Assignment     Assignment
	Owner          Owner
	ResponseStatus ResponseStatus
	Details        TripDetails
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOriginal creates a Pending Original work order.
//
// The owner must name the creator; company context is optional.
func NewOriginal(id kernel.UUID, details TripDetails, isPublic bool, owner Owner, now time.Time) (*Job, error) {
	var ownerErr error
	if owner.CreatedByID == nil {
		ownerErr = errs.NewValueIsRequiredError("created_by_dispatcher_id")
	}
	if err := errors.Join(id.Validate(), details.Validate(), ownerErr); err != nil {
		return nil, err
	}

	j := &Job{
		id:            id,
		jobType:       Original,
		status:        Pending,
		isPublic:      isPublic,
		owner:         owner,
		details:       details,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	j.record(EventJobCreated, now)
	return j, nil
}

// NewCopiedOffer derives an offer addressed to the driver named in the
// assignment. The original must be Pending and is left untouched.
func NewCopiedOffer(original *Job, id kernel.UUID, assignment Assignment, now time.Time) (*Job, error) {
	if err := original.ensureOfferable(); err != nil {
		return nil, err
	}
	if assignment.DriverID == nil {
		return nil, errs.NewValueIsRequiredError("assigned_driver_id")
	}
	offerID, err := NewCopiedOfferID(original.id, now)
	if err != nil {
		return nil, err
	}
	return newOffer(original, id, Copied, PendingAcceptance, offerID, assignment, EventOfferCreated, now)
}

// NewApplication derives an offer in which the driver named in the assignment
// asks to take a public Pending original.
func NewApplication(original *Job, id kernel.UUID, assignment Assignment, now time.Time) (*Job, error) {
	if err := original.ensureOfferable(); err != nil {
		return nil, err
	}
	if !original.isPublic {
		return nil, errs.NewInvalidStateError("job", ErrJobIsNotPublic)
	}
	if assignment.DriverID == nil {
		return nil, errs.NewValueIsRequiredError("assigned_driver_id")
	}
	offerID, err := NewApplicationOfferID(original.id, *assignment.DriverID, now)
	if err != nil {
		return nil, err
	}
	return newOffer(original, id, Application, ApplicationRequested, offerID, assignment, EventApplicationFiled, now)
}

func newOffer(
	original *Job,
	id kernel.UUID,
	jobType Type,
	status Status,
	offerID OfferID,
	assignment Assignment,
	event EventType,
	now time.Time,
) (*Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	originalID := original.id
	j := &Job{
		id:            id,
		jobType:       jobType,
		originalJobID: &originalID,
		offerID:       offerID,
		status:        status,
		isPublic:      false,
		assignment:    assignment.clone(),
		owner:         original.owner,
		details:       original.details,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	j.record(event, now)
	return j, nil
}

// RestoreJob rebuilds a Job read from a store.
func RestoreJob(s Snapshot) (*Job, error) {
	if err := errors.Join(s.ID.Validate(), s.Type.Validate(), s.Status.Validate(), s.ResponseStatus.Validate()); err != nil {
		return nil, err
	}
	if !s.Status.IsValidFor(s.Type) {
		return nil, errs.NewInvalidStateError("job", ErrTransitionNotAllowed)
	}

	var offerID OfferID
	if s.Type.IsOffer() {
		if s.OriginalJobID == nil {
			return nil, errs.NewInvalidStateError("offer", ErrOfferHasNoOriginal)
		}
		id, err := OfferIDFromString(s.OfferID)
		if err != nil {
			return nil, err
		}
		offerID = id
	} else if s.OriginalJobID != nil || s.OfferID != "" {
		return nil, errs.NewInvalidStateError("job", ErrJobIsNotOffer)
	}

	return &Job{
		id:             s.ID,
		jobType:        s.Type,
		originalJobID:  s.OriginalJobID,
		offerID:        offerID,
		status:         s.Status,
		isPublic:       s.IsPublic,
		assignment:     s.Assignment.clone(),
		owner:          s.Owner,
		responseStatus: s.ResponseStatus,
		details:        s.Details,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		isConstructed:  true,
	}, nil
}

// Snapshot returns the persistence form of the job.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:             j.id,
		Type:           j.jobType,
		OriginalJobID:  j.originalJobID,
		OfferID:        j.offerID.String(),
		Status:         j.status,
		IsPublic:       j.isPublic,
		Assignment:     j.assignment.clone(),
		Owner:          j.owner,
		ResponseStatus: j.responseStatus,
		Details:        j.details,
		CreatedAt:      j.createdAt,
		UpdatedAt:      j.updatedAt,
	}
}

func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID                { return j.id }
func (j *Job) Type() Type                     { return j.jobType }
func (j *Job) OriginalJobID() *kernel.UUID    { return j.originalJobID }
func (j *Job) OfferID() OfferID               { return j.offerID }
func (j *Job) Status() Status                 { return j.status }
func (j *Job) IsPublic() bool                 { return j.isPublic }
func (j *Job) Assignment() Assignment         { return j.assignment.clone() }
func (j *Job) Owner() Owner                   { return j.owner }
func (j *Job) ResponseStatus() ResponseStatus { return j.responseStatus }
func (j *Job) Details() TripDetails           { return j.details }
func (j *Job) CreatedAt() time.Time           { return j.createdAt }
func (j *Job) UpdatedAt() time.Time           { return j.updatedAt }

// Claim lets a driver take a public Pending original directly.
func (j *Job) Claim(driverID kernel.UUID, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if j.status != Pending {
		return errs.NewInvalidStateError("job", ErrJobIsNotPending)
	}
	if !j.isPublic {
		return errs.NewInvalidStateError("job", ErrJobIsNotPublic)
	}
	return j.assignTo(DriverOnly(driverID), now)
}

// Assign puts a driver on a Pending original on behalf of a dispatcher.
// Visibility is irrelevant here.
func (j *Job) Assign(driverID kernel.UUID, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if j.status != Pending {
		return errs.NewInvalidStateError("job", ErrJobIsNotPending)
	}
	return j.assignTo(DriverOnly(driverID), now)
}

func (j *Job) assignTo(a Assignment, now time.Time) error {
	if err := a.DriverID.Validate(); err != nil {
		return err
	}
	if j.assignment.IsAssigned() {
		return errs.NewInvalidStateError("job", ErrJobIsAlreadyAssigned)
	}
	next, err := j.status.Assign()
	if err != nil {
		return err
	}
	j.status = next
	j.assignment = a.clone()
	j.touch(now)
	j.record(EventJobAssigned, now)
	return nil
}

// AssignFromOffer copies the winning offer's driver and vehicle onto the
// original and hides it from the public board. A non-Pending or already
// assigned original reports Conflict: another offer, claim or assignment got
// there first.
func (j *Job) AssignFromOffer(offer *Job, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if !offer.jobType.IsOffer() {
		return errs.NewInvalidStateError("offer", ErrJobIsNotOffer)
	}
	if !j.id.SameAs(offer.originalJobID) {
		return errs.NewInvalidStateError("offer", ErrOfferHasNoOriginal)
	}
	if j.status != Pending || j.assignment.IsAssigned() {
		return errs.NewConflictError("job", j.id)
	}

	j.status = Assigned
	j.isPublic = false
	j.assignment = offer.assignment.clone()
	j.touch(now)
	j.record(EventJobAssigned, now)
	return nil
}

// Complete finishes an original. Only its assigned driver may do so.
func (j *Job) Complete(driverID kernel.UUID, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if !driverID.SameAs(j.assignment.DriverID) {
		return errs.NewUnauthorizedError("complete job", ErrNotAssignedDriver)
	}
	next, err := j.status.Complete()
	if err != nil {
		return err
	}
	j.status = next
	j.touch(now)
	j.record(EventJobCompleted, now)
	return nil
}

// Cancel withdraws an original. Only its creator or owning company may do so.
func (j *Job) Cancel(by actor.Actor, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if !j.owner.IsOwnedBy(by) {
		return errs.NewUnauthorizedError("cancel job", ErrNotJobOwner)
	}
	next, err := j.status.Cancel()
	if err != nil {
		return err
	}
	j.status = next
	j.touch(now)
	j.record(EventJobCancelled, now)
	return nil
}

// Update merges a patch into the descriptive fields of an original. Offers
// keep the payload they were created with.
func (j *Job) Update(patch Patch, now time.Time) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	details := patch.applyTo(j.details)
	if err := details.Validate(); err != nil {
		return err
	}
	j.details = details
	if patch.IsPublic != nil {
		j.isPublic = *patch.IsPublic
	}
	j.touch(now)
	j.record(EventJobUpdated, now)
	return nil
}

// ValidateDeletion checks that the actor may remove this original.
func (j *Job) ValidateDeletion(by actor.Actor) error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if !j.owner.IsOwnedBy(by) {
		return errs.NewUnauthorizedError("delete job", ErrNotJobOwner)
	}
	if j.status == Completed {
		return errs.NewInvalidStateError("job", ErrJobIsAlreadyCompleted)
	}
	return nil
}

// MarkDeleted records the removal of a job for downstream consumers.
func (j *Job) MarkDeleted(now time.Time) {
	if j.jobType.IsOffer() {
		j.record(EventOfferDeleted, now)
		return
	}
	j.record(EventJobDeleted, now)
}

// ValidateRespondent checks that the actor may accept or reject this offer.
// A Copied offer is answered by the driver it was sent to; an Application is
// answered by the party the driver applied to.
func (j *Job) ValidateRespondent(by actor.Actor) error {
	if err := j.ensureOffer(); err != nil {
		return err
	}
	switch j.jobType {
	case Copied:
		id := by.ID()
		if !id.SameAs(j.assignment.DriverID) {
			return errs.NewUnauthorizedError("respond to offer", ErrNotOfferDriver)
		}
	case Application:
		if !j.owner.IsOwnedBy(by) {
			return errs.NewUnauthorizedError("respond to offer", ErrNotJobOwner)
		}
	}
	return nil
}

// Accept marks the offer as the winner.
func (j *Job) Accept(now time.Time) error {
	if err := j.ensureOffer(); err != nil {
		return err
	}
	next, err := j.status.Accept()
	if err != nil {
		return err
	}
	j.status = next
	j.responseStatus = ResponseAccepted
	j.touch(now)
	j.record(EventOfferAccepted, now)
	return nil
}

// Reject marks the offer as declined. Stores delete rejected offers, but the
// transition is still validated and published.
func (j *Job) Reject(now time.Time) error {
	if err := j.ensureOffer(); err != nil {
		return err
	}
	next, err := j.status.Reject()
	if err != nil {
		return err
	}
	j.status = next
	j.touch(now)
	j.record(EventOfferRejected, now)
	return nil
}

// Supersede retires a live offer after a sibling was accepted.
func (j *Job) Supersede(now time.Time) error {
	if err := j.ensureOffer(); err != nil {
		return err
	}
	next, err := j.status.Supersede()
	if err != nil {
		return err
	}
	j.status = next
	j.responseStatus = ResponseSuperseded
	j.touch(now)
	return nil
}

// ValidateOwnDeletion checks that a driver may remove one of their offers.
// Only settled offers can be cleaned up; a live one must be answered first.
func (j *Job) ValidateOwnDeletion(driverID kernel.UUID) error {
	if err := j.ensureOffer(); err != nil {
		return err
	}
	if !driverID.SameAs(j.assignment.DriverID) {
		return errs.NewUnauthorizedError("delete offer", ErrNotOfferDriver)
	}
	if !j.status.IsTerminal() {
		return errs.NewInvalidStateError("offer", ErrOfferIsStillPending)
	}
	return nil
}

// IsLiveOffer reports whether the job is an offer still awaiting an answer.
func (j *Job) IsLiveOffer() bool {
	return j.jobType.IsOffer() && j.status.IsPendingOffer()
}

func (j *Job) ensureOriginal() error {
	if j.jobType != Original {
		return errs.NewInvalidStateError("job", ErrJobIsNotOriginal)
	}
	return nil
}

func (j *Job) ensureOffer() error {
	if !j.jobType.IsOffer() {
		return errs.NewInvalidStateError("job", ErrJobIsNotOffer)
	}
	if j.originalJobID == nil {
		return errs.NewInvalidStateError("offer", ErrOfferHasNoOriginal)
	}
	return nil
}

func (j *Job) ensureOfferable() error {
	if err := j.ensureOriginal(); err != nil {
		return err
	}
	if j.status != Pending {
		return errs.NewInvalidStateError("job", ErrJobIsNotPending)
	}
	return nil
}

func (j *Job) touch(now time.Time) {
	j.updatedAt = now
}
