package job

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// EventType names a fact about a job that other services may react to.
type EventType string

const (
	EventJobCreated       EventType = "job.created"
	EventJobUpdated       EventType = "job.updated"
	EventJobAssigned      EventType = "job.assigned"
	EventJobCompleted     EventType = "job.completed"
	EventJobCancelled     EventType = "job.cancelled"
	EventJobDeleted       EventType = "job.deleted"
	EventOfferCreated     EventType = "offer.created"
	EventApplicationFiled EventType = "offer.application_filed"
	EventOfferAccepted    EventType = "offer.accepted"
	EventOfferRejected    EventType = "offer.rejected"
	EventOfferDeleted     EventType = "offer.deleted"
)

// Event is recorded by the aggregate and published after the unit of work
// commits.
type Event struct {
	Type          EventType
	JobID         kernel.UUID
	JobType       Type
	OriginalJobID *kernel.UUID
	OfferID       string
	DriverID      *kernel.UUID
	Status        Status
	OccurredAt    time.Time
}

func (j *Job) record(eventType EventType, at time.Time) {
	j.events = append(j.events, Event{
		Type:          eventType,
		JobID:         j.id,
		JobType:       j.jobType,
		OriginalJobID: j.originalJobID,
		OfferID:       j.offerID.String(),
		DriverID:      j.assignment.clone().DriverID,
		Status:        j.status,
		OccurredAt:    at,
	})
}

// PullEvents returns the recorded events and forgets them.
func (j *Job) PullEvents() []Event {
	events := j.events
	j.events = nil
	return events
}
