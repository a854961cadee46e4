// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for JobStatus.
const (
	JobStatusApplicationRequested JobStatus = "application_requested"
	JobStatusAccepted             JobStatus = "accepted"
	JobStatusAssigned             JobStatus = "assigned"
	JobStatusCancelled            JobStatus = "cancelled"
	JobStatusCompleted            JobStatus = "completed"
	JobStatusPending              JobStatus = "pending"
	JobStatusPendingAcceptance    JobStatus = "pending_acceptance"
	JobStatusRejected             JobStatus = "rejected"
	JobStatusSuperseded           JobStatus = "superseded"
)

// Defines values for JobType.
const (
	JobTypeApplication JobType = "application"
	JobTypeCopied      JobType = "copied"
	JobTypeOriginal    JobType = "original"
)

// AssignRequest defines model for AssignRequest.
type AssignRequest struct {
	DriverId openapi_types.UUID `json:"driver_id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Job defines model for Job.
type Job struct {
	AssignedDriverId      *openapi_types.UUID `json:"assigned_driver_id,omitempty"`
	CompanyId             *openapi_types.UUID `json:"company_id,omitempty"`
	CompanyName           *string             `json:"company_name,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	CreatedByDispatcherId *openapi_types.UUID `json:"created_by_dispatcher_id,omitempty"`
	Details               TripDetails         `json:"details"`
	DriverName            *string             `json:"driver_name,omitempty"`
	DriverPhone           *string             `json:"driver_phone,omitempty"`
	DriverResponseStatus  *string             `json:"driver_response_status,omitempty"`
	Id                    openapi_types.UUID  `json:"id"`
	IsPublic              bool                `json:"is_public"`
	OfferId               *string             `json:"offer_id,omitempty"`
	OriginalJobId         *openapi_types.UUID `json:"original_job_id,omitempty"`
	Status                JobStatus           `json:"status"`
	Type                  JobType             `json:"type"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Vehicle               *Vehicle            `json:"vehicle,omitempty"`
	VehicleId             *openapi_types.UUID `json:"vehicle_id,omitempty"`
}

// JobPatch defines model for JobPatch.
type JobPatch struct {
	Description    *string    `json:"description,omitempty"`
	DropoffAddress *string    `json:"dropoff_address,omitempty"`
	IsPublic       *bool      `json:"is_public,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	PassengerCount *int       `json:"passenger_count,omitempty"`
	PassengerName  *string    `json:"passenger_name,omitempty"`
	PassengerPhone *string    `json:"passenger_phone,omitempty"`
	PickupAddress  *string    `json:"pickup_address,omitempty"`
	PickupTime     *time.Time `json:"pickup_time,omitempty"`
	Price          *float32   `json:"price,omitempty"`
	Title          *string    `json:"title,omitempty"`
}

// JobStatus defines model for JobStatus.
type JobStatus string

// JobType defines model for JobType.
type JobType string

// NewApplication defines model for NewApplication.
type NewApplication struct {
	DriverName  *string            `json:"driver_name,omitempty"`
	DriverPhone *string            `json:"driver_phone,omitempty"`
	VehicleId   openapi_types.UUID `json:"vehicle_id"`
}

// NewCopiedOffer defines model for NewCopiedOffer.
type NewCopiedOffer struct {
	DriverId    openapi_types.UUID `json:"driver_id"`
	DriverName  *string            `json:"driver_name,omitempty"`
	DriverPhone *string            `json:"driver_phone,omitempty"`
	VehicleId   openapi_types.UUID `json:"vehicle_id"`
}

// NewJob defines model for NewJob.
type NewJob struct {
	Description    *string    `json:"description,omitempty"`
	DropoffAddress *string    `json:"dropoff_address,omitempty"`
	IsPublic       *bool      `json:"is_public,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	PassengerCount *int       `json:"passenger_count,omitempty"`
	PassengerName  *string    `json:"passenger_name,omitempty"`
	PassengerPhone *string    `json:"passenger_phone,omitempty"`
	PickupAddress  *string    `json:"pickup_address,omitempty"`
	PickupTime     *time.Time `json:"pickup_time,omitempty"`
	Price          *float32   `json:"price,omitempty"`
	Title          string     `json:"title"`
}

// RejectResult defines model for RejectResult.
type RejectResult struct {
	Rejected bool `json:"rejected"`
}

// TripDetails defines model for TripDetails.
type TripDetails struct {
	Description    *string    `json:"description,omitempty"`
	DropoffAddress *string    `json:"dropoff_address,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	PassengerCount *int       `json:"passenger_count,omitempty"`
	PassengerName  *string    `json:"passenger_name,omitempty"`
	PassengerPhone *string    `json:"passenger_phone,omitempty"`
	PickupAddress  *string    `json:"pickup_address,omitempty"`
	PickupTime     *time.Time `json:"pickup_time,omitempty"`
	Price          *float32   `json:"price,omitempty"`
	Title          *string    `json:"title,omitempty"`
}

// Vehicle defines model for Vehicle.
type Vehicle struct {
	LicensePlate *string `json:"license_plate,omitempty"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// ListJobsParams defines parameters for ListJobs.
type ListJobsParams struct {
	AssignedDriverId      *openapi_types.UUID `form:"assigned_driver_id,omitempty" json:"assigned_driver_id,omitempty"`
	CreatedByDispatcherId *openapi_types.UUID `form:"created_by_dispatcher_id,omitempty" json:"created_by_dispatcher_id,omitempty"`
	CompanyId             *openapi_types.UUID `form:"company_id,omitempty" json:"company_id,omitempty"`
	OriginalJobId         *openapi_types.UUID `form:"original_job_id,omitempty" json:"original_job_id,omitempty"`
	IsPublic              *bool               `form:"is_public,omitempty" json:"is_public,omitempty"`
	Status                *JobStatus          `form:"status,omitempty" json:"status,omitempty"`
	Type                  *JobType            `form:"type,omitempty" json:"type,omitempty"`
	Limit                 *int                `form:"limit,omitempty" json:"limit,omitempty"`
	Offset                *int                `form:"offset,omitempty" json:"offset,omitempty"`
}

// UserParams carries the acting user's X-User-ID header. Every operation
// that acts on behalf of a user takes it.
type UserParams struct {
	XUserID openapi_types.UUID `json:"X-User-ID"`
}

type (
	CreateJobParams            = UserParams
	DeleteJobParams            = UserParams
	ClaimJobParams             = UserParams
	AssignJobParams            = UserParams
	CompleteJobParams          = UserParams
	CancelJobParams            = UserParams
	CreateCopiedOfferParams    = UserParams
	CreateApplicationParams    = UserParams
	DeleteOwnApplicationParams = UserParams
	AcceptOfferParams          = UserParams
	RejectOfferParams          = UserParams
)

// CreateJobJSONRequestBody defines body for CreateJob for application/json ContentType.
type CreateJobJSONRequestBody = NewJob

// UpdateJobJSONRequestBody defines body for UpdateJob for application/json ContentType.
type UpdateJobJSONRequestBody = JobPatch

// AssignJobJSONRequestBody defines body for AssignJob for application/json ContentType.
type AssignJobJSONRequestBody = AssignRequest

// CreateCopiedOfferJSONRequestBody defines body for CreateCopiedOffer for application/json ContentType.
type CreateCopiedOfferJSONRequestBody = NewCopiedOffer

// CreateApplicationJSONRequestBody defines body for CreateApplication for application/json ContentType.
type CreateApplicationJSONRequestBody = NewApplication
