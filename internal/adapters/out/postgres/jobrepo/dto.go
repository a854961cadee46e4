// Package jobrepo persists Job aggregates in the jobs table with GORM.
// Originals and offers share one table; offers are told apart by job_type
// and linked through original_job_id.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row layout of the jobs table. offer_id is NULL for Originals
// so the unique index only constrains offers.
type JobDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobType          int        `gorm:"column:job_type;not null;index:idx_jobs_original_type,priority:2"`
	OriginalJobID    *uuid.UUID `gorm:"column:original_job_id;type:uuid;index:idx_jobs_original_type,priority:1"`
	OfferID          *string    `gorm:"column:offer_id;uniqueIndex"`
	Status           int        `gorm:"column:status;not null;index:idx_jobs_company_status,priority:2"`
	IsPublic         bool       `gorm:"column:is_public;not null;default:false"`
	AssignedDriverID *uuid.UUID `gorm:"column:assigned_driver_id;type:uuid;index"`
	DriverName       string     `gorm:"column:driver_name"`
	DriverPhone      string     `gorm:"column:driver_phone"`
	VehicleID        *uuid.UUID `gorm:"column:vehicle_id;type:uuid"`
	Vehicle          VehicleDTO `gorm:"embedded;embeddedPrefix:vehicle_"`
	CreatedByID      *uuid.UUID `gorm:"column:created_by_dispatcher_id;type:uuid;index"`
	CompanyID        *uuid.UUID `gorm:"column:company_id;type:uuid;index:idx_jobs_company_status,priority:1"`
	CompanyName      string     `gorm:"column:company_name"`
	ResponseStatus   string     `gorm:"column:response_status"`
	Details          DetailsDTO `gorm:"embedded"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime:false;index"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

// VehicleDTO is the vehicle snapshot frozen on an offer.
type VehicleDTO struct {
	LicensePlate string `gorm:"column:license_plate"`
	Make         string `gorm:"column:make"`
	Model        string `gorm:"column:model"`
}

// DetailsDTO holds the trip payload columns.
type DetailsDTO struct {
	Title          string     `gorm:"column:title;not null"`
	Description    string     `gorm:"column:description"`
	PickupAddress  string     `gorm:"column:pickup_address"`
	DropoffAddress string     `gorm:"column:dropoff_address"`
	PickupTime     *time.Time `gorm:"column:pickup_time"`
	PassengerName  string     `gorm:"column:passenger_name"`
	PassengerPhone string     `gorm:"column:passenger_phone"`
	PassengerCount int        `gorm:"column:passenger_count"`
	Price          float64    `gorm:"column:price"`
	Notes          string     `gorm:"column:notes"`
}

func fromDomain(aggregate *job.Job) JobDTO {
	s := aggregate.Snapshot()

	var offerID *string
	if s.OfferID != "" {
		offerID = &s.OfferID
	}

	return JobDTO{
		ID:               s.ID.Bytes(),
		JobType:          int(s.Type),
		OriginalJobID:    kernel.PointerBytes(s.OriginalJobID),
		OfferID:          offerID,
		Status:           int(s.Status),
		IsPublic:         s.IsPublic,
		AssignedDriverID: kernel.PointerBytes(s.Assignment.DriverID),
		DriverName:       s.Assignment.DriverName,
		DriverPhone:      s.Assignment.DriverPhone,
		VehicleID:        kernel.PointerBytes(s.Assignment.VehicleID),
		Vehicle: VehicleDTO{
			LicensePlate: s.Assignment.Vehicle.LicensePlate,
			Make:         s.Assignment.Vehicle.Make,
			Model:        s.Assignment.Vehicle.Model,
		},
		CreatedByID:    kernel.PointerBytes(s.Owner.CreatedByID),
		CompanyID:      kernel.PointerBytes(s.Owner.CompanyID),
		CompanyName:    s.Owner.CompanyName,
		ResponseStatus: string(s.ResponseStatus),
		Details: DetailsDTO{
			Title:          s.Details.Title,
			Description:    s.Details.Description,
			PickupAddress:  s.Details.PickupAddress,
			DropoffAddress: s.Details.DropoffAddress,
			PickupTime:     s.Details.PickupTime,
			PassengerName:  s.Details.PassengerName,
			PassengerPhone: s.Details.PassengerPhone,
			PassengerCount: s.Details.PassengerCount,
			Price:          s.Details.Price,
			Notes:          s.Details.Notes,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSnapshot maps a row back to the flat domain form.
func ToSnapshot(dto JobDTO) (job.Snapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return job.Snapshot{}, err
	}

	ids := make([]*kernel.UUID, 5)
	for i, raw := range []*uuid.UUID{dto.OriginalJobID, dto.AssignedDriverID, dto.VehicleID, dto.CreatedByID, dto.CompanyID} {
		if ids[i], err = kernel.UUIDFromPointer(raw); err != nil {
			return job.Snapshot{}, err
		}
	}

	var offerID string
	if dto.OfferID != nil {
		offerID = *dto.OfferID
	}

	return job.Snapshot{
		ID:            id,
		Type:          job.Type(dto.JobType),
		OriginalJobID: ids[0],
		OfferID:       offerID,
		Status:        job.Status(dto.Status),
		IsPublic:      dto.IsPublic,
		Assignment: job.Assignment{
			DriverID:    ids[1],
			DriverName:  dto.DriverName,
			DriverPhone: dto.DriverPhone,
			VehicleID:   ids[2],
			Vehicle: job.VehicleSnapshot{
				LicensePlate: dto.Vehicle.LicensePlate,
				Make:         dto.Vehicle.Make,
				Model:        dto.Vehicle.Model,
			},
		},
		Owner: job.Owner{
			CreatedByID: ids[3],
			CompanyID:   ids[4],
			CompanyName: dto.CompanyName,
		},
		ResponseStatus: job.ResponseStatus(dto.ResponseStatus),
		Details: job.TripDetails{
			Title:          dto.Details.Title,
			Description:    dto.Details.Description,
			PickupAddress:  dto.Details.PickupAddress,
			DropoffAddress: dto.Details.DropoffAddress,
			PickupTime:     dto.Details.PickupTime,
			PassengerName:  dto.Details.PassengerName,
			PassengerPhone: dto.Details.PassengerPhone,
			PassengerCount: dto.Details.PassengerCount,
			Price:          dto.Details.Price,
			Notes:          dto.Details.Notes,
		},
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
	}, nil
}

func toDomain(dto JobDTO) (*job.Job, error) {
	s, err := ToSnapshot(dto)
	if err != nil {
		return nil, err
	}
	return job.RestoreJob(s)
}

// mutableColumns lists every column a write may change. A map is used so
// zero values such as is_public=false are written too.
func mutableColumns(dto JobDTO) map[string]any {
	return map[string]any{
		"status":                dto.Status,
		"is_public":             dto.IsPublic,
		"assigned_driver_id":    dto.AssignedDriverID,
		"driver_name":           dto.DriverName,
		"driver_phone":          dto.DriverPhone,
		"vehicle_id":            dto.VehicleID,
		"vehicle_license_plate": dto.Vehicle.LicensePlate,
		"vehicle_make":          dto.Vehicle.Make,
		"vehicle_model":         dto.Vehicle.Model,
		"response_status":       dto.ResponseStatus,
		"title":                 dto.Details.Title,
		"description":           dto.Details.Description,
		"pickup_address":        dto.Details.PickupAddress,
		"dropoff_address":       dto.Details.DropoffAddress,
		"pickup_time":           dto.Details.PickupTime,
		"passenger_name":        dto.Details.PassengerName,
		"passenger_phone":       dto.Details.PassengerPhone,
		"passenger_count":       dto.Details.PassengerCount,
		"price":                 dto.Details.Price,
		"notes":                 dto.Details.Notes,
		"updated_at":            dto.UpdatedAt,
	}
}

func statusValues(statuses []job.Status) []int {
	out := make([]int, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, int(s))
	}
	return out
}

func offerTypeValues() []int {
	types := job.OfferTypes()
	out := make([]int, 0, len(types))
	for _, t := range types {
		out = append(out, int(t))
	}
	return out
}
