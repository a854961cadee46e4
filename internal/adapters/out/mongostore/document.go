package mongostore

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"go.mongodb.org/mongo-driver/bson"
)

type vehicleDocument struct {
	LicensePlate string `bson:"license_plate"`
	Make         string `bson:"make"`
	Model        string `bson:"model"`
}

type detailsDocument struct {
	Title          string     `bson:"title"`
	Description    string     `bson:"description"`
	PickupAddress  string     `bson:"pickup_address"`
	DropoffAddress string     `bson:"dropoff_address"`
	PickupTime     *time.Time `bson:"pickup_time"`
	PassengerName  string     `bson:"passenger_name"`
	PassengerPhone string     `bson:"passenger_phone"`
	PassengerCount int        `bson:"passenger_count"`
	Price          float64    `bson:"price"`
	Notes          string     `bson:"notes"`
}

// jobDocument stores identifiers as canonical UUID strings and enums as
// their names.
type jobDocument struct {
	ID               string          `bson:"_id"`
	JobType          string          `bson:"job_type"`
	OriginalJobID    *string         `bson:"original_job_id"`
	OfferID          *string         `bson:"offer_id,omitempty"`
	Status           string          `bson:"status"`
	IsPublic         bool            `bson:"is_public"`
	AssignedDriverID *string         `bson:"assigned_driver_id"`
	DriverName       string          `bson:"driver_name"`
	DriverPhone      string          `bson:"driver_phone"`
	VehicleID        *string         `bson:"vehicle_id"`
	Vehicle          vehicleDocument `bson:"vehicle"`
	CreatedByID      *string         `bson:"created_by_dispatcher_id"`
	CompanyID        *string         `bson:"company_id"`
	CompanyName      string          `bson:"company_name"`
	ResponseStatus   string          `bson:"response_status"`
	Details          detailsDocument `bson:",inline"`
	CreatedAt        time.Time       `bson:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(aggregate *job.Job) jobDocument {
	s := aggregate.Snapshot()

	var offerID *string
	if s.OfferID != "" {
		offerID = &s.OfferID
	}

	return jobDocument{
		ID:               s.ID.String(),
		JobType:          s.Type.String(),
		OriginalJobID:    idString(s.OriginalJobID),
		OfferID:          offerID,
		Status:           s.Status.String(),
		IsPublic:         s.IsPublic,
		AssignedDriverID: idString(s.Assignment.DriverID),
		DriverName:       s.Assignment.DriverName,
		DriverPhone:      s.Assignment.DriverPhone,
		VehicleID:        idString(s.Assignment.VehicleID),
		Vehicle: vehicleDocument{
			LicensePlate: s.Assignment.Vehicle.LicensePlate,
			Make:         s.Assignment.Vehicle.Make,
			Model:        s.Assignment.Vehicle.Model,
		},
		CreatedByID:    idString(s.Owner.CreatedByID),
		CompanyID:      idString(s.Owner.CompanyID),
		CompanyName:    s.Owner.CompanyName,
		ResponseStatus: string(s.ResponseStatus),
		Details: detailsDocument{
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

func (d jobDocument) snapshot() (job.Snapshot, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return job.Snapshot{}, err
	}
	jobType, err := job.TypeFromString(d.JobType)
	if err != nil {
		return job.Snapshot{}, err
	}
	status, err := job.StatusFromString(d.Status)
	if err != nil {
		return job.Snapshot{}, err
	}

	ids := make([]*kernel.UUID, 5)
	for i, raw := range []*string{d.OriginalJobID, d.AssignedDriverID, d.VehicleID, d.CreatedByID, d.CompanyID} {
		if ids[i], err = parseID(raw); err != nil {
			return job.Snapshot{}, err
		}
	}

	var offerID string
	if d.OfferID != nil {
		offerID = *d.OfferID
	}

	return job.Snapshot{
		ID:            id,
		Type:          jobType,
		OriginalJobID: ids[0],
		OfferID:       offerID,
		Status:        status,
		IsPublic:      d.IsPublic,
		Assignment: job.Assignment{
			DriverID:    ids[1],
			DriverName:  d.DriverName,
			DriverPhone: d.DriverPhone,
			VehicleID:   ids[2],
			Vehicle: job.VehicleSnapshot{
				LicensePlate: d.Vehicle.LicensePlate,
				Make:         d.Vehicle.Make,
				Model:        d.Vehicle.Model,
			},
		},
		Owner: job.Owner{
			CreatedByID: ids[3],
			CompanyID:   ids[4],
			CompanyName: d.CompanyName,
		},
		ResponseStatus: job.ResponseStatus(d.ResponseStatus),
		Details: job.TripDetails{
			Title:          d.Details.Title,
			Description:    d.Details.Description,
			PickupAddress:  d.Details.PickupAddress,
			DropoffAddress: d.Details.DropoffAddress,
			PickupTime:     d.Details.PickupTime,
			PassengerName:  d.Details.PassengerName,
			PassengerPhone: d.Details.PassengerPhone,
			PassengerCount: d.Details.PassengerCount,
			Price:          d.Details.Price,
			Notes:          d.Details.Notes,
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func (d jobDocument) toDomain() (*job.Job, error) {
	s, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	return job.RestoreJob(s)
}

// mutable lists every field a write may change.
func (d jobDocument) mutable() bson.M {
	return bson.M{
		"status":             d.Status,
		"is_public":          d.IsPublic,
		"assigned_driver_id": d.AssignedDriverID,
		"driver_name":        d.DriverName,
		"driver_phone":       d.DriverPhone,
		"vehicle_id":         d.VehicleID,
		"vehicle":            d.Vehicle,
		"response_status":    d.ResponseStatus,
		"title":              d.Details.Title,
		"description":        d.Details.Description,
		"pickup_address":     d.Details.PickupAddress,
		"dropoff_address":    d.Details.DropoffAddress,
		"pickup_time":        d.Details.PickupTime,
		"passenger_name":     d.Details.PassengerName,
		"passenger_phone":    d.Details.PassengerPhone,
		"passenger_count":    d.Details.PassengerCount,
		"price":              d.Details.Price,
		"notes":              d.Details.Notes,
		"updated_at":         d.UpdatedAt,
	}
}

func statusNames(statuses []job.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}

func offerTypeNames() []string {
	types := job.OfferTypes()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}
