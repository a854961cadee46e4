package http

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelIDs(a, b openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	first, err := toKernelID(a)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	second, err := toKernelID(b)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return first, second, nil
}

func optionalKernelID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := toKernelID(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func listFilter(p servers.ListJobsParams) (queries.ListJobsFilter, error) {
	var (
		f   queries.ListJobsFilter
		err error
	)
	if f.AssignedDriverID, err = optionalKernelID(p.AssignedDriverId); err != nil {
		return f, err
	}
	if f.CreatedByID, err = optionalKernelID(p.CreatedByDispatcherId); err != nil {
		return f, err
	}
	if f.CompanyID, err = optionalKernelID(p.CompanyId); err != nil {
		return f, err
	}
	if f.OriginalJobID, err = optionalKernelID(p.OriginalJobId); err != nil {
		return f, err
	}
	if p.Status != nil {
		status, err := job.StatusFromString(string(*p.Status))
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	if p.Type != nil {
		t, err := job.TypeFromString(string(*p.Type))
		if err != nil {
			return f, err
		}
		f.Type = &t
	}
	f.IsPublic = p.IsPublic
	f.Limit = deref(p.Limit)
	f.Offset = deref(p.Offset)
	return f, nil
}

func detailsFromNewJob(b servers.NewJob) job.TripDetails {
	d := job.TripDetails{
		Title:          b.Title,
		Description:    deref(b.Description),
		PickupAddress:  deref(b.PickupAddress),
		DropoffAddress: deref(b.DropoffAddress),
		PickupTime:     b.PickupTime,
		PassengerName:  deref(b.PassengerName),
		PassengerPhone: deref(b.PassengerPhone),
		PassengerCount: deref(b.PassengerCount),
		Notes:          deref(b.Notes),
	}
	if b.Price != nil {
		d.Price = float64(*b.Price)
	}
	return d
}

func patchFromBody(b servers.JobPatch) job.Patch {
	p := job.Patch{
		Title:          b.Title,
		Description:    b.Description,
		PickupAddress:  b.PickupAddress,
		DropoffAddress: b.DropoffAddress,
		PickupTime:     b.PickupTime,
		PassengerName:  b.PassengerName,
		PassengerPhone: b.PassengerPhone,
		PassengerCount: b.PassengerCount,
		Notes:          b.Notes,
		IsPublic:       b.IsPublic,
	}
	if b.Price != nil {
		price := float64(*b.Price)
		p.Price = &price
	}
	return p
}

func toJobResponse(s job.Snapshot) servers.Job {
	d := s.Details
	price := float32(d.Price)
	passengerCount := d.PassengerCount

	response := servers.Job{
		Id:                    s.ID.Bytes(),
		Type:                  servers.JobType(s.Type.String()),
		Status:                servers.JobStatus(s.Status.String()),
		IsPublic:              s.IsPublic,
		OriginalJobId:         kernel.PointerBytes(s.OriginalJobID),
		OfferId:               optional(s.OfferID),
		AssignedDriverId:      kernel.PointerBytes(s.Assignment.DriverID),
		DriverName:            optional(s.Assignment.DriverName),
		DriverPhone:           optional(s.Assignment.DriverPhone),
		VehicleId:             kernel.PointerBytes(s.Assignment.VehicleID),
		CreatedByDispatcherId: kernel.PointerBytes(s.Owner.CreatedByID),
		CompanyId:             kernel.PointerBytes(s.Owner.CompanyID),
		CompanyName:           optional(s.Owner.CompanyName),
		DriverResponseStatus:  optional(string(s.ResponseStatus)),
		Details: servers.TripDetails{
			Title:          optional(d.Title),
			Description:    optional(d.Description),
			PickupAddress:  optional(d.PickupAddress),
			DropoffAddress: optional(d.DropoffAddress),
			PickupTime:     d.PickupTime,
			PassengerName:  optional(d.PassengerName),
			PassengerPhone: optional(d.PassengerPhone),
			PassengerCount: &passengerCount,
			Price:          &price,
			Notes:          optional(d.Notes),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if v := s.Assignment.Vehicle; !v.IsZero() {
		response.Vehicle = &servers.Vehicle{
			LicensePlate: optional(v.LicensePlate),
			Make:         optional(v.Make),
			Model:        optional(v.Model),
		}
	}
	return response
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
