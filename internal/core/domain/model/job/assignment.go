package job

import (
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// VehicleSnapshot freezes the vehicle attributes at the moment an offer was
// made, so later edits in the vehicle registry do not rewrite history.
type VehicleSnapshot struct {
	LicensePlate string
	Make         string
	Model        string
}

func NewVehicleSnapshot(licensePlate, vehicleMake, model string) (VehicleSnapshot, error) {
	if strings.TrimSpace(licensePlate) == "" {
		return VehicleSnapshot{}, errs.NewValueIsRequiredError("license_plate")
	}
	return VehicleSnapshot{LicensePlate: licensePlate, Make: vehicleMake, Model: model}, nil
}

func (v VehicleSnapshot) IsZero() bool {
	return v == VehicleSnapshot{}
}

// Assignment holds the driver and vehicle attached to a job. On an Original it
// is empty until the job is claimed, assigned or an offer is accepted; on an
// offer it names the candidate driver.
type Assignment struct {
	DriverID    *kernel.UUID
	DriverName  string
	DriverPhone string
	VehicleID   *kernel.UUID
	Vehicle     VehicleSnapshot
}

// DriverOnly builds an assignment that names just the driver, as claim and
// dispatcher assignment do.
func DriverOnly(driverID kernel.UUID) Assignment {
	return Assignment{DriverID: &driverID}
}

func (a Assignment) IsAssigned() bool {
	return a.DriverID != nil
}

func (a Assignment) clone() Assignment {
	out := a
	if a.DriverID != nil {
		id := *a.DriverID
		out.DriverID = &id
	}
	if a.VehicleID != nil {
		id := *a.VehicleID
		out.VehicleID = &id
	}
	return out
}
