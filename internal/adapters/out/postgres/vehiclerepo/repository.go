// Package vehiclerepo resolves registered vehicles into offer snapshots.
package vehiclerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LicensePlate string    `gorm:"not null;uniqueIndex"`
	Make         string
	Model        string
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Get implements ports.VehicleDirectory.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (job.VehicleSnapshot, error) {
	if err := id.Validate(); err != nil {
		return job.VehicleSnapshot{}, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return job.VehicleSnapshot{}, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return job.VehicleSnapshot{}, errs.NewStoreFailureError("get vehicle", err)
	}

	return job.NewVehicleSnapshot(dto.LicensePlate, dto.Make, dto.Model)
}

// Save registers or replaces a vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, id kernel.UUID, v job.VehicleSnapshot) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if v.IsZero() {
		return errs.NewValueIsRequiredError("vehicle")
	}

	dto := VehicleDTO{ID: id.Bytes(), LicensePlate: v.LicensePlate, Make: v.Make, Model: v.Model}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("vehicle", id.String(), err)
		}
		return errs.NewStoreFailureError("save vehicle", err)
	}
	return nil
}
