package postgres

import (
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables and indexes the adapters rely on,
// including the unique index on jobs.offer_id.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&jobrepo.JobDTO{}, &userrepo.UserDTO{}, &vehiclerepo.VehicleDTO{})
}
