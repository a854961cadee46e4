// Package jobreader serves job listings straight from the jobs table with
// sqlx. It bypasses the aggregate and the unit of work: reads never lock and
// never publish.
package jobreader

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectColumns = `
	SELECT
		id, job_type, original_job_id, offer_id, status, is_public,
		assigned_driver_id, driver_name, driver_phone, vehicle_id,
		vehicle_license_plate, vehicle_make, vehicle_model,
		created_by_dispatcher_id, company_id, company_name, response_status,
		title, description, pickup_address, dropoff_address, pickup_time,
		passenger_name, passenger_phone, passenger_count, price, notes,
		created_at, updated_at
	FROM jobs`

type jobRow struct {
	ID               uuid.UUID  `db:"id"`
	JobType          int        `db:"job_type"`
	OriginalJobID    *uuid.UUID `db:"original_job_id"`
	OfferID          *string    `db:"offer_id"`
	Status           int        `db:"status"`
	IsPublic         bool       `db:"is_public"`
	AssignedDriverID *uuid.UUID `db:"assigned_driver_id"`
	DriverName       string     `db:"driver_name"`
	DriverPhone      string     `db:"driver_phone"`
	VehicleID        *uuid.UUID `db:"vehicle_id"`
	LicensePlate     string     `db:"vehicle_license_plate"`
	Make             string     `db:"vehicle_make"`
	Model            string     `db:"vehicle_model"`
	CreatedByID      *uuid.UUID `db:"created_by_dispatcher_id"`
	CompanyID        *uuid.UUID `db:"company_id"`
	CompanyName      string     `db:"company_name"`
	ResponseStatus   string     `db:"response_status"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	PickupAddress    string     `db:"pickup_address"`
	DropoffAddress   string     `db:"dropoff_address"`
	PickupTime       *time.Time `db:"pickup_time"`
	PassengerName    string     `db:"passenger_name"`
	PassengerPhone   string     `db:"passenger_phone"`
	PassengerCount   int        `db:"passenger_count"`
	Price            float64    `db:"price"`
	Notes            string     `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (r jobRow) snapshot() (job.Snapshot, error) {
	return jobrepo.ToSnapshot(jobrepo.JobDTO{
		ID:               r.ID,
		JobType:          r.JobType,
		OriginalJobID:    r.OriginalJobID,
		OfferID:          r.OfferID,
		Status:           r.Status,
		IsPublic:         r.IsPublic,
		AssignedDriverID: r.AssignedDriverID,
		DriverName:       r.DriverName,
		DriverPhone:      r.DriverPhone,
		VehicleID:        r.VehicleID,
		Vehicle:          jobrepo.VehicleDTO{LicensePlate: r.LicensePlate, Make: r.Make, Model: r.Model},
		CreatedByID:      r.CreatedByID,
		CompanyID:        r.CompanyID,
		CompanyName:      r.CompanyName,
		ResponseStatus:   r.ResponseStatus,
		Details: jobrepo.DetailsDTO{
			Title:          r.Title,
			Description:    r.Description,
			PickupAddress:  r.PickupAddress,
			DropoffAddress: r.DropoffAddress,
			PickupTime:     r.PickupTime,
			PassengerName:  r.PassengerName,
			PassengerPhone: r.PassengerPhone,
			PassengerCount: r.PassengerCount,
			Price:          r.Price,
			Notes:          r.Notes,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	})
}

// SqlxJobReader implements ports.JobReader.
type SqlxJobReader struct {
	db *sqlx.DB
}

func NewSqlxJobReader(db *sqlx.DB) *SqlxJobReader {
	return &SqlxJobReader{db: db}
}

func (r *SqlxJobReader) FindByID(ctx context.Context, id kernel.UUID) (job.Snapshot, error) {
	if err := id.Validate(); err != nil {
		return job.Snapshot{}, err
	}

	var row jobRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(selectColumns+` WHERE id = ?`), id.Bytes())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return job.Snapshot{}, errs.NewObjectNotFoundError("job", id.String())
		}
		return job.Snapshot{}, errs.NewStoreFailureError("find job", err)
	}

	return row.snapshot()
}

// Find lists jobs newest first. Every non-nil filter field narrows the result.
func (r *SqlxJobReader) Find(ctx context.Context, filter ports.JobFilter) ([]job.Snapshot, error) {
	query, args := buildQuery(filter)

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, errs.NewStoreFailureError("find jobs", err)
	}

	out := make([]job.Snapshot, 0, len(rows))
	for _, row := range rows {
		s, err := row.snapshot()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func buildQuery(f ports.JobFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	if f.AssignedDriverID != nil {
		add("assigned_driver_id = ?", f.AssignedDriverID.Bytes())
	}
	if f.CreatedByID != nil {
		add("created_by_dispatcher_id = ?", f.CreatedByID.Bytes())
	}
	if f.CompanyID != nil {
		add("company_id = ?", f.CompanyID.Bytes())
	}
	if f.OriginalJobID != nil {
		add("original_job_id = ?", f.OriginalJobID.Bytes())
	}
	if f.IsPublic != nil {
		add("is_public = ?", *f.IsPublic)
	}
	if f.Status != nil {
		add("status = ?", int(*f.Status))
	}
	if f.Type != nil {
		add("job_type = ?", int(*f.Type))
	}

	var b strings.Builder
	b.WriteString(selectColumns)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id LIMIT ? OFFSET ?")

	limit := f.Limit
	if limit <= 0 {
		limit = ports.DefaultListLimit
	}
	args = append(args, limit, f.Offset)

	return b.String(), args
}
