package jobrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository on PostgreSQL.
//
// Each conditional method is one UPDATE or DELETE whose WHERE clause carries
// the precondition; RowsAffected tells whether it held. Under READ COMMITTED
// a concurrent writer blocks on the row lock and re-evaluates the WHERE
// clause after the first commit, so exactly one of them matches.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

type aggregateTracker interface {
	TrackAggregate(aggregate *job.Job)
}

func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("job", aggregate.ID().String(), err)
		}
		return errs.NewStoreFailureError("add job", err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, errs.NewStoreFailureError("get job", err)
	}

	return toDomain(dto)
}

func (r *GormJobRepository) GetByOfferID(ctx context.Context, offerID job.OfferID) (*job.Job, error) {
	if err := offerID.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "offer_id = ?", offerID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", offerID.String())
		}
		return nil, errs.NewStoreFailureError("get offer", err)
	}

	return toDomain(dto)
}

func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ?", dto.ID).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return errs.NewStoreFailureError("update job", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormJobRepository) UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return errs.NewStoreFailureError("update job", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormJobRepository) AssignIfUnassigned(ctx context.Context, aggregate *job.Job, requirePublic bool) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND job_type = ? AND status = ? AND assigned_driver_id IS NULL",
			dto.ID, int(job.Original), int(job.Pending))
	if requirePublic {
		tx = tx.Where("is_public = ?", true)
	}

	result := tx.Updates(mutableColumns(dto))
	if result.Error != nil {
		return errs.NewStoreFailureError("assign job", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormJobRepository) ReleaseAssignment(ctx context.Context, previous *job.Job, driverID kernel.UUID) (bool, error) {
	if err := previous.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(previous)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND job_type = ? AND status = ? AND assigned_driver_id = ?",
			dto.ID, int(job.Original), int(job.Assigned), driverID.Bytes()).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return false, errs.NewStoreFailureError("release job", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormJobRepository) SupersedeSiblings(ctx context.Context, originalID kernel.UUID, winner job.OfferID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("original_job_id = ? AND offer_id <> ? AND status IN ?",
			originalID.Bytes(), winner.String(), statusValues(job.PendingOfferStatuses())).
		Updates(map[string]any{
			"status":          int(job.Superseded),
			"response_status": string(job.ResponseSuperseded),
			"updated_at":      r.now(),
		})
	if result.Error != nil {
		return 0, errs.NewStoreFailureError("supersede siblings", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormJobRepository) DeleteOfferIfStatus(ctx context.Context, offer *job.Job, statuses ...job.Status) (bool, error) {
	if err := offer.Validate(); err != nil {
		return false, err
	}
	if len(statuses) == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND job_type IN ? AND status IN ?",
			offer.ID().Bytes(), offerTypeValues(), statusValues(statuses)).
		Delete(&JobDTO{})
	if result.Error != nil {
		return false, errs.NewStoreFailureError("delete offer", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(offer)
	return true, nil
}

func (r *GormJobRepository) Delete(ctx context.Context, aggregate *job.Job, statuses ...job.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tx := r.db.WithContext(ctx).Where("id = ?", aggregate.ID().Bytes())
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statusValues(statuses))
	}

	result := tx.Delete(&JobDTO{})
	if result.Error != nil {
		return errs.NewStoreFailureError("delete job", result.Error)
	}
	if result.RowsAffected == 0 {
		if len(statuses) > 0 {
			return errs.NewConflictError("job", aggregate.ID().String())
		}
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormJobRepository) ListLiveApplications(ctx context.Context, originalID kernel.UUID, driverID kernel.UUID) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("original_job_id = ? AND assigned_driver_id = ? AND job_type = ? AND status IN ?",
			originalID.Bytes(), driverID.Bytes(), int(job.Application), statusValues(job.PendingOfferStatuses())).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStoreFailureError("list applications", err)
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

const supersedeStaleSQL = `
	UPDATE jobs AS o
	SET status = ?, response_status = ?, updated_at = ?
	WHERE o.job_type IN ?
	  AND o.status IN ?
	  AND NOT EXISTS (
		SELECT 1 FROM jobs AS p
		WHERE p.id = o.original_job_id
		  AND p.status = ?
		  AND p.assigned_driver_id IS NULL
	  )`

func (r *GormJobRepository) SupersedeStaleOffers(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(supersedeStaleSQL,
		int(job.Superseded),
		string(job.ResponseSuperseded),
		r.now(),
		offerTypeValues(),
		statusValues(job.PendingOfferStatuses()),
		int(job.Pending),
	)
	if result.Error != nil {
		return 0, errs.NewStoreFailureError("supersede stale offers", result.Error)
	}
	return result.RowsAffected, nil
}
