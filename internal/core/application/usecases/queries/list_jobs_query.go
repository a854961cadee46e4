package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrListJobsQueryIsNotConstructed = errors.New(
	"ListJobsQuery must be created via NewListJobsQuery constructor",
)

// MaxListLimit bounds a single page of results.
const MaxListLimit = 500

// ListJobsQuery lists jobs matching every supplied filter. Filters are
// combined with AND; an empty filter lists everything, newest first.
//
// Example:
//
//	pending := job.Pending
//	query, err := NewListJobsQuery(ListJobsFilter{CompanyID: &companyID, Status: &pending})
//	if err != nil {
//	    return err
//	}
//	jobs, err := handler.Handle(ctx, query)
type ListJobsQuery struct {
	filter ports.JobFilter

	guard guard.ConstructorGuard
}

// ListJobsFilter carries the caller's optional filters. Nil means "any".
type ListJobsFilter struct {
	AssignedDriverID *kernel.UUID
	CreatedByID      *kernel.UUID
	CompanyID        *kernel.UUID
	OriginalJobID    *kernel.UUID
	IsPublic         *bool
	Status           *job.Status
	Type             *job.Type
	Limit            int
	Offset           int
}

func NewListJobsQuery(f ListJobsFilter) (ListJobsQuery, error) {
	if err := errors.Join(
		validateOptionalID("assigned_driver_id", f.AssignedDriverID),
		validateOptionalID("created_by_dispatcher_id", f.CreatedByID),
		validateOptionalID("company_id", f.CompanyID),
		validateOptionalID("original_job_id", f.OriginalJobID),
		validateStatus(f.Status),
		validateType(f.Type),
		validatePage(f.Limit, f.Offset),
	); err != nil {
		return ListJobsQuery{}, err
	}

	limit := f.Limit
	if limit == 0 {
		limit = ports.DefaultListLimit
	}

	return ListJobsQuery{
		filter: ports.JobFilter{
			AssignedDriverID: f.AssignedDriverID,
			CreatedByID:      f.CreatedByID,
			CompanyID:        f.CompanyID,
			OriginalJobID:    f.OriginalJobID,
			IsPublic:         f.IsPublic,
			Status:           f.Status,
			Type:             f.Type,
			Limit:            limit,
			Offset:           f.Offset,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

func (q ListJobsQuery) Filter() ports.JobFilter { return q.filter }

func validateOptionalID(param string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return nil
}

func validateStatus(s *job.Status) error {
	if s == nil {
		return nil
	}
	return s.Validate()
}

func validateType(t *job.Type) error {
	if t == nil {
		return nil
	}
	return t.Validate()
}

func validatePage(limit, offset int) error {
	if limit < 0 || limit > MaxListLimit {
		return errs.NewValueIsInvalidError("limit")
	}
	if offset < 0 {
		return errs.NewValueIsInvalidError("offset")
	}
	return nil
}
