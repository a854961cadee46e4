package http

import (
	"context"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by the command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Executor is a handler without a result.
type Executor[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers lists the use cases the server exposes.
type Handlers struct {
	CreateJob            Handler[commands.CreateJobCommand, *job.Job]
	UpdateJob            Handler[commands.UpdateJobCommand, *job.Job]
	DeleteJob            Executor[commands.DeleteJobCommand]
	ClaimJob             Handler[commands.ClaimJobCommand, *job.Job]
	AssignJob            Handler[commands.AssignJobCommand, *job.Job]
	CompleteJob          Handler[commands.CompleteJobCommand, *job.Job]
	CancelJob            Handler[commands.CancelJobCommand, *job.Job]
	CreateCopiedOffer    Handler[commands.CreateCopiedOfferCommand, *job.Job]
	CreateApplication    Handler[commands.CreateApplicationCommand, *job.Job]
	AcceptOffer          Handler[commands.AcceptOfferCommand, *job.Job]
	RejectOffer          Handler[commands.RejectOfferCommand, bool]
	DeleteOwnApplication Executor[commands.DeleteOwnApplicationCommand]

	GetJob   Handler[queries.GetJobQuery, job.Snapshot]
	ListJobs Handler[queries.ListJobsQuery, []job.Snapshot]
}

// Server implements servers.ServerInterface on top of the use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// ListJobs handles GET /api/v1/jobs.
func (s *Server) ListJobs(ctx echo.Context, params servers.ListJobsParams) error {
	filter, err := listFilter(params)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	query, err := queries.NewListJobsQuery(filter)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	snapshots, err := s.h.ListJobs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Job, len(snapshots))
	for i, snapshot := range snapshots {
		response[i] = toJobResponse(snapshot)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(ctx echo.Context, params servers.CreateJobParams) error {
	var body servers.CreateJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	creatorID, err := toKernelID(params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	isPublic := body.IsPublic != nil && *body.IsPublic
	cmd, err := commands.NewCreateJobCommand(kernel.NewUUID(), creatorID, detailsFromNewJob(body), isPublic)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	created, err := s.h.CreateJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toJobResponse(created.Snapshot()))
}

// GetJob handles GET /api/v1/jobs/{jobId}.
func (s *Server) GetJob(ctx echo.Context, jobID openapi_types.UUID) error {
	id, err := toKernelID(jobID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	query, err := queries.NewGetJobQuery(id)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	snapshot, err := s.h.GetJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJobResponse(snapshot))
}

// UpdateJob handles PATCH /api/v1/jobs/{jobId}.
func (s *Server) UpdateJob(ctx echo.Context, jobID openapi_types.UUID) error {
	var body servers.UpdateJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	id, err := toKernelID(jobID)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateJobCommand(id, patchFromBody(body))
	if err != nil {
		return s.badRequest(ctx, err)
	}

	updated, err := s.h.UpdateJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJobResponse(updated.Snapshot()))
}

// DeleteJob handles DELETE /api/v1/jobs/{jobId}.
func (s *Server) DeleteJob(ctx echo.Context, jobID openapi_types.UUID, params servers.DeleteJobParams) error {
	id, actorID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewDeleteJobCommand(id, actorID)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	if err = s.h.DeleteJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClaimJob handles POST /api/v1/jobs/{jobId}/claim.
func (s *Server) ClaimJob(ctx echo.Context, jobID openapi_types.UUID, params servers.ClaimJobParams) error {
	id, driverID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewClaimJobCommand(id, driverID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusOK, func(c context.Context) (*job.Job, error) {
		return s.h.ClaimJob.Handle(c, cmd)
	})
}

// AssignJob handles POST /api/v1/jobs/{jobId}/assign.
func (s *Server) AssignJob(ctx echo.Context, jobID openapi_types.UUID, params servers.AssignJobParams) error {
	var body servers.AssignJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	id, dispatcherID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	driverID, err := toKernelID(body.DriverId)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignJobCommand(id, driverID, dispatcherID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusOK, func(c context.Context) (*job.Job, error) {
		return s.h.AssignJob.Handle(c, cmd)
	})
}

// CompleteJob handles POST /api/v1/jobs/{jobId}/complete.
func (s *Server) CompleteJob(ctx echo.Context, jobID openapi_types.UUID, params servers.CompleteJobParams) error {
	id, driverID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewCompleteJobCommand(id, driverID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusOK, func(c context.Context) (*job.Job, error) {
		return s.h.CompleteJob.Handle(c, cmd)
	})
}

// CancelJob handles POST /api/v1/jobs/{jobId}/cancel.
func (s *Server) CancelJob(ctx echo.Context, jobID openapi_types.UUID, params servers.CancelJobParams) error {
	id, actorID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewCancelJobCommand(id, actorID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusOK, func(c context.Context) (*job.Job, error) {
		return s.h.CancelJob.Handle(c, cmd)
	})
}

// CreateCopiedOffer handles POST /api/v1/jobs/{jobId}/offers.
func (s *Server) CreateCopiedOffer(ctx echo.Context, jobID openapi_types.UUID, params servers.CreateCopiedOfferParams) error {
	var body servers.CreateCopiedOfferJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	originalID, actorID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	driverID, vehicleID, err := toKernelIDs(body.DriverId, body.VehicleId)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateCopiedOfferCommand(
		originalID, actorID, driverID, vehicleID, deref(body.DriverName), deref(body.DriverPhone),
	)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusCreated, func(c context.Context) (*job.Job, error) {
		return s.h.CreateCopiedOffer.Handle(c, cmd)
	})
}

// CreateApplication handles POST /api/v1/jobs/{jobId}/applications.
func (s *Server) CreateApplication(ctx echo.Context, jobID openapi_types.UUID, params servers.CreateApplicationParams) error {
	var body servers.CreateApplicationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}
	originalID, driverID, err := toKernelIDs(jobID, params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	vehicleID, err := toKernelID(body.VehicleId)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateApplicationCommand(
		originalID, driverID, vehicleID, deref(body.DriverName), deref(body.DriverPhone),
	)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusCreated, func(c context.Context) (*job.Job, error) {
		return s.h.CreateApplication.Handle(c, cmd)
	})
}

// AcceptOffer handles POST /api/v1/offers/{offerId}/accept and responds with
// the now assigned Original.
func (s *Server) AcceptOffer(ctx echo.Context, offerID string, params servers.AcceptOfferParams) error {
	actorID, err := toKernelID(params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewAcceptOfferCommand(offerID, actorID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	return s.respondJob(ctx, http.StatusOK, func(c context.Context) (*job.Job, error) {
		return s.h.AcceptOffer.Handle(c, cmd)
	})
}

// RejectOffer handles POST /api/v1/offers/{offerId}/reject.
func (s *Server) RejectOffer(ctx echo.Context, offerID string, params servers.RejectOfferParams) error {
	actorID, err := toKernelID(params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewRejectOfferCommand(offerID, actorID)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	rejected, err := s.h.RejectOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.RejectResult{Rejected: rejected})
}

// DeleteOwnApplication handles DELETE /api/v1/offers/{offerId}.
func (s *Server) DeleteOwnApplication(ctx echo.Context, offerID string, params servers.DeleteOwnApplicationParams) error {
	driverID, err := toKernelID(params.XUserID)
	if err != nil {
		return s.badRequest(ctx, err)
	}
	cmd, err := commands.NewDeleteOwnApplicationCommand(offerID, driverID)
	if err != nil {
		return s.badRequest(ctx, err)
	}

	if err = s.h.DeleteOwnApplication.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondJob(ctx echo.Context, status int, run func(context.Context) (*job.Job, error)) error {
	result, err := run(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, toJobResponse(result.Snapshot()))
}
