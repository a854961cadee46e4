package servers

import (
	"fmt"
	"net/http"

	"dispatch/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List jobs matching every supplied filter, newest first
	// (GET /jobs)
	ListJobs(ctx echo.Context, params ListJobsParams) error
	// Create an Original job
	// (POST /jobs)
	CreateJob(ctx echo.Context, params CreateJobParams) error

	// (DELETE /jobs/{jobId})
	DeleteJob(ctx echo.Context, jobId openapi_types.UUID, params DeleteJobParams) error

	// (GET /jobs/{jobId})
	GetJob(ctx echo.Context, jobId openapi_types.UUID) error
	// Merge descriptive fields and visibility into an Original
	// (PATCH /jobs/{jobId})
	UpdateJob(ctx echo.Context, jobId openapi_types.UUID) error
	// Create an application on behalf of the acting driver
	// (POST /jobs/{jobId}/applications)
	CreateApplication(ctx echo.Context, jobId openapi_types.UUID, params CreateApplicationParams) error
	// Dispatcher assigns a Pending Original to a driver
	// (POST /jobs/{jobId}/assign)
	AssignJob(ctx echo.Context, jobId openapi_types.UUID, params AssignJobParams) error

	// (POST /jobs/{jobId}/cancel)
	CancelJob(ctx echo.Context, jobId openapi_types.UUID, params CancelJobParams) error
	// Driver claims a public Pending Original
	// (POST /jobs/{jobId}/claim)
	ClaimJob(ctx echo.Context, jobId openapi_types.UUID, params ClaimJobParams) error

	// (POST /jobs/{jobId}/complete)
	CompleteJob(ctx echo.Context, jobId openapi_types.UUID, params CompleteJobParams) error
	// Dispatcher offers the job to a specific driver
	// (POST /jobs/{jobId}/offers)
	CreateCopiedOffer(ctx echo.Context, jobId openapi_types.UUID, params CreateCopiedOfferParams) error
	// Driver withdraws a pending application
	// (DELETE /offers/{offerId})
	DeleteOwnApplication(ctx echo.Context, offerId string, params DeleteOwnApplicationParams) error
	// Accept an offer; every sibling offer is superseded
	// (POST /offers/{offerId}/accept)
	AcceptOffer(ctx echo.Context, offerId string, params AcceptOfferParams) error

	// (POST /offers/{offerId}/reject)
	RejectOffer(ctx echo.Context, offerId string, params RejectOfferParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListJobs converts echo context to params.
func (w *ServerInterfaceWrapper) ListJobs(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListJobsParams
	query := ctx.QueryParams()

	for name, dest := range map[string]any{
		"assigned_driver_id":       &params.AssignedDriverId,
		"created_by_dispatcher_id": &params.CreatedByDispatcherId,
		"company_id":               &params.CompanyId,
		"original_job_id":          &params.OriginalJobId,
		"is_public":                &params.IsPublic,
		"status":                   &params.Status,
		"type":                     &params.Type,
		"limit":                    &params.Limit,
		"offset":                   &params.Offset,
	} {
		err = runtime.BindQueryParameter("form", true, false, name, query, dest)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	err = w.Handler.ListJobs(ctx, params)
	return err
}

// CreateJob converts echo context to params.
func (w *ServerInterfaceWrapper) CreateJob(ctx echo.Context) error {
	params, err := bindUserParams(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.CreateJob(ctx, params)
	return err
}

// DeleteJob converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteJob(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.DeleteJob(ctx, jobId, params)
	return err
}

// GetJob converts echo context to params.
func (w *ServerInterfaceWrapper) GetJob(ctx echo.Context) error {
	jobId, err := bindJobID(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.GetJob(ctx, jobId)
	return err
}

// UpdateJob converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateJob(ctx echo.Context) error {
	jobId, err := bindJobID(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.UpdateJob(ctx, jobId)
	return err
}

// CreateApplication converts echo context to params.
func (w *ServerInterfaceWrapper) CreateApplication(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.CreateApplication(ctx, jobId, params)
	return err
}

// AssignJob converts echo context to params.
func (w *ServerInterfaceWrapper) AssignJob(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.AssignJob(ctx, jobId, params)
	return err
}

// CancelJob converts echo context to params.
func (w *ServerInterfaceWrapper) CancelJob(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.CancelJob(ctx, jobId, params)
	return err
}

// ClaimJob converts echo context to params.
func (w *ServerInterfaceWrapper) ClaimJob(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.ClaimJob(ctx, jobId, params)
	return err
}

// CompleteJob converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteJob(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.CompleteJob(ctx, jobId, params)
	return err
}

// CreateCopiedOffer converts echo context to params.
func (w *ServerInterfaceWrapper) CreateCopiedOffer(ctx echo.Context) error {
	jobId, params, err := bindJobAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.CreateCopiedOffer(ctx, jobId, params)
	return err
}

// DeleteOwnApplication converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOwnApplication(ctx echo.Context) error {
	offerId, params, err := bindOfferAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.DeleteOwnApplication(ctx, offerId, params)
	return err
}

// AcceptOffer converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptOffer(ctx echo.Context) error {
	offerId, params, err := bindOfferAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.AcceptOffer(ctx, offerId, params)
	return err
}

// RejectOffer converts echo context to params.
func (w *ServerInterfaceWrapper) RejectOffer(ctx echo.Context) error {
	offerId, params, err := bindOfferAndUser(ctx)
	if err != nil {
		return err
	}

	err = w.Handler.RejectOffer(ctx, offerId, params)
	return err
}

func bindJobID(ctx echo.Context) (openapi_types.UUID, error) {
	// ------------- Path parameter "jobId" -------------
	var jobId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "jobId", ctx.Param("jobId"), &jobId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return jobId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter jobId: %s", err))
	}
	return jobId, nil
}

func bindOfferID(ctx echo.Context) (string, error) {
	// ------------- Path parameter "offerId" -------------
	var offerId string

	err := runtime.BindStyledParameterWithOptions("simple", "offerId", ctx.Param("offerId"), &offerId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return offerId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offerId: %s", err))
	}
	return offerId, nil
}

func bindUserParams(ctx echo.Context) (UserParams, error) {
	var params UserParams
	headers := ctx.Request().Header

	// ------------- Required header parameter "X-User-ID" -------------
	valueList, found := headers[http.CanonicalHeaderKey("X-User-ID")]
	if !found {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-User-ID is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-User-ID, got %d", n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", "X-User-ID", valueList[0], &params.XUserID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-User-ID: %s", err))
	}
	return params, nil
}

func bindJobAndUser(ctx echo.Context) (openapi_types.UUID, UserParams, error) {
	jobId, err := bindJobID(ctx)
	if err != nil {
		return jobId, UserParams{}, err
	}
	params, err := bindUserParams(ctx)
	return jobId, params, err
}

func bindOfferAndUser(ctx echo.Context) (string, UserParams, error) {
	offerId, err := bindOfferID(ctx)
	if err != nil {
		return offerId, UserParams{}, err
	}
	params, err := bindUserParams(ctx)
	return offerId, params, err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/jobs", wrapper.ListJobs)
	router.POST(baseURL+"/jobs", wrapper.CreateJob)
	router.DELETE(baseURL+"/jobs/:jobId", wrapper.DeleteJob)
	router.GET(baseURL+"/jobs/:jobId", wrapper.GetJob)
	router.PATCH(baseURL+"/jobs/:jobId", wrapper.UpdateJob)
	router.POST(baseURL+"/jobs/:jobId/applications", wrapper.CreateApplication)
	router.POST(baseURL+"/jobs/:jobId/assign", wrapper.AssignJob)
	router.POST(baseURL+"/jobs/:jobId/cancel", wrapper.CancelJob)
	router.POST(baseURL+"/jobs/:jobId/claim", wrapper.ClaimJob)
	router.POST(baseURL+"/jobs/:jobId/complete", wrapper.CompleteJob)
	router.POST(baseURL+"/jobs/:jobId/offers", wrapper.CreateCopiedOffer)
	router.DELETE(baseURL+"/offers/:offerId", wrapper.DeleteOwnApplication)
	router.POST(baseURL+"/offers/:offerId/accept", wrapper.AcceptOffer)
	router.POST(baseURL+"/offers/:offerId/reject", wrapper.RejectOffer)
}

// GetSwagger returns the OpenAPI contract the routes above implement.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPISpec)
	if err != nil {
		return nil, fmt.Errorf("error loading spec: %w", err)
	}
	return swagger, nil
}
