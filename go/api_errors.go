package courierserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	clientsapp "github.com/udea/couriersync/internal/domains/clients/application"
	shipmentsapp "github.com/udea/couriersync/internal/domains/shipments/application"
	usersapp "github.com/udea/couriersync/internal/domains/users/application"
	vehiclesapp "github.com/udea/couriersync/internal/domains/vehicles/application"
	apierrors "github.com/udea/couriersync/internal/shared/errors"
)

var errInvalidID = errors.New("identifier must be a positive integer")

var responder = apierrors.NewChainedResponder("",
	apierrors.Match(shipmentsapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Match(shipmentsapp.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Match(shipmentsapp.ErrForbidden, apierrors.ErrForbidden),
	apierrors.Match(clientsapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Match(clientsapp.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Match(vehiclesapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Match(vehiclesapp.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Match(vehiclesapp.ErrConflict, apierrors.ErrConflict),
	apierrors.Match(usersapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Match(usersapp.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Match(usersapp.ErrConflict, apierrors.ErrConflict),
	apierrors.Match(usersapp.ErrAuthentication, apierrors.ErrUnauthorized),
	apierrors.Match(usersapp.ErrRateLimited, apierrors.ErrTooManyRequests),
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError translates application sentinels into problem responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondValidation(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
}

func respondNotFound(c *gin.Context, resource string, identifier any) {
	responder.NotFound(c, resource, identifier)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, errInvalidID)
		return 0, false
	}
	return id, true
}
