package handlers

import (
	"errors"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/labstack/echo/v4"
)

// respondError maps a service error onto the JSON error envelope. resource
// names the entity for 404 messages; fallback is the 500 message when nothing
// more specific matches.
func respondError(c echo.Context, resource, fallback string, err error) error {
	var validationErr *common.ValidationError
	var transitionErr *models.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		return common.SendClientError(c, validationErr.Message)
	case errors.As(err, &transitionErr):
		return common.SendUnprocessableError(c, transitionErr.Error())
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, common.ErrConflict):
		return common.SendConflictError(c, "Resource was modified concurrently, please retry")
	case errors.Is(err, common.ErrInvalidCredentials):
		return common.SendUnauthorizedError(c)
	default:
		return common.SendServerError(c, fallback)
	}
}
