package handlers

import (
	"errors"

	"github.com/gerald0n/finmoni-api/internal/money"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// respondServiceError translates the services package sentinels into HTTP
// statuses. Scoping failures answer 404 so callers cannot probe for
// resources in workspaces they do not belong to.
func respondServiceError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrInviteNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrInsufficientRole):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrLastOwner),
		errors.Is(err, money.ErrInvalidAmount):
		c.BadRequest(err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrInvitePending),
		errors.Is(err, services.ErrDuplicateEmail):
		_ = c.JSON(409, map[string]string{"error": err.Error()})
	default:
		c.InternalServerError("internal server error")
	}
}
