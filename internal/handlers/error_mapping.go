package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/httperr"
)

// writeDomainError maps the error taxonomy onto HTTP responses.
func writeDomainError(c *gin.Context, err error) {
	var ve httperr.ValidationError
	if errors.As(err, &ve) {
		httperr.BadRequest(c, ve.Code, "Validation failed on field '"+ve.Field+"'.")
		return
	}

	var ne httperr.NotFoundError
	if errors.As(err, &ne) {
		httperr.NotFound(c, ne.Error(), "The requested "+ne.Entity+" does not exist.")
		return
	}

	var xe httperr.ExternalProviderError
	if errors.As(err, &xe) {
		httperr.BadGateway(c, "external_calendar_error",
			"The external calendar could not be reached. Nothing was changed; try again with a manual sync.")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "external_block_readonly":
			httperr.Forbidden(c, be.Code,
				"This block mirrors an external calendar event and is managed by the sync bridge.")
		case "sync_in_progress":
			httperr.Conflict(c, be.Code,
				"A sync operation for this provider is already running.")
		default:
			httperr.BadRequest(c, be.Code, "Request rejected.")
		}
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}
