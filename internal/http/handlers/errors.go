// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package) and the translation of
// service errors into them. Clients branch on these codes; messages are for
// people.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "alias_taken",
//	  "message": "This alias is already taken. Please choose another."
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeTimeout          = "timeout"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidation         = "validation_failed"
	ErrCodeAliasTaken         = "alias_taken"
	ErrCodeDeleteNotConfirmed = "delete_not_confirmed"
	ErrCodeInvalidState       = "invalid_state"
	ErrCodeSignInFailed       = "sign_in_failed"
	ErrCodeKeyReused          = "idempotency_key_reused"
)

// failErr writes the envelope matching a service error. Unknown errors are
// reported as 500 without leaking their text.
func failErr(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		abort(c, http.StatusBadRequest, ErrorResponse{Code: ErrCodeValidation, Message: ve.Error(), Field: ve.Field})
	case errors.Is(err, services.ErrAliasTaken):
		fail(c, http.StatusConflict, ErrCodeAliasTaken, services.AliasTakenMessage)
	case errors.Is(err, services.ErrUnauthenticated):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "sign in required")
	case errors.Is(err, services.ErrDeleteNotConfirmed):
		fail(c, http.StatusBadRequest, ErrCodeDeleteNotConfirmed, "delete was not confirmed")
	case errors.Is(err, services.ErrNotOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "entry belongs to another user")
	case errors.Is(err, services.ErrIdempotencyKeyReused):
		fail(c, http.StatusConflict, ErrCodeKeyReused, "this Idempotency-Key already created an entry that has since been deleted")
	case errors.Is(err, services.ErrEntryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
	case services.IsTimeout(err):
		fail(c, http.StatusGatewayTimeout, ErrCodeTimeout, "the store did not answer in time")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
