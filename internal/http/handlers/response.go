// Package handlers provides the HTTP endpoints of the SnitchOn API.
//
// Every failure is written as an ErrorResponse. Clients branch on Code; the
// message is for people. A validation_failed error also names the rejected
// input in Field, so a form can mark it:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "validation_failed",
//	  "message": "topic_or_person: must not be empty",
//	  "field": "topic_or_person"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
)

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	// Echo of X-Request-ID for matching a report to the server log.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable machine-readable code, see errors.go.
	Code string `json:"code" example:"validation_failed"`
	// Safe to show to the user.
	Message string `json:"message" example:"topic_or_person: must not be empty"`
	// Rejected input of a validation_failed error.
	Field string `json:"field,omitempty" example:"topic_or_person"`
}

// fail aborts with an error body built from code and msg.
func fail(c *gin.Context, status int, code, msg string) {
	abort(c, status, ErrorResponse{Code: code, Message: msg})
}

// abort stamps the request id on resp and writes it. Server errors are
// logged with the last error attached to c, which carries the cause the
// client never sees.
func abort(c *gin.Context, status int, resp ErrorResponse) {
	resp.RequestID = c.Writer.Header().Get("X-Request-ID")
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error()
		if last := c.Errors.Last(); last != nil {
			ev = ev.Err(last.Err)
		}
		ev.Int("status", status).Str("code", resp.Code).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail lets the router answer unmatched routes with the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created answers a create: 201 for a new entry, 200 with
// Idempotent-Replay when the entry was produced by an earlier request with
// the same Idempotency-Key.
func created(c *gin.Context, e *domain.Entry, replayed bool) {
	if replayed {
		c.Header("Idempotent-Replay", "true")
		ok(c, http.StatusOK, e)
		return
	}
	ok(c, http.StatusCreated, e)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
