// Entry HTTP handlers.
//
// This file exposes REST endpoints for misinformation entries:
//   - GET    /entries                      (list, optional ?q= filter, ETag support)
//   - GET    /entries/recent               (landing preview)
//   - GET    /entries/{id}                 (one entry)
//   - POST   /entries                      (create, Idempotency-Key aware)
//   - PATCH  /entries/{id}                 (partial update, owner only)
//   - POST   /entries/{id}/delete-request  (obtain a delete confirmation)
//   - DELETE /entries/{id}?confirm=        (confirmed delete, owner only)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/forms"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/utils"
)

// maxRecentLimit caps ?limit= on the recent preview.
const maxRecentLimit = 50

//
// DTOs
//

// CreateEntryRequest is the JSON payload for submitting an entry. All four
// fields are required; URL must be an absolute http(s) link when strict URL
// checking is on.
type CreateEntryRequest struct {
	TopicOrPerson    string `json:"topic_or_person"   example:"Moon landing"`
	ShortDescription string `json:"short_description" example:"Claims the footage was filmed in a studio"`
	URL              string `json:"url"               example:"https://example.com/post/123"`
	Details          string `json:"details"           example:"The shadows are **consistent** with a single light source."`
}

// UpdateEntryRequest is the JSON payload for a partial update. Omitted fields
// are left untouched.
type UpdateEntryRequest struct {
	TopicOrPerson    *string `json:"topic_or_person,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	URL              *string `json:"url,omitempty"`
	Details          *string `json:"details,omitempty"`
}

// ListEntriesResponse wraps the entry list. Query and Searched echo the
// filter: a query shorter than the minimum does not filter.
type ListEntriesResponse struct {
	Entries  []domain.Entry `json:"entries"`
	Query    string         `json:"query,omitempty"`
	Searched bool           `json:"searched"`
}

// RecentEntriesResponse wraps the recent preview.
type RecentEntriesResponse struct {
	Entries []domain.Entry `json:"entries"`
}

func (r CreateEntryRequest) fields() domain.EntryFields {
	return domain.EntryFields{
		TopicOrPerson:    r.TopicOrPerson,
		ShortDescription: r.ShortDescription,
		URL:              r.URL,
		Details:          r.Details,
	}
}

func (r UpdateEntryRequest) patch() domain.EntryPatch {
	return domain.EntryPatch{
		TopicOrPerson:    r.TopicOrPerson,
		ShortDescription: r.ShortDescription,
		URL:              r.URL,
		Details:          r.Details,
	}
}

//
// Helpers
//

// entryID reads and checks the :id path parameter.
func entryID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "entry id must be a UUID")
		return "", false
	}
	return id, true
}

// lookupID reads the :id path parameter of a read. An id that is not a
// UUID names no entry, so it is answered like a missing one.
func lookupID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
		return "", false
	}
	return id, true
}

// mutator returns the dashboard controller of the signed-in viewer. Alias
// state is not needed for writes, so it is not looked up.
func (h *Handlers) mutator(c *gin.Context) (*pages.Dashboard, bool) {
	d, err := pages.NewDashboard(h.entries, pages.Session{UserID: middleware.UserID(c)}, h.opt.StrictURL, h.opt.Search...)
	if err != nil {
		failErr(c, err)
		return nil, false
	}
	return d, true
}

//
// Handlers
//

// ListEntries godoc
// @ID          listEntries
// @Summary     List entries
// @Description Returns every entry, newest first. With q of at least the minimum length, only entries whose topic, description or details contain q (case-insensitive) are returned. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Entries
// @Produce     json
//
// @Param       q              query   string  false "Search text"                 example(moon)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"entries:3:1700000000\")
//
// @Success     200  {object} handlers.ListEntriesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Failure     504  {object} handlers.ErrorResponse "Store timeout"
// @Router      /entries [get]
func (h *Handlers) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Query("q")

	// ETag pre-check (best effort).
	if h.stats != nil {
		if count, maxTS, err := h.stats(ctx); err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"entries:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	list, err := h.entries.List(ctx)
	if err != nil {
		failErr(c, err)
		return
	}
	res := search.Entries(q, list, h.opt.Search...)
	out := list
	if res.Searched {
		out = res.Matches
	}
	if out == nil {
		out = []domain.Entry{}
	}
	ok(c, http.StatusOK, ListEntriesResponse{Entries: out, Query: strings.TrimSpace(q), Searched: res.Searched})
}

// RecentEntries godoc
// @ID          recentEntries
// @Summary     Most recent entries
// @Tags        Entries
// @Produce     json
// @Param       limit  query  int  false  "Max entries"  minimum(1) maximum(50) default(5)
// @Success     200  {object} handlers.RecentEntriesResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /entries/recent [get]
func (h *Handlers) RecentEntries(c *gin.Context) {
	n := utils.LimitParam(c.Query("limit"), h.opt.RecentLimit, maxRecentLimit)
	list, err := h.entries.ListRecent(c.Request.Context(), n)
	if err != nil {
		failErr(c, err)
		return
	}
	if list == nil {
		list = []domain.Entry{}
	}
	ok(c, http.StatusOK, RecentEntriesResponse{Entries: list})
}

// GetEntry godoc
// @ID          getEntry
// @Summary     Get one entry
// @Tags        Entries
// @Produce     json
// @Param       id   path  string  true  "Entry ID (UUID)"  format(uuid)
// @Success     200  {object} domain.Entry
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Router      /entries/{id} [get]
func (h *Handlers) GetEntry(c *gin.Context) {
	id, valid := lookupID(c)
	if !valid {
		return
	}
	e, err := h.entries.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, e)
}

// CreateEntry godoc
// @ID          createEntry
// @Summary     Submit an entry
// @Description Creates an entry owned by the signed-in user. Retrying with the same Idempotency-Key returns the entry created the first time with 200.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Deduplicates retries"  example(3f1c-42)
// @Param       body             body    handlers.CreateEntryRequest  true  "Entry"
//
// @Success     201  {object}  domain.Entry
// @Success     200  {object}  domain.Entry  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Not signed in"
// @Failure     409  {object}  handlers.ErrorResponse  "Key already used for a deleted entry"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries [post]
func (h *Handlers) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	d, valid := h.mutator(c)
	if !valid {
		return
	}
	key, _ := middleware.GetIdempotencyKey(c)

	e, replayed, err := d.Create(c.Request.Context(), req.fields(), key)
	if err != nil {
		failErr(c, err)
		return
	}
	created(c, e, replayed)
}

// UpdateEntry godoc
// @ID          updateEntry
// @Summary     Edit an entry
// @Description Applies the present fields to an entry owned by the signed-in user. A patch that changes nothing returns the entry unchanged.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Entry ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateEntryRequest  true  "Fields to change"
//
// @Success     200  {object} domain.Entry
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Router      /entries/{id} [patch]
func (h *Handlers) UpdateEntry(c *gin.Context) {
	id, valid := entryID(c)
	if !valid {
		return
	}
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	d, valid := h.mutator(c)
	if !valid {
		return
	}

	ctx := c.Request.Context()
	e, err := d.Update(ctx, id, req.patch())
	if errors.Is(err, forms.ErrUnchanged) {
		e, err = h.entries.Get(ctx, id)
	}
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, e)
}

// RequestDeleteEntry godoc
// @ID          requestDeleteEntry
// @Summary     Ask to delete an entry
// @Description Issues a short-lived token that DELETE /entries/{id} must present. Nothing is deleted.
// @Tags        Entries
// @Produce     json
// @Param       id   path  string  true  "Entry ID (UUID)"  format(uuid)
// @Success     200  {object} pages.DeleteConfirmation
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Router      /entries/{id}/delete-request [post]
func (h *Handlers) RequestDeleteEntry(c *gin.Context) {
	id, valid := entryID(c)
	if !valid {
		return
	}
	d, valid := h.mutator(c)
	if !valid {
		return
	}
	conf, err := d.RequestDelete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, conf)
}

// DeleteEntry godoc
// @ID          deleteEntry
// @Summary     Delete an entry
// @Description Permanently deletes an entry owned by the signed-in user. Requires the token from the delete request.
// @Tags        Entries
// @Param       id       path   string  true  "Entry ID (UUID)"  format(uuid)
// @Param       confirm  query  string  true  "Confirmation token"
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Not confirmed"
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Router      /entries/{id} [delete]
func (h *Handlers) DeleteEntry(c *gin.Context) {
	id, valid := entryID(c)
	if !valid {
		return
	}
	d, valid := h.mutator(c)
	if !valid {
		return
	}
	if err := d.ConfirmDelete(c.Request.Context(), id, c.Query("confirm")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
