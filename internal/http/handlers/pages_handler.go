// Page view HTTP handlers.
//
// Each endpoint returns the whole state of one screen as JSON, built by the
// matching pages controller:
//   - GET /pages/landing       (recent entries, leaderboard, search)
//   - GET /pages/dashboard     (signed-in workspace)
//   - GET /pages/entries/{id}  (entry detail with rendered Markdown)
//   - GET /pages/info/{slug}   (informational page)
//   - GET /info/search         (search across informational pages)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/services"
	"github.com/tbourn/go-snitchon-backend/internal/utils"
)

// maxInfoHits caps ?limit= on the informational page search.
const maxInfoHits = 10

//
// DTOs
//

// InfoSearchResponse wraps the best-matching informational paragraphs.
type InfoSearchResponse struct {
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
}

// InfoIndexResponse lists the informational pages.
type InfoIndexResponse struct {
	Slugs []string `json:"slugs"`
}

//
// Handlers
//

// LandingPage godoc
// @ID          landingPage
// @Summary     Landing page
// @Description Recent entries, the leaderboard (omitted when unavailable) and, for a long enough q, the matching entries.
// @Tags        Pages
// @Produce     json
// @Param       q  query  string  false  "Search text"
// @Success     200  {object} pages.LandingView
// @Router      /pages/landing [get]
func (h *Handlers) LandingPage(c *gin.Context) {
	sess, notice := h.viewer(c)
	l := pages.Landing{
		Entries:     h.entries,
		Board:       h.board,
		RecentLimit: h.opt.RecentLimit,
		Search:      h.opt.Search,
	}
	v := l.Load(c.Request.Context(), sess, c.Query("q"))
	if v.Notice == nil {
		v.Notice = notice
	}
	ok(c, http.StatusOK, v)
}

// DashboardPage godoc
// @ID          dashboardPage
// @Summary     Dashboard
// @Description The signed-in user's workspace: every entry, alias state and search.
// @Tags        Pages
// @Produce     json
// @Param       q  query  string  false  "Search text"
// @Success     200  {object} pages.DashboardView
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Router      /pages/dashboard [get]
func (h *Handlers) DashboardPage(c *gin.Context) {
	sess, notice := h.viewer(c)
	d, err := pages.NewDashboard(h.entries, sess, h.opt.StrictURL, h.opt.Search...)
	if err != nil {
		failErr(c, err)
		return
	}
	v := d.Load(c.Request.Context(), c.Query("q"))
	if v.Notice == nil {
		v.Notice = notice
	}
	ok(c, http.StatusOK, v)
}

// EntryPage godoc
// @ID          entryPage
// @Summary     Entry detail
// @Tags        Pages
// @Produce     json
// @Param       id  path  string  true  "Entry ID (UUID)"  format(uuid)
// @Success     200  {object} pages.EntryView
// @Failure     404  {object} handlers.ErrorResponse "Entry not found"
// @Router      /pages/entries/{id} [get]
func (h *Handlers) EntryPage(c *gin.Context) {
	id, valid := lookupID(c)
	if !valid {
		return
	}
	sess, _ := h.viewer(c)
	p := pages.EntryDetail{Entries: h.entries, Markdown: h.md}
	v, err := p.Load(c.Request.Context(), sess, id)
	if errors.Is(err, services.ErrEntryNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// InfoIndex godoc
// @ID          infoIndex
// @Summary     List informational pages
// @Tags        Pages
// @Produce     json
// @Success     200  {object} handlers.InfoIndexResponse
// @Router      /pages/info [get]
func (h *Handlers) InfoIndex(c *gin.Context) {
	ok(c, http.StatusOK, InfoIndexResponse{Slugs: h.info.Slugs()})
}

// InfoPage godoc
// @ID          infoPage
// @Summary     Informational page
// @Tags        Pages
// @Produce     json
// @Param       slug  path  string  true  "Page slug"  example(about)
// @Success     200  {object} pages.InfoPage
// @Failure     404  {object} handlers.ErrorResponse "Page not found"
// @Router      /pages/info/{slug} [get]
func (h *Handlers) InfoPage(c *gin.Context) {
	pg, found := h.info.Get(c.Param("slug"))
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "page not found")
		return
	}
	ok(c, http.StatusOK, pg)
}

// SearchInfo godoc
// @ID          searchInfo
// @Summary     Search informational pages
// @Description Returns the paragraphs of the informational pages that best match q.
// @Tags        Pages
// @Produce     json
// @Param       q      query  string  true   "Search text"
// @Param       limit  query  int     false  "Max hits"  minimum(1) maximum(10) default(3)
// @Success     200  {object} handlers.InfoSearchResponse
// @Router      /info/search [get]
func (h *Handlers) SearchInfo(c *gin.Context) {
	q := c.Query("q")
	k := utils.LimitParam(c.Query("limit"), 3, maxInfoHits)
	hits := h.infoIndex.TopK(q, k)
	if hits == nil {
		hits = []search.Hit{}
	}
	ok(c, http.StatusOK, InfoSearchResponse{Query: q, Hits: hits})
}
