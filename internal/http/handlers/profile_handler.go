// Profile and leaderboard HTTP handlers.
//
//   - GET /profile/alias  (current alias state, signed in)
//   - PUT /profile/alias  (set or change the alias, signed in)
//   - GET /leaderboard    (top contributors)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
	"github.com/tbourn/go-snitchon-backend/internal/utils"
)

// maxLeaderboardLimit caps ?limit= on the leaderboard.
const maxLeaderboardLimit = 100

//
// DTOs
//

// SetAliasRequest is the JSON payload for choosing an alias.
type SetAliasRequest struct {
	// Alias is trimmed; 3 to 30 characters after trimming.
	Alias string `json:"alias" example:"truthseeker"`
}

// LeaderboardResponse wraps the ranked contributors.
type LeaderboardResponse struct {
	Contributors []domain.Contributor `json:"contributors"`
}

//
// Handlers
//

// GetAlias godoc
// @ID          getAlias
// @Summary     Current alias state
// @Description Returns session_no_alias until an alias has been chosen.
// @Tags        Profile
// @Produce     json
// @Success     200  {object} services.AliasStatus
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /profile/alias [get]
func (h *Handlers) GetAlias(c *gin.Context) {
	st, err := h.aliases.Resolve(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// SetAlias godoc
// @ID          setAlias
// @Summary     Choose or change the alias
// @Description Creates the profile on first use and updates it afterwards. Aliases are unique.
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SetAliasRequest  true  "Alias"
// @Success     200  {object} services.AliasStatus
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     401  {object} handlers.ErrorResponse "Not signed in"
// @Failure     409  {object} handlers.ErrorResponse "Alias taken"
// @Router      /profile/alias [put]
func (h *Handlers) SetAlias(c *gin.Context) {
	var req SetAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	st, err := h.aliases.Submit(c.Request.Context(), middleware.UserID(c), req.Alias)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// Leaderboard godoc
// @ID          leaderboard
// @Summary     Top contributors
// @Description Contributors with an alias, ranked by number of entries. Ties are ordered by alias.
// @Tags        Leaderboard
// @Produce     json
// @Param       limit  query  int  false  "Max rows"  minimum(1) maximum(100) default(5)
// @Success     200  {object} handlers.LeaderboardResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /leaderboard [get]
func (h *Handlers) Leaderboard(c *gin.Context) {
	n := utils.LimitParam(c.Query("limit"), h.opt.LeaderboardLimit, maxLeaderboardLimit)
	rows, err := h.board.Top(c.Request.Context(), n)
	if err != nil {
		failErr(c, err)
		return
	}
	if rows == nil {
		rows = []domain.Contributor{}
	}
	ok(c, http.StatusOK, LeaderboardResponse{Contributors: rows})
}
