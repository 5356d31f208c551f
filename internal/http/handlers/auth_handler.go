// Sign-in HTTP handlers.
//
//   - GET  /auth/{provider}/login     (redirect to the identity provider)
//   - GET  /auth/{provider}/callback  (finish the code flow, set the session cookie)
//   - POST /auth/logout               (end the session)
//   - GET  /auth/session              (who is signed in, and their alias state)
//
// The OAuth state and the post-login redirect live in the short-lived
// gin-contrib/sessions cookie between login and callback. The session itself
// is a signed token in the middleware.SessionCookie cookie.
package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/auth"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

const (
	oauthStateKey    = "oauth.state"
	oauthProviderKey = "oauth.provider"
	oauthRedirectKey = "oauth.redirect"
)

//
// DTOs
//

// SessionResponse describes the current viewer.
type SessionResponse struct {
	SignedIn  bool                 `json:"signed_in"`
	UserID    string               `json:"user_id,omitempty"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	Alias     services.AliasStatus `json:"alias"`
	Notice    *pages.Notice        `json:"notice,omitempty"`
}

//
// Helpers
//

func (h *Handlers) setSessionCookie(c *gin.Context, token string, expires time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.opt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

//
// Handlers
//

// Login godoc
// @ID          login
// @Summary     Start signing in
// @Description Redirects to the identity provider. After the callback the browser is sent to redirect, when it is a local path, or to /dashboard.
// @Tags        Auth
// @Param       provider  path   string  true   "google or github"
// @Param       redirect  query  string  false  "Local path to return to"  example(/dashboard)
// @Success     302  {string} string "Redirect to the provider"
// @Failure     404  {object} handlers.ErrorResponse "Unknown or disabled provider"
// @Router      /auth/{provider}/login [get]
func (h *Handlers) Login(c *gin.Context) {
	provider := c.Param("provider")
	req, err := h.sessions.SignInURL(provider, c.Query("redirect"))
	if errors.Is(err, auth.ErrUnknownProvider) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown sign-in provider")
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}

	st := sessions.Default(c)
	st.Set(oauthStateKey, req.State)
	st.Set(oauthProviderKey, provider)
	st.Set(oauthRedirectKey, req.Redirect)
	if err := st.Save(); err != nil {
		failErr(c, err)
		return
	}
	c.Redirect(http.StatusFound, req.URL)
}

// Callback godoc
// @ID          oauthCallback
// @Summary     Finish signing in
// @Description Checks the OAuth state, exchanges the code, sets the session cookie and redirects.
// @Tags        Auth
// @Param       provider  path   string  true  "google or github"
// @Param       code      query  string  true  "Authorization code"
// @Param       state     query  string  true  "OAuth state"
// @Success     302  {string} string "Signed in"
// @Failure     400  {object} handlers.ErrorResponse "State mismatch or missing code"
// @Failure     401  {object} handlers.ErrorResponse "Sign-in failed"
// @Failure     404  {object} handlers.ErrorResponse "Unknown or disabled provider"
// @Router      /auth/{provider}/callback [get]
func (h *Handlers) Callback(c *gin.Context) {
	provider := c.Param("provider")

	// The stored state is single-use whatever happens next.
	st := sessions.Default(c)
	wantState, _ := st.Get(oauthStateKey).(string)
	wantProvider, _ := st.Get(oauthProviderKey).(string)
	redirect, _ := st.Get(oauthRedirectKey).(string)
	st.Delete(oauthStateKey)
	st.Delete(oauthProviderKey)
	st.Delete(oauthRedirectKey)
	_ = st.Save()

	if c.Query("error") != "" {
		fail(c, http.StatusUnauthorized, ErrCodeSignInFailed, "sign-in was cancelled or denied")
		return
	}
	got := c.Query("state")
	if wantState == "" || wantProvider != provider || subtle.ConstantTimeCompare([]byte(got), []byte(wantState)) != 1 {
		fail(c, http.StatusBadRequest, ErrCodeInvalidState, "sign-in state mismatch, please try again")
		return
	}
	code := c.Query("code")
	if code == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing authorization code")
		return
	}

	sess, token, err := h.sessions.CompleteSignIn(c.Request.Context(), provider, code)
	switch {
	case errors.Is(err, auth.ErrUnknownProvider):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown sign-in provider")
		return
	case err != nil:
		middleware.LoggerFrom(c).Warn().Err(err).Str("provider", provider).Msg("sign-in failed")
		fail(c, http.StatusUnauthorized, ErrCodeSignInFailed, "sign-in failed")
		return
	}

	h.setSessionCookie(c, token, sess.ExpiresAt)
	c.Redirect(http.StatusFound, auth.LocalRedirect(redirect))
}

// Logout godoc
// @ID          logout
// @Summary     Sign out
// @Description Revokes the session and clears the cookie. Signing out without a session succeeds.
// @Tags        Auth
// @Success     204  {string} string "No Content"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if tok := middleware.SessionToken(c); tok != "" {
		err := h.sessions.SignOut(c.Request.Context(), tok)
		if err != nil && !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, gorm.ErrRecordNotFound) {
			failErr(c, err)
			return
		}
	}
	h.clearSessionCookie(c)
	noContent(c)
}

// Session godoc
// @ID          currentSession
// @Summary     Current viewer
// @Tags        Auth
// @Produce     json
// @Success     200  {object} handlers.SessionResponse
// @Router      /auth/session [get]
func (h *Handlers) Session(c *gin.Context) {
	sess, notice := h.viewer(c)
	resp := SessionResponse{
		SignedIn: sess.SignedIn(),
		UserID:   sess.UserID,
		Alias:    sess.Alias,
		Notice:   notice,
	}
	if s := middleware.CurrentSession(c); s != nil {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	ok(c, http.StatusOK, resp)
}
