// Package handlers exposes the site over HTTP/JSON.
//
// Handlers are transport-thin: they bind input, resolve the viewer from the
// session middleware, call the page controllers and services, and translate
// results into HTTP responses (including conditional responses). Every write
// to an entry goes through a pages.Dashboard so the list is re-fetched after
// it lands.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/auth"
	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AliasService reads and assigns contributor aliases.
type AliasService interface {
	Resolve(ctx context.Context, userID string) (services.AliasStatus, error)
	Submit(ctx context.Context, userID, alias string) (services.AliasStatus, error)
}

// LeaderboardService ranks contributors.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]domain.Contributor, error)
	Panel(ctx context.Context) []domain.Contributor
}

// SessionService runs the OAuth sign-in flow and ends sessions.
type SessionService interface {
	SignInURL(provider, redirect string) (auth.SignInRequest, error)
	CompleteSignIn(ctx context.Context, provider, code string) (*domain.Session, string, error)
	SignOut(ctx context.Context, token string) error
}

// StatsFunc returns the entry count and the newest update time. It backs the
// ETag of the entry list.
type StatsFunc func(ctx context.Context) (count int64, maxUpdatedAt *time.Time, err error)

//
// Handler wiring
//

// Options carries the behavior knobs of the HTTP surface.
type Options struct {
	StrictURL        bool
	RecentLimit      int
	LeaderboardLimit int
	Search           []search.FilterOption
	CookieSecure     bool
}

// Deps groups everything the handlers call.
type Deps struct {
	Entries     pages.EntryService
	Aliases     AliasService
	Leaderboard LeaderboardService
	Sessions    SessionService
	Info        *pages.InfoPages
	InfoIndex   search.Index
	Markdown    *pages.Markdown
	Stats       StatsFunc
	Options     Options
}

// Handlers groups HTTP endpoints for entries, aliases, the leaderboard,
// sign-in and the page views.
type Handlers struct {
	entries   pages.EntryService
	aliases   AliasService
	board     LeaderboardService
	sessions  SessionService
	info      *pages.InfoPages
	infoIndex search.Index
	md        *pages.Markdown
	stats     StatsFunc
	opt       Options
}

// New constructs and returns a Handlers instance bound to deps.
func New(d Deps) *Handlers {
	if d.Markdown == nil {
		d.Markdown = pages.NewMarkdown()
	}
	if d.Options.RecentLimit <= 0 {
		d.Options.RecentLimit = 5
	}
	if d.Options.LeaderboardLimit <= 0 {
		d.Options.LeaderboardLimit = 5
	}
	return &Handlers{
		entries:   d.Entries,
		aliases:   d.Aliases,
		board:     d.Leaderboard,
		sessions:  d.Sessions,
		info:      d.Info,
		infoIndex: d.InfoIndex,
		md:        d.Markdown,
		stats:     d.Stats,
		opt:       d.Options,
	}
}

// viewer resolves the pages.Session of the request. The second value is set
// when the alias lookup failed and the view should say so.
func (h *Handlers) viewer(c *gin.Context) (pages.Session, *pages.Notice) {
	return pages.ResolveSession(c.Request.Context(), h.aliases, middleware.UserID(c))
}
