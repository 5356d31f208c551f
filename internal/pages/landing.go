package pages

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/observability"
	"github.com/tbourn/go-snitchon-backend/internal/search"
)

// LandingView is the public home page.
type LandingView struct {
	Session     Session              `json:"session"`
	Recent      []domain.Entry       `json:"recent"`
	Leaderboard []domain.Contributor `json:"leaderboard,omitempty"`
	Search      SearchBlock          `json:"search"`
	Notice      *Notice              `json:"notice,omitempty"`
}

// Landing builds the home page.
type Landing struct {
	Entries     EntryReader
	Board       Leaderboard
	RecentLimit int
	Search      []search.FilterOption
}

// Load fetches the recent preview, the leaderboard and, when query is long
// enough, the full list to search, all at once. Each fetch fills its own
// slot; a failing fetch leaves its slot empty and sets the notice.
func (l *Landing) Load(ctx context.Context, sess Session, query string) LandingView {
	var (
		recent []domain.Entry
		board  []domain.Contributor
		corpus []domain.Entry
	)
	searching := search.Ready(query, l.Search...)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		recent, err = l.Entries.ListRecent(ctx, l.RecentLimit)
		return err
	})
	g.Go(func() error {
		board = l.Board.Panel(ctx)
		return nil
	})
	if searching {
		g.Go(func() error {
			var err error
			corpus, err = l.Entries.List(ctx)
			return err
		})
	}
	err := g.Wait()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("landing page degraded")
	}

	res := search.Entries(query, corpus, l.Search...)
	countSearch(query, res.Searched)

	if recent == nil {
		recent = []domain.Entry{}
	}
	return LandingView{
		Session:     sess,
		Recent:      recent,
		Leaderboard: board,
		Search:      SearchBlock{Query: query, Searched: res.Searched, Results: res.Matches},
		Notice:      NoticeFor(err),
	}
}

func countSearch(query string, searched bool) {
	if strings.TrimSpace(query) == "" {
		return
	}
	observability.SearchRequests.WithLabelValues(strconv.FormatBool(searched)).Inc()
}
