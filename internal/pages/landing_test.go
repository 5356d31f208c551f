package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

func seeded() *fakeEntries {
	return newFakeEntries(
		entry("6", "u1", "Vaccine rumor"),
		entry("5", "u2", "Election claim"),
		entry("4", "u1", "Doctored photo"),
		entry("3", "u2", "Vaccine chip hoax"),
		entry("2", "u1", "Fake quote"),
		entry("1", "u2", "Satire shared as news"),
	)
}

func TestLanding_RecentAndLeaderboard(t *testing.T) {
	src := seeded()
	board := fakeBoard{rows: []domain.Contributor{{Alias: "watcher", EntryCount: 3}}}
	l := &Landing{Entries: src, Board: board, RecentLimit: 5}

	v := l.Load(context.Background(), Session{}, "")
	require.Len(t, v.Recent, 5)
	assert.Equal(t, "6", v.Recent[0].ID)
	assert.Equal(t, board.rows, v.Leaderboard)
	assert.False(t, v.Search.Searched)
	assert.Empty(t, v.Search.Results)
	assert.Nil(t, v.Notice)
	assert.Equal(t, 0, src.listCalls, "full list is only fetched for a search")
}

func TestLanding_SearchOverFullList(t *testing.T) {
	src := seeded()
	l := &Landing{Entries: src, Board: fakeBoard{}, RecentLimit: 2}

	v := l.Load(context.Background(), Session{}, "  VACCINE ")
	assert.True(t, v.Search.Searched)
	require.Len(t, v.Search.Results, 2)
	assert.Equal(t, "6", v.Search.Results[0].ID)
	assert.Equal(t, "3", v.Search.Results[1].ID, "match outside the preview is still found")
	assert.Nil(t, v.Leaderboard, "empty leaderboard hides the panel")
	assert.Equal(t, 1, src.listCalls)

	v = l.Load(context.Background(), Session{}, "va")
	assert.False(t, v.Search.Searched)
	assert.Empty(t, v.Search.Results)
}

func TestLanding_FailureBecomesNotice(t *testing.T) {
	src := seeded()
	src.failAll = &services.RemoteFault{Op: "list recent entries", Err: errDown}
	board := fakeBoard{rows: []domain.Contributor{{Alias: "watcher", EntryCount: 3}}}
	l := &Landing{Entries: src, Board: board, RecentLimit: 5}

	v := l.Load(context.Background(), Session{UserID: "u1"}, "vaccine")
	require.NotNil(t, v.Notice)
	assert.Equal(t, "error", v.Notice.Level)
	assert.NotNil(t, v.Recent)
	assert.Empty(t, v.Recent)
	assert.Equal(t, board.rows, v.Leaderboard, "other panels still render")
	assert.Equal(t, "u1", v.Session.UserID)
}
