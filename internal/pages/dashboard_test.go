package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/forms"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

var u1 = Session{UserID: "u1", Alias: services.AliasStatus{State: services.SessionWithAlias, Alias: "watcher"}}

func fields() domain.EntryFields {
	return domain.EntryFields{
		TopicOrPerson:    "Miracle cure",
		ShortDescription: "Herbal tea cures everything",
		URL:              "https://example.org/tea",
		Details:          "No clinical evidence supports the claim.",
	}
}

func TestNewDashboard_NeedsSession(t *testing.T) {
	_, err := NewDashboard(seeded(), Session{}, false)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestDashboard_LoadAndSearch(t *testing.T) {
	d, err := NewDashboard(seeded(), u1, false)
	require.NoError(t, err)

	v := d.Load(context.Background(), "hoax")
	assert.Len(t, v.Entries, 6)
	assert.True(t, v.Search.Searched)
	require.Len(t, v.Search.Results, 1)
	assert.Equal(t, "3", v.Search.Results[0].ID)
	assert.False(t, v.Loading)
	assert.Equal(t, "watcher", v.Session.Alias.Alias)
}

func TestDashboard_CreateRefreshes(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	d.Load(context.Background(), "miracle")
	assert.Empty(t, d.View().Search.Results)

	e, replayed, err := d.Create(context.Background(), fields(), "")
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "u1", e.UserID)

	v := d.View()
	require.Len(t, v.Entries, 7)
	assert.Equal(t, e.ID, v.Entries[0].ID, "refreshed list shows the new entry first")
	require.Len(t, v.Search.Results, 1, "active search follows the refresh")
	assert.Nil(t, v.Notice)
}

func TestDashboard_CreateIdempotent(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)

	a, replayed, err := d.Create(context.Background(), fields(), "key-1")
	require.NoError(t, err)
	assert.False(t, replayed)
	b, replayed, err := d.Create(context.Background(), fields(), "key-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, src.writes)
}

func TestDashboard_CreateInvalidNeverWrites(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	f := fields()
	f.Details = "   "

	_, _, err := d.Create(context.Background(), f, "")
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, services.FieldDetails, ve.Field)
	assert.Equal(t, 0, src.writes)
	require.NotNil(t, d.View().Notice)
}

func TestDashboard_UpdateOwnEntry(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	topic := "Vaccine rumor (debunked)"

	got, err := d.Update(context.Background(), "6", domain.EntryPatch{TopicOrPerson: &topic})
	require.NoError(t, err)
	assert.Equal(t, topic, got.TopicOrPerson)
	assert.Equal(t, topic, d.Entries()[0].TopicOrPerson)
	assert.Equal(t, 1, src.writes)
}

func TestDashboard_UpdateForeignOrMissing(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	topic := "hijacked"

	_, err := d.Update(context.Background(), "5", domain.EntryPatch{TopicOrPerson: &topic})
	var rf *services.RemoteFault
	require.ErrorAs(t, err, &rf)
	assert.ErrorIs(t, err, services.ErrNotOwner)

	_, err = d.Update(context.Background(), "nope", domain.EntryPatch{TopicOrPerson: &topic})
	assert.ErrorIs(t, err, services.ErrEntryNotFound)
	assert.Equal(t, 0, src.writes)
}

func TestDashboard_UpdateUnchanged(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	same := "Vaccine rumor"
	_, err := d.Update(context.Background(), "6", domain.EntryPatch{TopicOrPerson: &same})
	assert.ErrorIs(t, err, forms.ErrUnchanged)
	assert.Equal(t, 0, src.writes)
}

func TestDashboard_TwoStepDelete(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	ctx := context.Background()
	d.Load(ctx, "")

	conf, err := d.RequestDelete(ctx, "4")
	require.NoError(t, err)
	assert.NotEmpty(t, conf.Token)
	assert.Len(t, d.Entries(), 6, "requesting a delete removes nothing")

	// Ignoring or mangling the token keeps the entry.
	assert.ErrorIs(t, d.ConfirmDelete(ctx, "4", "wrong"), services.ErrDeleteNotConfirmed)
	require.NoError(t, d.Refresh(ctx))
	assert.Len(t, d.Entries(), 6)

	require.NoError(t, d.ConfirmDelete(ctx, "4", conf.Token))
	assert.Len(t, d.Entries(), 5)
	for _, e := range d.Entries() {
		assert.NotEqual(t, "4", e.ID)
	}

	_, err = d.RequestDelete(ctx, "5")
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestDashboard_RemoteFailureBecomesNotice(t *testing.T) {
	src := seeded()
	d, _ := NewDashboard(src, u1, false)
	v := d.Load(context.Background(), "")
	require.Len(t, v.Entries, 6)

	src.listErr = &services.RemoteFault{Op: "list entries", Err: errDown}
	v = d.Load(context.Background(), "")
	require.NotNil(t, v.Notice)
	assert.Equal(t, "error", v.Notice.Level)
	assert.False(t, v.Loading, "loading state is reset after a failure")
	assert.Len(t, v.Entries, 6, "previous list is kept")
}
