package pages

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/forms"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

// DashboardView is the signed-in workspace.
type DashboardView struct {
	Session Session        `json:"session"`
	Entries []domain.Entry `json:"entries"`
	Search  SearchBlock    `json:"search"`
	Loading bool           `json:"loading"`
	Notice  *Notice        `json:"notice,omitempty"`
}

// DeleteConfirmation is the first step of a delete. The entry is untouched
// until the token is presented back.
type DeleteConfirmation struct {
	EntryID   string    `json:"entry_id"`
	Token     string    `json:"confirm_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Dashboard is the controller for one signed-in viewer. It owns the entry
// list it fetched and refreshes it after every successful mutation.
type Dashboard struct {
	svc       EntryService
	sess      Session
	strictURL bool

	entries []domain.Entry
	search  *search.Session[domain.Entry]
	form    *forms.EntryForm
	loading bool
	notice  *Notice
}

// NewDashboard returns a dashboard for sess, or ErrUnauthenticated when
// nobody is signed in.
func NewDashboard(svc EntryService, sess Session, strictURL bool, opts ...search.FilterOption) (*Dashboard, error) {
	if !sess.SignedIn() {
		return nil, services.ErrUnauthenticated
	}
	return &Dashboard{
		svc:       svc,
		sess:      sess,
		strictURL: strictURL,
		search:    search.NewSession(search.EntryFields, opts...),
		form:      forms.NewEntryForm(sess.UserID, strictURL),
	}, nil
}

// Load refreshes the list and applies query.
func (d *Dashboard) Load(ctx context.Context, query string) DashboardView {
	if err := d.Refresh(ctx); err != nil {
		d.notice = NoticeFor(err)
	}
	res := d.search.SetQuery(query)
	countSearch(query, res.Searched)
	return d.View()
}

// Refresh re-fetches the full list. On failure the previous list is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.loading = true
	defer func() { d.loading = false }()

	list, err := d.svc.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("dashboard refresh failed")
		return err
	}
	d.entries = list
	d.search.SetCorpus(list)
	return nil
}

// View returns the current state.
func (d *Dashboard) View() DashboardView {
	entries := d.entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	res := d.search.Result()
	return DashboardView{
		Session: d.sess,
		Entries: entries,
		Search:  SearchBlock{Query: d.search.Query(), Searched: res.Searched, Results: res.Matches},
		Loading: d.loading,
		Notice:  d.notice,
	}
}

// Entries returns the list as last fetched.
func (d *Dashboard) Entries() []domain.Entry { return d.entries }

// Create submits a new entry through the form and refreshes. With a
// non-empty idempotency key a repeated submission returns the entry created
// the first time; replayed reports that case.
func (d *Dashboard) Create(ctx context.Context, f domain.EntryFields, idemKey string) (e *domain.Entry, replayed bool, err error) {
	d.form.Open(nil)
	d.form.SetValues(f)

	save := func(ctx context.Context, req forms.SaveRequest) error {
		var err error
		if idemKey != "" {
			e, replayed, err = d.svc.CreateOnce(ctx, req.OwnerID, idemKey, req.Fields)
		} else {
			e, err = d.svc.Create(ctx, req.OwnerID, req.Fields)
		}
		return err
	}
	if err := d.form.Submit(ctx, save); err != nil {
		d.notice = NoticeFor(err)
		return nil, false, err
	}
	d.refreshAfterMutation(ctx)
	return e, replayed, nil
}

// Update edits entry id with the fields present in patch and refreshes.
// The entry is looked up first so the form can tell what changed.
func (d *Dashboard) Update(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error) {
	cur, err := d.svc.Get(ctx, id)
	if err != nil {
		d.notice = NoticeFor(err)
		return nil, err
	}
	if cur.UserID != d.sess.UserID {
		err := &services.RemoteFault{Op: "update entry", Err: services.ErrNotOwner}
		d.notice = NoticeFor(err)
		return nil, err
	}
	d.form.Open(cur)
	d.form.SetValues(patch.Apply(*cur).Fields())

	if err := d.form.Submit(ctx, forms.SaveTo(d.svc, d.sess.UserID, nil)); err != nil {
		d.notice = NoticeFor(err)
		return nil, err
	}
	d.refreshAfterMutation(ctx)

	updated := patch.Apply(*cur)
	for _, e := range d.entries {
		if e.ID == id {
			updated = e
			break
		}
	}
	return &updated, nil
}

// RequestDelete issues the confirmation for deleting id. Nothing is deleted.
func (d *Dashboard) RequestDelete(ctx context.Context, id string) (DeleteConfirmation, error) {
	tok, exp, err := d.svc.RequestDelete(ctx, d.sess.UserID, id)
	if err != nil {
		d.notice = NoticeFor(err)
		return DeleteConfirmation{}, err
	}
	return DeleteConfirmation{EntryID: id, Token: tok, ExpiresAt: exp}, nil
}

// ConfirmDelete permanently deletes id when token confirms it, then
// refreshes.
func (d *Dashboard) ConfirmDelete(ctx context.Context, id, token string) error {
	if err := d.svc.ConfirmDelete(ctx, d.sess.UserID, id, token); err != nil {
		d.notice = NoticeFor(err)
		return err
	}
	d.refreshAfterMutation(ctx)
	return nil
}

// refreshAfterMutation waits for the re-fetch. A failed refresh does not
// undo the mutation; it only leaves a notice.
func (d *Dashboard) refreshAfterMutation(ctx context.Context) {
	if err := d.Refresh(ctx); err != nil {
		d.notice = NoticeFor(err)
		return
	}
	d.notice = nil
}
