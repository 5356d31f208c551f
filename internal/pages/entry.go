package pages

import (
	"context"
	"html/template"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// EntryView is the detail page of one entry.
type EntryView struct {
	Session     Session       `json:"session"`
	Entry       *domain.Entry `json:"entry"`
	DetailsHTML template.HTML `json:"details_html"`
	CanEdit     bool          `json:"can_edit"`
}

// EntryDetail builds the detail page.
type EntryDetail struct {
	Entries  EntryReader
	Markdown *Markdown
}

// Load fetches id. services.ErrEntryNotFound is returned as is so the caller
// can show the not-found view; other failures are store faults.
func (p *EntryDetail) Load(ctx context.Context, sess Session, id string) (EntryView, error) {
	e, err := p.Entries.Get(ctx, id)
	if err != nil {
		return EntryView{Session: sess}, err
	}
	return EntryView{
		Session:     sess,
		Entry:       e,
		DetailsHTML: p.Markdown.Render(e.Details),
		CanEdit:     sess.SignedIn() && sess.UserID == e.UserID,
	}, nil
}
