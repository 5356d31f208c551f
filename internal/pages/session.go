// Package pages composes the screens of the site from the entry, alias and
// leaderboard services. Each controller is created per request with the
// viewer's Session and owns the entries it fetched; nothing is cached across
// requests. Service failures are turned into a Notice on the view instead of
// failing the whole page.
package pages

import (
	"context"
	"errors"
	"time"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/forms"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

// Session is the viewer of a page. The zero value is an anonymous visitor.
type Session struct {
	UserID string               `json:"user_id,omitempty"`
	Alias  services.AliasStatus `json:"alias"`
}

// SignedIn reports whether the viewer has a session.
func (s Session) SignedIn() bool { return s.UserID != "" }

// AliasResolver resolves the alias state of a user.
type AliasResolver interface {
	Resolve(ctx context.Context, userID string) (services.AliasStatus, error)
}

// ResolveSession builds the Session for userID ("" for anonymous). A
// failing alias lookup leaves the alias state unknown rather than failing;
// the returned notice describes it.
func ResolveSession(ctx context.Context, aliases AliasResolver, userID string) (Session, *Notice) {
	if userID == "" {
		return Session{Alias: services.AliasStatus{State: services.NoSession}}, nil
	}
	st, err := aliases.Resolve(ctx, userID)
	if err != nil {
		return Session{UserID: userID, Alias: services.AliasStatus{State: services.SessionNoAlias}}, NoticeFor(err)
	}
	return Session{UserID: userID, Alias: st}, nil
}

// Notice is a message shown on a view after something went wrong.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NoticeFor maps err to a user-facing notice. It returns nil for nil.
func NoticeFor(err error) *Notice {
	if err == nil {
		return nil
	}
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return &Notice{Level: "error", Message: ve.Error()}
	case errors.Is(err, services.ErrAliasTaken):
		return &Notice{Level: "error", Message: services.AliasTakenMessage}
	case errors.Is(err, forms.ErrUnchanged):
		return &Notice{Level: "info", Message: "Nothing changed."}
	case errors.Is(err, services.ErrNotOwner):
		return &Notice{Level: "error", Message: "You can only change entries you submitted."}
	case errors.Is(err, services.ErrEntryNotFound):
		return &Notice{Level: "error", Message: "That entry no longer exists."}
	case errors.Is(err, services.ErrDeleteNotConfirmed):
		return &Notice{Level: "error", Message: "The delete was not confirmed. The entry was kept."}
	case errors.Is(err, services.ErrUnauthenticated):
		return &Notice{Level: "error", Message: "Please sign in first."}
	case services.IsTimeout(err):
		return &Notice{Level: "error", Message: "The server took too long to respond. Please try again."}
	default:
		return &Notice{Level: "error", Message: "Something went wrong. Please try again."}
	}
}

// EntryReader is the read side of the entry service.
type EntryReader interface {
	List(ctx context.Context) ([]domain.Entry, error)
	ListRecent(ctx context.Context, n int) ([]domain.Entry, error)
	Get(ctx context.Context, id string) (*domain.Entry, error)
}

// EntryService is everything the dashboard needs from the entry service.
type EntryService interface {
	EntryReader
	forms.EntryWriter
	CreateOnce(ctx context.Context, userID, key string, f domain.EntryFields) (*domain.Entry, bool, error)
	RequestDelete(ctx context.Context, userID, id string) (string, time.Time, error)
	ConfirmDelete(ctx context.Context, userID, id, token string) error
}

// Leaderboard supplies the contributor panel. A nil result hides the panel.
type Leaderboard interface {
	Panel(ctx context.Context) []domain.Contributor
}

// SearchBlock is the visible search state of a view.
type SearchBlock struct {
	Query    string         `json:"query"`
	Searched bool           `json:"searched"`
	Results  []domain.Entry `json:"results"`
}
