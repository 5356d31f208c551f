// Package services – AliasService
//
// AliasService drives the alias assignment flow. After sign-in a user is
// either still without a public alias or already has one; the only way from
// the first state to the second is a successful Submit. A rejected Submit
// (invalid length, alias held by someone else, store failure) leaves the
// stored alias exactly as it was.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/repo"
)

// Alias length bounds, in runes after trimming.
const (
	AliasMinRunes = 3
	AliasMaxRunes = 30
)

// AliasState is where a visitor stands in the alias flow.
type AliasState int

const (
	// NoSession: nobody is signed in.
	NoSession AliasState = iota
	// SessionNoAlias: signed in, no profile yet.
	SessionNoAlias
	// SessionWithAlias: signed in with a stored alias.
	SessionWithAlias
)

func (s AliasState) String() string {
	switch s {
	case SessionNoAlias:
		return "session_no_alias"
	case SessionWithAlias:
		return "session_with_alias"
	default:
		return "no_session"
	}
}

// MarshalText renders the state by name in JSON.
func (s AliasState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a state name. Unknown names read as NoSession.
func (s *AliasState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "session_no_alias":
		*s = SessionNoAlias
	case "session_with_alias":
		*s = SessionWithAlias
	default:
		*s = NoSession
	}
	return nil
}

// AliasStatus is the resolved alias state plus the current alias, if any.
type AliasStatus struct {
	State AliasState `json:"state"`
	Alias string     `json:"alias,omitempty"`
}

// ProfileRepo defines the repository contract required by AliasService.
type ProfileRepo interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, db *gorm.DB, userID, alias, aliasKey string) (*domain.Profile, error)
}

// AliasService reads and assigns contributor aliases.
type AliasService struct {
	DB   *gorm.DB
	Repo ProfileRepo

	// CaseInsensitive makes "Watcher" and "watcher" the same alias.
	CaseInsensitive bool
	Timeout         time.Duration
}

// NewAliasService constructs an AliasService with default bounds.
func NewAliasService(db *gorm.DB, r ProfileRepo) *AliasService {
	return &AliasService{DB: db, Repo: r, Timeout: 5 * time.Second}
}

// Resolve determines the alias state of userID. An empty userID means no
// session.
func (s *AliasService) Resolve(ctx context.Context, userID string) (AliasStatus, error) {
	if userID == "" {
		return AliasStatus{State: NoSession}, nil
	}
	ctx, span := otel.Tracer("services/AliasService").Start(ctx, "Resolve",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	ctx, cancel := s.bound(ctx)
	defer cancel()

	p, err := s.Repo.GetProfile(ctx, s.DB, userID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return AliasStatus{State: SessionNoAlias}, nil
	case err != nil:
		return AliasStatus{}, fault("get profile", err)
	}
	return AliasStatus{State: SessionWithAlias, Alias: p.Alias}, nil
}

// Submit assigns alias to userID, creating the profile on first use and
// updating it in place afterwards. Conflicts yield ErrAliasTaken.
func (s *AliasService) Submit(ctx context.Context, userID, alias string) (AliasStatus, error) {
	ctx, span := otel.Tracer("services/AliasService").Start(ctx, "Submit",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if userID == "" {
		return AliasStatus{State: NoSession}, ErrUnauthenticated
	}
	alias = clean(alias)
	if n := utf8.RuneCountInString(alias); n < AliasMinRunes || n > AliasMaxRunes {
		return AliasStatus{}, &ValidationError{
			Field:   FieldAlias,
			Message: fmt.Sprintf("must be between %d and %d characters", AliasMinRunes, AliasMaxRunes),
		}
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	p, err := s.Repo.UpsertProfile(ctx, s.DB, userID, alias, s.Key(alias))
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return AliasStatus{}, ErrAliasTaken
	case err != nil:
		return AliasStatus{}, fault("save profile", err)
	}
	zerolog.Ctx(ctx).Info().Str("alias", p.Alias).Msg("alias set")
	return AliasStatus{State: SessionWithAlias, Alias: p.Alias}, nil
}

// Key returns the value alias uniqueness is enforced on.
func (s *AliasService) Key(alias string) string {
	alias = clean(alias)
	if s.CaseInsensitive {
		return cases.Fold().String(alias)
	}
	return alias
}

func (s *AliasService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}
