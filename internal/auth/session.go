package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/observability"
)

// DefaultRedirect is where a completed sign-in lands when no usable target
// was given.
const DefaultRedirect = "/dashboard"

// EventKind distinguishes session transitions.
type EventKind string

const (
	SignedIn  EventKind = "sign_in"
	SignedOut EventKind = "sign_out"
)

// Event describes one session transition.
type Event struct {
	Kind      EventKind
	UserID    string
	SessionID string
	Provider  string
}

// Store is the persistence the session provider needs.
type Store interface {
	UpsertUser(ctx context.Context, db *gorm.DB, provider, subject, email string) (*domain.User, error)
	CreateSession(ctx context.Context, db *gorm.DB, userID string, ttl time.Duration) (*domain.Session, error)
	GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.Session, error)
	RevokeSession(ctx context.Context, db *gorm.DB, id string, now time.Time) error
}

// SignInRequest is the start of an authorization code flow. The caller keeps
// State and Redirect (in the OAuth state cookie) until the callback arrives.
type SignInRequest struct {
	URL      string
	State    string
	Redirect string
}

// SessionProvider resolves, creates and ends sessions and notifies
// subscribers of every transition.
type SessionProvider struct {
	DB        *gorm.DB
	Store     Store
	Tokens    *TokenService
	Providers map[string]Provider
	TTL       time.Duration
	Timeout   time.Duration

	now func() time.Time

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Event)
}

// NewSessionProvider wires a SessionProvider with default bounds.
func NewSessionProvider(db *gorm.DB, store Store, tokens *TokenService, providers map[string]Provider) *SessionProvider {
	return &SessionProvider{
		DB:        db,
		Store:     store,
		Tokens:    tokens,
		Providers: providers,
		TTL:       7 * 24 * time.Hour,
		Timeout:   5 * time.Second,
		now:       time.Now,
		listeners: map[int]func(Event){},
	}
}

// Current returns the live session behind token, or nil when the token is
// invalid or its session is unknown, expired or revoked.
func (p *SessionProvider) Current(ctx context.Context, token string) *domain.Session {
	claims, err := p.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	ctx, cancel := p.bound(ctx)
	defer cancel()

	s, err := p.Store.GetSession(ctx, p.DB, claims.SessionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("session_id", claims.SessionID).Msg("session lookup failed")
		}
		return nil
	}
	if s.UserID != claims.UserID || !s.Active(p.clock()) {
		return nil
	}
	return s
}

// OnChange registers fn for every sign-in and sign-out and returns a function
// that removes it. Listeners run synchronously on the goroutine that caused
// the transition.
func (p *SessionProvider) OnChange(fn func(Event)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listeners == nil {
		p.listeners = map[int]func(Event){}
	}
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// SignInURL starts the authorization code flow for provider. redirect is
// replaced by DefaultRedirect unless it is a local path.
func (p *SessionProvider) SignInURL(provider, redirect string) (SignInRequest, error) {
	prov, ok := p.Providers[provider]
	if !ok {
		return SignInRequest{}, ErrUnknownProvider
	}
	state, err := newState()
	if err != nil {
		return SignInRequest{}, err
	}
	return SignInRequest{
		URL:      prov.AuthCodeURL(state),
		State:    state,
		Redirect: LocalRedirect(redirect),
	}, nil
}

// CompleteSignIn exchanges code with provider, upserts the local user,
// creates the session row and returns it with its signed token.
func (p *SessionProvider) CompleteSignIn(ctx context.Context, provider, code string) (*domain.Session, string, error) {
	prov, ok := p.Providers[provider]
	if !ok {
		return nil, "", ErrUnknownProvider
	}
	ctx, span := otel.Tracer("auth/SessionProvider").Start(ctx, "CompleteSignIn",
		trace.WithAttributes(attribute.String("auth.provider", provider)),
	)
	defer span.End()

	id, err := prov.Exchange(ctx, code)
	if err != nil {
		observability.SessionEvents.WithLabelValues("sign_in_failed", provider).Inc()
		return nil, "", err
	}

	sctx, cancel := p.bound(ctx)
	defer cancel()

	u, err := p.Store.UpsertUser(sctx, p.DB, id.Provider, id.Subject, id.Email)
	if err != nil {
		return nil, "", fmt.Errorf("auth: upsert user: %w", err)
	}
	s, err := p.Store.CreateSession(sctx, p.DB, u.ID, p.TTL)
	if err != nil {
		return nil, "", fmt.Errorf("auth: create session: %w", err)
	}
	tok, err := p.Tokens.Issue(Claims{
		SessionID: s.ID,
		UserID:    u.ID,
		Provider:  provider,
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return nil, "", err
	}

	observability.SessionEvents.WithLabelValues(string(SignedIn), provider).Inc()
	zerolog.Ctx(ctx).Info().Str("user_id", u.ID).Str("provider", provider).Msg("signed in")
	p.notify(Event{Kind: SignedIn, UserID: u.ID, SessionID: s.ID, Provider: provider})
	return s, tok, nil
}

// SignOut revokes the session behind token. Signing out twice is harmless;
// only the first call notifies listeners.
func (p *SessionProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.Tokens.Parse(token)
	if err != nil {
		return err
	}
	ctx, cancel := p.bound(ctx)
	defer cancel()

	s, err := p.Store.GetSession(ctx, p.DB, claims.SessionID)
	if err != nil {
		return fmt.Errorf("auth: get session: %w", err)
	}
	if s.RevokedAt != nil {
		return nil
	}
	if err := p.Store.RevokeSession(ctx, p.DB, s.ID, p.clock()); err != nil {
		return fmt.Errorf("auth: revoke session: %w", err)
	}

	observability.SessionEvents.WithLabelValues(string(SignedOut), claims.Provider).Inc()
	zerolog.Ctx(ctx).Info().Str("user_id", s.UserID).Msg("signed out")
	p.notify(Event{Kind: SignedOut, UserID: s.UserID, SessionID: s.ID, Provider: claims.Provider})
	return nil
}

func (p *SessionProvider) notify(ev Event) {
	p.mu.Lock()
	fns := make([]func(Event), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (p *SessionProvider) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

func (p *SessionProvider) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.Timeout)
}

// LocalRedirect returns target when it is a path on this site and
// DefaultRedirect otherwise. Absolute URLs, scheme-relative URLs ("//host")
// and backslash tricks are rejected.
func LocalRedirect(target string) string {
	t := strings.TrimSpace(target)
	if t == "" || !strings.HasPrefix(t, "/") || strings.HasPrefix(t, "//") || strings.ContainsAny(t, "\\\r\n") {
		return DefaultRedirect
	}
	u, err := url.Parse(t)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return DefaultRedirect
	}
	return t
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
