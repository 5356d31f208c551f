// Package services – EntryService
//
// This file implements EntryService, the application-level gateway to the
// entry store. It validates and normalizes input, bounds every store call by
// a timeout, translates repository errors into service errors, and gates
// permanent deletes behind a confirmation token.
//
// Every store failure reaches the caller as a *RemoteFault; nothing is
// retried here. Callers re-fetch the list after each successful mutation.
package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/observability"
	"github.com/tbourn/go-snitchon-backend/internal/repo"
)

// IdempotencyScopeCreate namespaces Idempotency-Key values used for entry creation.
const IdempotencyScopeCreate = "entries.create"

// EntryRepo defines the repository contract required by EntryService.
type EntryRepo interface {
	CreateEntry(ctx context.Context, db *gorm.DB, userID string, f domain.EntryFields) (*domain.Entry, error)
	ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error)
	ListRecentEntries(ctx context.Context, db *gorm.DB, limit int) ([]domain.Entry, error)
	GetEntry(ctx context.Context, db *gorm.DB, id string) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, patch domain.EntryPatch) error
	DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error
}

// IdempotencyRepo records which entry a create request produced so retries
// can be answered without writing twice.
type IdempotencyRepo interface {
	GetIdempotency(ctx context.Context, db *gorm.DB, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, db *gorm.DB, userID, scope, key, entryID string, status int, ttl time.Duration) (*domain.Idempotency, error)
}

// EntryService provides list, read and owner-only write access to entries.
type EntryService struct {
	DB   *gorm.DB
	Repo EntryRepo

	// Idem enables CreateOnce replay; nil disables it.
	Idem    IdempotencyRepo
	IdemTTL time.Duration

	// Confirm issues and checks delete confirmations.
	Confirm *DeleteConfirmer

	// Timeout bounds every store call.
	Timeout time.Duration
	// URLStrict requires absolute http(s) source URLs.
	URLStrict bool
}

// NewEntryService constructs an EntryService with default bounds.
func NewEntryService(db *gorm.DB, r EntryRepo, confirm *DeleteConfirmer) *EntryService {
	return &EntryService{
		DB:      db,
		Repo:    r,
		Confirm: confirm,
		Timeout: 5 * time.Second,
		IdemTTL: 24 * time.Hour,
	}
}

// List returns every entry, newest first.
func (s *EntryService) List(ctx context.Context) ([]domain.Entry, error) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "List")
	defer span.End()

	ctx, cancel := s.bound(ctx)
	defer cancel()

	out, err := s.Repo.ListEntries(ctx, s.DB)
	if err != nil {
		return nil, fault("list entries", err)
	}
	return out, nil
}

// ListRecent returns at most n entries, newest first.
func (s *EntryService) ListRecent(ctx context.Context, n int) ([]domain.Entry, error) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "ListRecent",
		trace.WithAttributes(attribute.Int("limit", n)),
	)
	defer span.End()

	if n <= 0 {
		return []domain.Entry{}, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	out, err := s.Repo.ListRecentEntries(ctx, s.DB, n)
	if err != nil {
		return nil, fault("list recent entries", err)
	}
	return out, nil
}

// Get returns one entry. A missing id yields ErrEntryNotFound (not a fault).
func (s *EntryService) Get(ctx context.Context, id string) (*domain.Entry, error) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("entry.id", id)),
	)
	defer span.End()

	ctx, cancel := s.bound(ctx)
	defer cancel()

	e, err := s.Repo.GetEntry(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fault("get entry", err)
	}
	return e, nil
}

// Create validates f and stores a new entry owned by userID.
func (s *EntryService) Create(ctx context.Context, userID string, f domain.EntryFields) (*domain.Entry, error) {
	e, _, err := s.CreateOnce(ctx, userID, "", f)
	return e, err
}

// CreateOnce behaves like Create, but when key is non-empty and a live
// record for (userID, key) exists, the entry created by the first request
// is returned with replayed=true and nothing is written.
func (s *EntryService) CreateOnce(ctx context.Context, userID, key string, f domain.EntryFields) (e *domain.Entry, replayed bool, err error) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if userID == "" {
		return nil, false, ErrUnauthenticated
	}
	f = NormalizeEntryFields(f)
	if err := ValidateEntryFields(f, s.URLStrict); err != nil {
		observability.EntryMutations.WithLabelValues("create", "invalid").Inc()
		return nil, false, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	prev, err := s.replay(ctx, userID, key)
	if err != nil {
		observability.EntryMutations.WithLabelValues("create", "conflict").Inc()
		return nil, false, err
	}
	if prev != nil {
		observability.EntryMutations.WithLabelValues("create", "replayed").Inc()
		return prev, true, nil
	}

	e, err = s.Repo.CreateEntry(ctx, s.DB, userID, f)
	if err != nil {
		observability.EntryMutations.WithLabelValues("create", "error").Inc()
		return nil, false, fault("create entry", err)
	}
	if key != "" && s.Idem != nil {
		// Best effort: a lost record only means a retry creates a second entry.
		if _, ierr := s.Idem.CreateIdempotency(ctx, s.DB, userID, IdempotencyScopeCreate, key, e.ID, http.StatusCreated, s.IdemTTL); ierr != nil {
			zerolog.Ctx(ctx).Warn().Err(ierr).Str("entry_id", e.ID).Msg("idempotency record not stored")
		}
	}

	observability.EntryMutations.WithLabelValues("create", "ok").Inc()
	zerolog.Ctx(ctx).Info().Str("entry_id", e.ID).Msg("entry created")
	return e, false, nil
}

// Update applies patch to the entry id owned by userID.
func (s *EntryService) Update(ctx context.Context, userID, id string, patch domain.EntryPatch) error {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("entry.id", id),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if userID == "" {
		return ErrUnauthenticated
	}
	patch = normalizePatch(patch)
	if err := ValidatePatch(patch, s.URLStrict); err != nil {
		observability.EntryMutations.WithLabelValues("update", "invalid").Inc()
		return err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.Repo.UpdateEntry(ctx, s.DB, id, userID, patch); err != nil {
		return s.mutationFault(ctx, "update", id, err)
	}
	observability.EntryMutations.WithLabelValues("update", "ok").Inc()
	zerolog.Ctx(ctx).Info().Str("entry_id", id).Msg("entry updated")
	return nil
}

// RequestDelete checks that userID owns id and returns a confirmation token
// that ConfirmDelete must be given. Nothing is deleted here; a token that is
// never presented leaves the entry intact.
func (s *EntryService) RequestDelete(ctx context.Context, userID, id string) (token string, expires time.Time, err error) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "RequestDelete",
		trace.WithAttributes(attribute.String("entry.id", id)),
	)
	defer span.End()

	if userID == "" {
		return "", time.Time{}, ErrUnauthenticated
	}
	e, err := s.Get(ctx, id)
	if errors.Is(err, ErrEntryNotFound) {
		return "", time.Time{}, fault("delete entry", ErrEntryNotFound)
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if e.UserID != userID {
		return "", time.Time{}, fault("delete entry", ErrNotOwner)
	}
	return s.Confirm.Issue(userID, id)
}

// ConfirmDelete permanently removes id once token proves the owner asked
// for it via RequestDelete.
func (s *EntryService) ConfirmDelete(ctx context.Context, userID, id, token string) error {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, "ConfirmDelete",
		trace.WithAttributes(attribute.String("entry.id", id)),
	)
	defer span.End()

	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.Confirm.Verify(token, userID, id); err != nil {
		observability.EntryMutations.WithLabelValues("delete", "invalid").Inc()
		return err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.Repo.DeleteEntry(ctx, s.DB, id, userID); err != nil {
		return s.mutationFault(ctx, "delete", id, err)
	}
	observability.EntryMutations.WithLabelValues("delete", "ok").Inc()
	zerolog.Ctx(ctx).Info().Str("entry_id", id).Msg("entry deleted")
	return nil
}

// replay returns the entry recorded for key, or nil when key is unused.
// A live record whose entry has since been deleted yields
// ErrIdempotencyKeyReused: the key already produced an entry and must not
// produce another.
func (s *EntryService) replay(ctx context.Context, userID, key string) (*domain.Entry, error) {
	if key == "" || s.Idem == nil {
		return nil, nil
	}
	rec, err := s.Idem.GetIdempotency(ctx, s.DB, userID, IdempotencyScopeCreate, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) || (err == nil && rec == nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fault("create entry", err)
	}
	e, err := s.Repo.GetEntry(ctx, s.DB, rec.EntryID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrIdempotencyKeyReused
	}
	if err != nil {
		return nil, fault("create entry", err)
	}
	return e, nil
}

func (s *EntryService) mutationFault(ctx context.Context, op, id string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		observability.EntryMutations.WithLabelValues(op, "not_found").Inc()
		err = ErrEntryNotFound
	case errors.Is(err, repo.ErrForbidden):
		observability.EntryMutations.WithLabelValues(op, "forbidden").Inc()
		err = ErrNotOwner
	default:
		observability.EntryMutations.WithLabelValues(op, "error").Inc()
		zerolog.Ctx(ctx).Error().Err(err).Str("entry_id", id).Str("op", op).Msg("entry mutation failed")
	}
	return fault(op+" entry", err)
}

func (s *EntryService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}
