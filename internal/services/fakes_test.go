package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/repo"
)

// memEntryRepo is an in-memory EntryRepo with the same ownership and
// not-found semantics as the GORM repository.
type memEntryRepo struct {
	mu      sync.Mutex
	rows    map[string]domain.Entry
	seq     int
	clock   time.Time
	calls   int
	failAll error
	block   bool // wait for ctx cancellation on every call
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{rows: map[string]domain.Entry{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *memEntryRepo) enter(ctx context.Context) error {
	r.mu.Lock()
	r.calls++
	fail, block := r.failAll, r.block
	r.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return fail
}

func (r *memEntryRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memEntryRepo) CreateEntry(ctx context.Context, _ *gorm.DB, userID string, f domain.EntryFields) (*domain.Entry, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := r.tick()
	e := domain.Entry{
		ID: "e" + strconv.Itoa(r.seq), UserID: userID,
		TopicOrPerson: f.TopicOrPerson, ShortDescription: f.ShortDescription, URL: f.URL, Details: f.Details,
		CreatedAt: now, UpdatedAt: now,
	}
	r.rows[e.ID] = e
	return &e, nil
}

func (r *memEntryRepo) ListEntries(ctx context.Context, _ *gorm.DB) ([]domain.Entry, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Entry, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memEntryRepo) ListRecentEntries(ctx context.Context, db *gorm.DB, limit int) ([]domain.Entry, error) {
	out, err := r.ListEntries(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memEntryRepo) GetEntry(ctx context.Context, _ *gorm.DB, id string) (*domain.Entry, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (r *memEntryRepo) UpdateEntry(ctx context.Context, _ *gorm.DB, id, userID string, p domain.EntryPatch) error {
	if err := r.enter(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	switch {
	case !ok:
		return repo.ErrNotFound
	case e.UserID != userID:
		return repo.ErrForbidden
	}
	e = p.Apply(e)
	e.UpdatedAt = r.tick()
	r.rows[id] = e
	return nil
}

func (r *memEntryRepo) DeleteEntry(ctx context.Context, _ *gorm.DB, id, userID string) error {
	if err := r.enter(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	switch {
	case !ok:
		return repo.ErrNotFound
	case e.UserID != userID:
		return repo.ErrForbidden
	}
	delete(r.rows, id)
	return nil
}

// memIdemRepo stores idempotency records keyed by user/scope/key.
type memIdemRepo struct {
	rows map[string]domain.Idempotency
}

func (r *memIdemRepo) GetIdempotency(_ context.Context, _ *gorm.DB, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	rec, ok := r.rows[userID+"|"+scope+"|"+key]
	if !ok || !rec.ExpiresAt.After(now) {
		return nil, repo.ErrNotFound
	}
	return &rec, nil
}

func (r *memIdemRepo) CreateIdempotency(_ context.Context, _ *gorm.DB, userID, scope, key, entryID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	k := userID + "|" + scope + "|" + key
	if _, ok := r.rows[k]; ok {
		return nil, repo.ErrDuplicate
	}
	rec := domain.Idempotency{UserID: userID, Scope: scope, Key: key, EntryID: entryID, Status: status, ExpiresAt: time.Now().Add(ttl)}
	r.rows[k] = rec
	return &rec, nil
}

// fakeProfileRepo captures upserts and enforces alias-key uniqueness.
type fakeProfileRepo struct {
	byUser  map[string]domain.Profile
	getErr  error
	saveErr error

	upsertKey string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[string]domain.Profile{}}
}

func (r *fakeProfileRepo) GetProfile(_ context.Context, _ *gorm.DB, userID string) (*domain.Profile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) UpsertProfile(_ context.Context, _ *gorm.DB, userID, alias, aliasKey string) (*domain.Profile, error) {
	r.upsertKey = aliasKey
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	for uid, p := range r.byUser {
		if uid != userID && p.AliasKey == aliasKey {
			return nil, repo.ErrDuplicate
		}
	}
	p := domain.Profile{UserID: userID, Alias: alias, AliasKey: aliasKey}
	r.byUser[userID] = p
	return &p, nil
}

type fakeStatsRepo struct {
	rows  []domain.Contributor
	err   error
	limit int
}

func (r *fakeStatsRepo) TopContributors(_ context.Context, _ *gorm.DB, limit int) ([]domain.Contributor, error) {
	r.limit = limit
	if r.err != nil {
		return nil, r.err
	}
	if len(r.rows) > limit {
		return r.rows[:limit], nil
	}
	return r.rows, nil
}
