package pages

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

// fakeEntries is an in-memory EntryService. Newest entries come first.
type fakeEntries struct {
	mu      sync.Mutex
	rows    []domain.Entry
	seq     int
	idem    map[string]string
	tokens  map[string]string // token -> entry id
	listErr error
	failAll error

	listCalls   int
	recentCalls int
	writes      int
}

func newFakeEntries(seed ...domain.Entry) *fakeEntries {
	return &fakeEntries{rows: seed, idem: map[string]string{}, tokens: map[string]string{}}
}

func (f *fakeEntries) List(context.Context) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]domain.Entry(nil), f.rows...), nil
}

func (f *fakeEntries) ListRecent(_ context.Context, n int) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentCalls++
	if f.failAll != nil {
		return nil, f.failAll
	}
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return append([]domain.Entry(nil), f.rows[:n]...), nil
}

func (f *fakeEntries) Get(_ context.Context, id string) (*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, e := range f.rows {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, services.ErrEntryNotFound
}

func (f *fakeEntries) Create(_ context.Context, userID string, in domain.EntryFields) (*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, &services.RemoteFault{Op: "create entry", Err: f.failAll}
	}
	f.writes++
	f.seq++
	e := domain.Entry{
		ID: "n" + strconv.Itoa(f.seq), UserID: userID,
		TopicOrPerson: in.TopicOrPerson, ShortDescription: in.ShortDescription, URL: in.URL, Details: in.Details,
		CreatedAt: time.Now(),
	}
	f.rows = append([]domain.Entry{e}, f.rows...)
	return &e, nil
}

func (f *fakeEntries) CreateOnce(ctx context.Context, userID, key string, in domain.EntryFields) (*domain.Entry, bool, error) {
	f.mu.Lock()
	id, ok := f.idem[userID+"|"+key]
	f.mu.Unlock()
	if ok {
		e, err := f.Get(ctx, id)
		return e, true, err
	}
	e, err := f.Create(ctx, userID, in)
	if err != nil {
		return nil, false, err
	}
	f.mu.Lock()
	f.idem[userID+"|"+key] = e.ID
	f.mu.Unlock()
	return e, false, nil
}

func (f *fakeEntries) find(id string) (int, error) {
	for i, e := range f.rows {
		if e.ID == id {
			return i, nil
		}
	}
	return -1, services.ErrEntryNotFound
}

func (f *fakeEntries) Update(_ context.Context, userID, id string, p domain.EntryPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return &services.RemoteFault{Op: "update entry", Err: f.failAll}
	}
	i, err := f.find(id)
	if err != nil {
		return &services.RemoteFault{Op: "update entry", Err: err}
	}
	if f.rows[i].UserID != userID {
		return &services.RemoteFault{Op: "update entry", Err: services.ErrNotOwner}
	}
	f.writes++
	f.rows[i] = p.Apply(f.rows[i])
	return nil
}

func (f *fakeEntries) RequestDelete(_ context.Context, userID, id string) (string, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(id)
	if err != nil {
		return "", time.Time{}, &services.RemoteFault{Op: "delete entry", Err: err}
	}
	if f.rows[i].UserID != userID {
		return "", time.Time{}, &services.RemoteFault{Op: "delete entry", Err: services.ErrNotOwner}
	}
	tok := "tok-" + id
	f.tokens[tok] = id
	return tok, time.Now().Add(time.Minute), nil
}

func (f *fakeEntries) ConfirmDelete(_ context.Context, userID, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokens[token] != id {
		return services.ErrDeleteNotConfirmed
	}
	i, err := f.find(id)
	if err != nil {
		return &services.RemoteFault{Op: "delete entry", Err: err}
	}
	if f.rows[i].UserID != userID {
		return &services.RemoteFault{Op: "delete entry", Err: services.ErrNotOwner}
	}
	f.writes++
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	delete(f.tokens, token)
	return nil
}

type fakeBoard struct{ rows []domain.Contributor }

func (b fakeBoard) Panel(context.Context) []domain.Contributor { return b.rows }

type fakeAliases struct {
	status services.AliasStatus
	err    error
}

func (a fakeAliases) Resolve(context.Context, string) (services.AliasStatus, error) {
	return a.status, a.err
}

var errDown = errors.New("store unreachable")

func entry(id, owner, topic string) domain.Entry {
	return domain.Entry{
		ID: id, UserID: owner, TopicOrPerson: topic,
		ShortDescription: "desc " + id, URL: "https://example.org/" + id, Details: "details " + id,
	}
}
