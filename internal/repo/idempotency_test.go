package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

func TestGetIdempotency_BlankScopeOrKey(t *testing.T) {
	db := newRepoDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	if rec, err := GetIdempotency(bg, db, "u1", "   ", "k1", now); rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for blank scope, got (%v, %v)", rec, err)
	}
	if rec, err := GetIdempotency(bg, db, "u1", "entries", "", now); rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for blank key, got (%v, %v)", rec, err)
	}
}

func TestIdempotency_CreateGetExpireDuplicate(t *testing.T) {
	db := newRepoDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	rec, err := CreateIdempotency(bg, db, "u1", "entries", "k1", "e1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.ExpiresAt.Before(now) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(bg, db, "u1", "entries", "k1", now)
	if err != nil || got.EntryID != "e1" || got.Status != 201 {
		t.Fatalf("GetIdempotency: %+v err=%v", got, err)
	}

	// Different user, same key: independent.
	if _, err := GetIdempotency(bg, db, "u2", "entries", "k1", now); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	// Past expiry: invisible.
	if _, err := GetIdempotency(bg, db, "u1", "entries", "k1", now.Add(2*time.Hour)); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}

	if _, err := CreateIdempotency(bg, db, "u1", "entries", "k1", "e2", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateIdempotency_NoTable(t *testing.T) {
	db := newRepoDB(t)
	if _, err := CreateIdempotency(bg, db, "u1", "entries", "k", "e", 201, time.Hour); err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected a plain DB error, got %v", err)
	}
}
