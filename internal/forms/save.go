package forms

import (
	"context"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// EntryWriter is the part of the entry service a form saves through.
type EntryWriter interface {
	Create(ctx context.Context, userID string, f domain.EntryFields) (*domain.Entry, error)
	Update(ctx context.Context, userID, id string, patch domain.EntryPatch) error
}

// SaveTo returns a SaveFunc that creates or updates through w on behalf of
// userID. When created is non-nil it receives the new entry.
func SaveTo(w EntryWriter, userID string, created func(*domain.Entry)) SaveFunc {
	return func(ctx context.Context, req SaveRequest) error {
		if req.Mode == ModeEdit {
			return w.Update(ctx, userID, req.EntryID, req.Patch)
		}
		e, err := w.Create(ctx, req.OwnerID, req.Fields)
		if err != nil {
			return err
		}
		if created != nil {
			created(e)
		}
		return nil
	}
}
