// Package forms holds the entry form used to create and edit entries. The
// form validates input and computes what changed, but never persists
// anything itself: the caller supplies the save step and owns error handling
// and refresh timing.
package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

// Mode tells whether the form creates a new entry or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

var (
	// ErrClosed is returned when submitting a form that is not open.
	ErrClosed = errors.New("form is not open")
	// ErrUnchanged is returned when an edit is submitted without changes.
	ErrUnchanged = errors.New("no changes to save")
)

// SaveRequest is what the form hands to the save step.
type SaveRequest struct {
	Mode Mode
	// OwnerID attributes a new entry to its submitter. Create mode only.
	OwnerID string
	// EntryID is the entry being edited. Edit mode only.
	EntryID string
	// Fields are the current, normalized values of all four fields.
	Fields domain.EntryFields
	// Patch holds only the fields that differ from the entry being edited.
	Patch domain.EntryPatch
}

// SaveFunc persists a submitted form.
type SaveFunc func(ctx context.Context, req SaveRequest) error

// EntryForm is one form instance. It is not safe for concurrent use.
type EntryForm struct {
	ownerID   string
	strictURL bool

	open     bool
	original *domain.Entry
	values   domain.EntryFields
}

// NewEntryForm returns a closed form for ownerID.
func NewEntryForm(ownerID string, strictURL bool) *EntryForm {
	return &EntryForm{ownerID: ownerID, strictURL: strictURL}
}

// Open (re)opens the form. With a nil entry the form is in create mode and
// starts blank; otherwise it edits a copy of existing. Unsaved values from a
// previous session are always discarded.
func (f *EntryForm) Open(existing *domain.Entry) {
	f.open = true
	f.sync(existing)
}

// Close closes the form and discards unsaved values. The target entry is
// kept so that a later Open(nil) can be told apart from re-opening.
func (f *EntryForm) Close() {
	f.open = false
	f.sync(f.original)
}

func (f *EntryForm) sync(existing *domain.Entry) {
	if existing == nil {
		f.original = nil
		f.values = domain.EntryFields{}
		return
	}
	cp := *existing
	f.original = &cp
	f.values = cp.Fields()
}

// IsOpen reports whether the form is open.
func (f *EntryForm) IsOpen() bool { return f.open }

// Mode reports the current mode.
func (f *EntryForm) Mode() Mode {
	if f.original != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Values returns the current, unnormalized field values.
func (f *EntryForm) Values() domain.EntryFields { return f.values }

// SetValues replaces all four field values.
func (f *EntryForm) SetValues(v domain.EntryFields) { f.values = v }

// Set changes one field by its wire name.
func (f *EntryForm) Set(field, value string) error {
	switch field {
	case services.FieldTopicOrPerson:
		f.values.TopicOrPerson = value
	case services.FieldShortDescription:
		f.values.ShortDescription = value
	case services.FieldURL:
		f.values.URL = value
	case services.FieldDetails:
		f.values.Details = value
	default:
		return fmt.Errorf("forms: unknown field %q", field)
	}
	return nil
}

// Validate checks the current values. It returns a *services.ValidationError
// naming the first failing field.
func (f *EntryForm) Validate() error {
	return services.ValidateEntryFields(f.values, f.strictURL)
}

// CanSubmit reports whether Submit would reach the save step.
func (f *EntryForm) CanSubmit() bool {
	return f.open && f.Validate() == nil
}

// Patch returns the fields whose normalized value differs from the entry
// being edited. In create mode every field is included.
func (f *EntryForm) Patch() domain.EntryPatch {
	cur := services.NormalizeEntryFields(f.values)
	if f.original == nil {
		return domain.EntryPatch{
			TopicOrPerson:    &cur.TopicOrPerson,
			ShortDescription: &cur.ShortDescription,
			URL:              &cur.URL,
			Details:          &cur.Details,
		}
	}
	was := f.original.Fields()
	var p domain.EntryPatch
	if cur.TopicOrPerson != was.TopicOrPerson {
		p.TopicOrPerson = &cur.TopicOrPerson
	}
	if cur.ShortDescription != was.ShortDescription {
		p.ShortDescription = &cur.ShortDescription
	}
	if cur.URL != was.URL {
		p.URL = &cur.URL
	}
	if cur.Details != was.Details {
		p.Details = &cur.Details
	}
	return p
}

// Submit validates the form and passes the current values to save. Invalid
// forms never reach save. On success the form closes; on a save error it
// stays open with the values intact so the user can retry.
func (f *EntryForm) Submit(ctx context.Context, save SaveFunc) error {
	if !f.open {
		return ErrClosed
	}
	if err := f.Validate(); err != nil {
		return err
	}

	req := SaveRequest{
		Mode:   f.Mode(),
		Fields: services.NormalizeEntryFields(f.values),
		Patch:  f.Patch(),
	}
	if req.Mode == ModeCreate {
		req.OwnerID = f.ownerID
	} else {
		req.EntryID = f.original.ID
		if req.Patch.Empty() {
			return ErrUnchanged
		}
	}

	if err := save(ctx, req); err != nil {
		return err
	}
	f.open = false
	return nil
}
