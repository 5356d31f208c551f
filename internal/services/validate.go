package services

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// Field names as they appear on the wire and in ValidationError.Field.
const (
	FieldTopicOrPerson    = "topic_or_person"
	FieldShortDescription = "short_description"
	FieldURL              = "url"
	FieldDetails          = "details"
	FieldAlias            = "alias"
)

// NormalizeEntryFields trims surrounding whitespace and applies Unicode NFC
// so equal-looking text is stored identically.
func NormalizeEntryFields(f domain.EntryFields) domain.EntryFields {
	return domain.EntryFields{
		TopicOrPerson:    clean(f.TopicOrPerson),
		ShortDescription: clean(f.ShortDescription),
		URL:              strings.TrimSpace(f.URL),
		Details:          clean(f.Details),
	}
}

// ValidateEntryFields requires every field to be non-empty after trimming.
// With strictURL the url must also be an absolute http(s) URL. The first
// failing field, in form order, is reported.
func ValidateEntryFields(f domain.EntryFields, strictURL bool) error {
	if err := required(FieldTopicOrPerson, f.TopicOrPerson); err != nil {
		return err
	}
	if err := required(FieldShortDescription, f.ShortDescription); err != nil {
		return err
	}
	if err := checkURL(f.URL, strictURL); err != nil {
		return err
	}
	return required(FieldDetails, f.Details)
}

// ValidatePatch applies the same rules to the fields present in p. An empty
// patch is rejected.
func ValidatePatch(p domain.EntryPatch, strictURL bool) error {
	if p.Empty() {
		return &ValidationError{Field: "patch", Message: "nothing to update"}
	}
	if p.TopicOrPerson != nil {
		if err := required(FieldTopicOrPerson, *p.TopicOrPerson); err != nil {
			return err
		}
	}
	if p.ShortDescription != nil {
		if err := required(FieldShortDescription, *p.ShortDescription); err != nil {
			return err
		}
	}
	if p.URL != nil {
		if err := checkURL(*p.URL, strictURL); err != nil {
			return err
		}
	}
	if p.Details != nil {
		return required(FieldDetails, *p.Details)
	}
	return nil
}

// normalizePatch trims the present fields of p.
func normalizePatch(p domain.EntryPatch) domain.EntryPatch {
	out := domain.EntryPatch{}
	if p.TopicOrPerson != nil {
		v := clean(*p.TopicOrPerson)
		out.TopicOrPerson = &v
	}
	if p.ShortDescription != nil {
		v := clean(*p.ShortDescription)
		out.ShortDescription = &v
	}
	if p.URL != nil {
		v := strings.TrimSpace(*p.URL)
		out.URL = &v
	}
	if p.Details != nil {
		v := clean(*p.Details)
		out.Details = &v
	}
	return out
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	return nil
}

func checkURL(v string, strict bool) error {
	if err := required(FieldURL, v); err != nil {
		return err
	}
	if !strict {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: FieldURL, Message: "must be an absolute http(s) URL"}
	}
	return nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
