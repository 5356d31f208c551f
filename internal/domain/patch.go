package domain

// EntryFields are the user-editable fields of an entry, as submitted on
// creation.
type EntryFields struct {
	TopicOrPerson    string `json:"topic_or_person"`
	ShortDescription string `json:"short_description"`
	URL              string `json:"url"`
	Details          string `json:"details"`
}

// EntryPatch is a partial update. Nil fields are left untouched.
type EntryPatch struct {
	TopicOrPerson    *string `json:"topic_or_person,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	URL              *string `json:"url,omitempty"`
	Details          *string `json:"details,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.TopicOrPerson == nil && p.ShortDescription == nil && p.URL == nil && p.Details == nil
}

// Columns returns the column -> value map of the present fields, suitable
// for gorm's Updates.
func (p EntryPatch) Columns() map[string]any {
	cols := make(map[string]any, 4)
	if p.TopicOrPerson != nil {
		cols["topic_or_person"] = *p.TopicOrPerson
	}
	if p.ShortDescription != nil {
		cols["short_description"] = *p.ShortDescription
	}
	if p.URL != nil {
		cols["url"] = *p.URL
	}
	if p.Details != nil {
		cols["details"] = *p.Details
	}
	return cols
}

// Apply returns a copy of e with the patch applied.
func (p EntryPatch) Apply(e Entry) Entry {
	if p.TopicOrPerson != nil {
		e.TopicOrPerson = *p.TopicOrPerson
	}
	if p.ShortDescription != nil {
		e.ShortDescription = *p.ShortDescription
	}
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Details != nil {
		e.Details = *p.Details
	}
	return e
}

// Fields returns the editable fields of e.
func (e Entry) Fields() EntryFields {
	return EntryFields{
		TopicOrPerson:    e.TopicOrPerson,
		ShortDescription: e.ShortDescription,
		URL:              e.URL,
		Details:          e.Details,
	}
}
