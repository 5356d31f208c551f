package domain

import "testing"

func strp(s string) *string { return &s }

func TestEntryPatch_EmptyAndColumns(t *testing.T) {
	if !(EntryPatch{}).Empty() {
		t.Fatalf("zero patch should be empty")
	}

	p := EntryPatch{Details: strp("new"), URL: strp("https://u")}
	if p.Empty() {
		t.Fatalf("patch with fields should not be empty")
	}
	cols := p.Columns()
	if len(cols) != 2 || cols["details"] != "new" || cols["url"] != "https://u" {
		t.Fatalf("unexpected columns: %#v", cols)
	}
}

func TestEntryPatch_Apply(t *testing.T) {
	e := Entry{TopicOrPerson: "a", ShortDescription: "b", URL: "c", Details: "d"}
	got := EntryPatch{ShortDescription: strp("B")}.Apply(e)
	if got.ShortDescription != "B" || got.TopicOrPerson != "a" || got.Details != "d" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if e.ShortDescription != "b" {
		t.Fatalf("Apply must not mutate its input")
	}
	if got.Fields().ShortDescription != "B" {
		t.Fatalf("Fields mismatch")
	}
}
