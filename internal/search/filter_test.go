package search

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

func corpus() []domain.Entry {
	return []domain.Entry{
		{ID: "1", TopicOrPerson: "Senator Doe", ShortDescription: "Fake vaccine quote", Details: "Posted on a forum"},
		{ID: "2", TopicOrPerson: "Weather Agency", ShortDescription: "Doctored storm map", Details: "Image edited to exaggerate"},
		{ID: "3", TopicOrPerson: "Celebrity X", ShortDescription: "Hoax death report", Details: "Spread via VACCINE groups", URL: "https://storm.example"},
		{ID: "4", TopicOrPerson: "Ministry", ShortDescription: "Misquoted budget", Details: "Numbers taken out of context"},
	}
}

func idsOf(es []domain.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func TestFilter_GateBelowThreeRunes(t *testing.T) {
	for _, q := range []string{"", " ", "ab", "  ab  ", "éé", "\t\n"} {
		r := Entries(q, corpus())
		if r.Searched || len(r.Matches) != 0 {
			t.Fatalf("query %q should not search: %+v", q, r)
		}
		if r.Matches == nil {
			t.Fatalf("matches should be an empty slice, not nil")
		}
	}
}

func TestFilter_CaseInsensitiveAcrossThreeFields(t *testing.T) {
	r := Entries("VaCcInE", corpus())
	if !r.Searched {
		t.Fatalf("expected search to run")
	}
	if got := idsOf(r.Matches); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("unexpected matches %v", got)
	}

	// topic_or_person
	if got := idsOf(Entries("weather", corpus()).Matches); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("topic match failed: %v", got)
	}
	// details
	if got := idsOf(Entries("out of context", corpus()).Matches); !reflect.DeepEqual(got, []string{"4"}) {
		t.Fatalf("details match failed: %v", got)
	}
}

func TestFilter_URLIsNotSearched(t *testing.T) {
	// "storm" appears in entry 2's description and in entry 3's URL only.
	if got := idsOf(Entries("storm", corpus()).Matches); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("url must not be searched: %v", got)
	}
}

func TestFilter_PreservesCorpusOrderAndIsSubset(t *testing.T) {
	c := corpus()
	// Reverse the corpus: the result must follow it.
	rev := []domain.Entry{c[3], c[2], c[1], c[0]}
	got := idsOf(Entries("o", rev, WithMinQueryRunes(1)).Matches)
	want := []string{"4", "3", "2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order not preserved: got %v want %v", got, want)
	}

	for _, q := range []string{"quote", "map", "zzz", "report"} {
		r := Entries(q, c)
		if len(r.Matches) > len(c) {
			t.Fatalf("result larger than corpus")
		}
		for _, m := range r.Matches {
			found := false
			for _, e := range c {
				if e.ID == m.ID {
					found = true
				}
			}
			if !found {
				t.Fatalf("match %s not in corpus", m.ID)
			}
			hay := strings.ToLower(m.TopicOrPerson + "|" + m.ShortDescription + "|" + m.Details)
			if !strings.Contains(hay, q) {
				t.Fatalf("match %s does not contain %q", m.ID, q)
			}
		}
	}
}

func TestFilter_TrimsQuery(t *testing.T) {
	if got := idsOf(Entries("   hoax   ", corpus()).Matches); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("trimmed query should match: %v", got)
	}
}

func TestFilter_MinQueryOption(t *testing.T) {
	if r := Entries("hoax", corpus(), WithMinQueryRunes(5)); r.Searched {
		t.Fatalf("4-rune query should be gated at 5")
	}
	// Invalid option values are ignored.
	if r := Entries("ab", corpus(), WithMinQueryRunes(0)); r.Searched {
		t.Fatalf("min 0 must be ignored, default gate applies")
	}
}

func TestFilter_Generic(t *testing.T) {
	type page struct{ title string }
	pages := []page{{"About us"}, {"Trusted tools"}}
	r := Filter("TOOL", pages, func(p page) []string { return []string{p.title} })
	if !r.Searched || len(r.Matches) != 1 || r.Matches[0].title != "Trusted tools" {
		t.Fatalf("unexpected %+v", r)
	}
}

func TestReady(t *testing.T) {
	if Ready("ab") || Ready("   ab ") {
		t.Fatalf("2 runes must not be ready")
	}
	if !Ready(" abc ") {
		t.Fatalf("3 runes must be ready")
	}
	if Ready("abc", WithMinQueryRunes(4)) {
		t.Fatalf("option must apply")
	}
}
