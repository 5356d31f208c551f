package search

import (
	"reflect"
	"testing"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

func TestSession_RecomputesOnQueryAndCorpusChange(t *testing.T) {
	s := NewSession(EntryFields)
	c := corpus()

	// Corpus arrives before any query: idle.
	if r := s.SetCorpus(c[:2]); r.Searched || len(r.Matches) != 0 {
		t.Fatalf("idle session should not search: %+v", r)
	}

	r := s.SetQuery("vaccine")
	if !r.Searched || !reflect.DeepEqual(idsOf(r.Matches), []string{"1"}) {
		t.Fatalf("unexpected after query: %+v", r)
	}

	// Refresh adds entry 3, which also matches.
	r = s.SetCorpus(c)
	if !reflect.DeepEqual(idsOf(r.Matches), []string{"1", "3"}) {
		t.Fatalf("corpus change should recompute: %v", idsOf(r.Matches))
	}
	if !reflect.DeepEqual(s.Result(), r) || s.Query() != "vaccine" {
		t.Fatalf("Result/Query accessors out of sync")
	}
}

func TestSession_ShrinkingBelowGateClears(t *testing.T) {
	s := NewSession(EntryFields)
	s.SetCorpus(corpus())
	if r := s.SetQuery("hoax"); !r.Searched {
		t.Fatalf("expected search")
	}

	r := s.SetQuery("ho")
	if r.Searched || len(r.Matches) != 0 {
		t.Fatalf("shrinking below the gate must clear results: %+v", r)
	}

	// Corpus changes while idle do not resurrect stale results.
	r = s.SetCorpus(append(corpus(), domain.Entry{ID: "5", TopicOrPerson: "hoax"}))
	if r.Searched || len(r.Matches) != 0 {
		t.Fatalf("idle session must stay idle on refresh: %+v", r)
	}

	// Growing past the gate again starts a new session over the new corpus.
	r = s.SetQuery("hoax")
	if !reflect.DeepEqual(idsOf(r.Matches), []string{"3", "5"}) {
		t.Fatalf("unexpected %v", idsOf(r.Matches))
	}
}

func TestSession_Options(t *testing.T) {
	s := NewSession(EntryFields, WithMinQueryRunes(6))
	s.SetCorpus(corpus())
	if r := s.SetQuery("senat"); r.Searched {
		t.Fatalf("5 runes should be gated at 6")
	}
	if r := s.SetQuery("senato"); !r.Searched || len(r.Matches) != 1 {
		t.Fatalf("unexpected %+v", r)
	}
}
