package search

import (
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// DefaultMinQueryRunes is the shortest trimmed query that triggers a search.
const DefaultMinQueryRunes = 3

// Result is the outcome of one filter run. Searched is false when the query
// did not pass the minimum-length gate; Matches is then empty.
type Result[T any] struct {
	Matches  []T  `json:"results"`
	Searched bool `json:"searched"`
}

// FilterOption configures Filter and Session.
type FilterOption func(*filterConfig)

type filterConfig struct {
	minRunes int
}

// WithMinQueryRunes changes the minimum trimmed query length. Values < 1 are
// ignored.
func WithMinQueryRunes(n int) FilterOption {
	return func(c *filterConfig) {
		if n >= 1 {
			c.minRunes = n
		}
	}
}

func newFilterConfig(opts []FilterOption) filterConfig {
	c := filterConfig{minRunes: DefaultMinQueryRunes}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Filter returns the items of corpus whose fields contain query, compared
// case-insensitively after trimming. Corpus order is preserved and there is
// no ranking. A query shorter than the minimum yields an empty, unsearched
// result regardless of the corpus.
func Filter[T any](query string, corpus []T, fields func(T) []string, opts ...FilterOption) Result[T] {
	cfg := newFilterConfig(opts)
	q, ok := gate(query, cfg.minRunes)
	if !ok {
		return Result[T]{Matches: []T{}}
	}
	out := make([]T, 0, len(corpus))
	for _, item := range corpus {
		if matchAny(q, fields(item)) {
			out = append(out, item)
		}
	}
	return Result[T]{Matches: out, Searched: true}
}

// EntryFields lists the entry fields the filter looks at. The URL is not
// searched.
func EntryFields(e domain.Entry) []string {
	return []string{e.TopicOrPerson, e.ShortDescription, e.Details}
}

// Entries filters entries by query over EntryFields.
func Entries(query string, corpus []domain.Entry, opts ...FilterOption) Result[domain.Entry] {
	return Filter(query, corpus, EntryFields, opts...)
}

// Ready reports whether query is long enough to run a search.
func Ready(query string, opts ...FilterOption) bool {
	_, ok := gate(query, newFilterConfig(opts).minRunes)
	return ok
}

// gate trims and lowercases query and reports whether it is long enough.
func gate(query string, minRunes int) (string, bool) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minRunes {
		return "", false
	}
	return strings.ToLower(q), true
}

func matchAny(q string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
