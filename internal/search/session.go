package search

// Session follows one search box over time. Results are recomputed when the
// query or the corpus changes, but only while the current query passes the
// gate; dropping below it clears the results instead of leaving stale ones
// visible.
//
// A Session is not safe for concurrent use; each view owns its own.
type Session[T any] struct {
	fields func(T) []string
	opts   []FilterOption
	cfg    filterConfig

	query  string
	corpus []T
	active bool
	result Result[T]
}

// NewSession returns an idle session over items described by fields.
func NewSession[T any](fields func(T) []string, opts ...FilterOption) *Session[T] {
	return &Session[T]{
		fields: fields,
		opts:   opts,
		cfg:    newFilterConfig(opts),
		result: Result[T]{Matches: []T{}},
	}
}

// SetQuery updates the query and returns the current result.
func (s *Session[T]) SetQuery(q string) Result[T] {
	s.query = q
	_, s.active = gate(q, s.cfg.minRunes)
	s.recompute()
	return s.result
}

// SetCorpus replaces the corpus, for example after a refresh, and returns
// the current result. An idle session stays idle.
func (s *Session[T]) SetCorpus(corpus []T) Result[T] {
	s.corpus = corpus
	s.recompute()
	return s.result
}

// Query returns the query as last set.
func (s *Session[T]) Query() string { return s.query }

// Result returns the current result without recomputing.
func (s *Session[T]) Result() Result[T] { return s.result }

func (s *Session[T]) recompute() {
	if !s.active {
		s.result = Result[T]{Matches: []T{}}
		return
	}
	s.result = Filter(s.query, s.corpus, s.fields, s.opts...)
}
