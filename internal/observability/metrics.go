package observability

import "github.com/prometheus/client_golang/prometheus"

// Business counters. HTTP-level metrics live in the middleware package; these
// count what happened to the domain regardless of transport.
var (
	// EntryMutations counts entry writes by operation (create|update|delete)
	// and outcome (ok|invalid|forbidden|not_found|conflict|error|replayed).
	EntryMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snitchon_entry_mutations_total",
			Help: "Entry create/update/delete attempts by outcome.",
		},
		[]string{"op", "outcome"},
	)

	// SearchRequests counts filter runs, split by whether the query passed
	// the minimum-length gate.
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snitchon_search_requests_total",
			Help: "Entry searches by gate result.",
		},
		[]string{"searched"},
	)

	// LeaderboardDegraded counts leaderboard panels omitted because the
	// aggregate query failed.
	LeaderboardDegraded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snitchon_leaderboard_degraded_total",
			Help: "Leaderboard panels hidden after a query failure.",
		},
	)

	// SessionEvents counts sign-in and sign-out transitions by provider.
	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snitchon_session_events_total",
			Help: "Session transitions by kind and provider.",
		},
		[]string{"kind", "provider"},
	)
)

func init() {
	prometheus.MustRegister(EntryMutations, SearchRequests, LeaderboardDegraded, SessionEvents)
}
