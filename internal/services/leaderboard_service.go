package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/observability"
)

// StatsRepo defines the aggregate queries required by LeaderboardService.
type StatsRepo interface {
	TopContributors(ctx context.Context, db *gorm.DB, limit int) ([]domain.Contributor, error)
}

// LeaderboardService ranks contributors by entry count.
type LeaderboardService struct {
	DB      *gorm.DB
	Repo    StatsRepo
	Limit   int
	Timeout time.Duration
}

// NewLeaderboardService constructs a LeaderboardService showing the top five.
func NewLeaderboardService(db *gorm.DB, r StatsRepo) *LeaderboardService {
	return &LeaderboardService{DB: db, Repo: r, Limit: 5, Timeout: 5 * time.Second}
}

// Top returns up to limit contributors; limit <= 0 uses the configured
// default. Failures are reported as *RemoteFault.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]domain.Contributor, error) {
	if limit <= 0 {
		limit = s.Limit
	}
	ctx, span := otel.Tracer("services/LeaderboardService").Start(ctx, "Top",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	out, err := s.Repo.TopContributors(ctx, s.DB, limit)
	if err != nil {
		return nil, fault("top contributors", err)
	}
	return out, nil
}

// Panel returns the rows for the leaderboard panel, or nil when the panel
// should be hidden: on an empty result, and on failure, which is logged but
// never surfaced to the visitor.
func (s *LeaderboardService) Panel(ctx context.Context) []domain.Contributor {
	out, err := s.Top(ctx, s.Limit)
	if err != nil {
		observability.LeaderboardDegraded.Inc()
		zerolog.Ctx(ctx).Warn().Err(err).Msg("leaderboard unavailable")
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
