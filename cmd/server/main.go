// Command server runs the SnitchOn HTTP API.
//
//	@title			SnitchOn API
//	@version		1.0
//	@description	Crowd-sourced register of misinformation claims.
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/docs"
	"github.com/tbourn/go-snitchon-backend/internal/auth"
	"github.com/tbourn/go-snitchon-backend/internal/config"
	httpapi "github.com/tbourn/go-snitchon-backend/internal/http"
	"github.com/tbourn/go-snitchon-backend/internal/http/handlers"
	"github.com/tbourn/go-snitchon-backend/internal/observability"
	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/repo"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/services"
	"github.com/tbourn/go-snitchon-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// purgeEvery is how often expired sessions and idempotency records go away.
const purgeEvery = 15 * time.Minute

func main() {
	envErr := godotenv.Load()
	cfg := config.MustLoad()
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Debug().Msg("no .env file, using the process environment")
	}
	gin.SetMode(cfg.GinMode)

	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, ver); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("bye")
}

func run(ctx context.Context, cfg config.Config, ver string) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB, cfg.OTEL.Enabled)
	if err != nil {
		return err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	// Services
	store := repo.Store{}
	entries := services.NewEntryService(db, store,
		services.NewDeleteConfirmer(cfg.Auth.SessionSecret, cfg.Entries.DeleteConfirmTTL))
	entries.Idem = store
	entries.IdemTTL = cfg.IdempotencyTTL
	entries.Timeout = cfg.Entries.RemoteTimeout
	entries.URLStrict = cfg.Entries.URLStrict

	aliases := services.NewAliasService(db, store)
	aliases.CaseInsensitive = cfg.Entries.AliasCaseInsensitive
	aliases.Timeout = cfg.Entries.RemoteTimeout

	board := services.NewLeaderboardService(db, store)
	board.Limit = cfg.Entries.LeaderboardLimit
	board.Timeout = cfg.Entries.RemoteTimeout

	// Sign-in
	tokens, err := auth.NewTokenService(cfg.Auth.SessionSecret)
	if err != nil {
		return err
	}
	providers := auth.ProvidersFromConfig(cfg.Auth)
	if len(providers) == 0 {
		log.Warn().Msg("no sign-in provider configured; the site is read-only")
	}
	sessions := auth.NewSessionProvider(db, store, tokens, providers)
	sessions.TTL = cfg.Auth.SessionTTL
	sessions.Timeout = cfg.Entries.RemoteTimeout
	sessions.OnChange(func(ev auth.Event) {
		log.Debug().Str("kind", string(ev.Kind)).Str("user_id", ev.UserID).Msg("session changed")
	})

	// Pages
	md := pages.NewMarkdown()
	info, err := pages.LoadInfoPages(md)
	if err != nil {
		return err
	}

	h := handlers.New(handlers.Deps{
		Entries:     entries,
		Aliases:     aliases,
		Leaderboard: board,
		Sessions:    sessions,
		Info:        info,
		InfoIndex:   search.NewIndex(info.Sources()),
		Markdown:    md,
		Stats: func(ctx context.Context) (int64, *time.Time, error) {
			return repo.EntriesStats(ctx, db)
		},
		Options: handlers.Options{
			StrictURL:        cfg.Entries.URLStrict,
			RecentLimit:      cfg.Entries.RecentLimit,
			LeaderboardLimit: cfg.Entries.LeaderboardLimit,
			Search:           []search.FilterOption{search.WithMinQueryRunes(cfg.Entries.SearchMinQuery)},
			CookieSecure:     cfg.Auth.CookieSecure,
		},
	})

	docs.SwaggerInfo.Version = ver
	docs.SwaggerInfo.BasePath = cfg.APIBasePath

	r := gin.New()
	httpapi.RegisterRoutes(r, db, h, sessions, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("version", ver).Str("db", cfg.DB.Driver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		purge(gctx, db)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// purge removes expired sessions and idempotency records until ctx ends.
func purge(ctx context.Context, db *gorm.DB) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpired(ctx, db, now)
			if err != nil {
				log.Warn().Err(err).Msg("purge expired")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("purged expired records")
			}
		}
	}
}
