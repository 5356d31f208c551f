package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-snitchon-backend/internal/auth"
	"github.com/tbourn/go-snitchon-backend/internal/domain"
	"github.com/tbourn/go-snitchon-backend/internal/http/middleware"
	"github.com/tbourn/go-snitchon-backend/internal/pages"
	"github.com/tbourn/go-snitchon-backend/internal/repo"
	"github.com/tbourn/go-snitchon-backend/internal/search"
	"github.com/tbourn/go-snitchon-backend/internal/services"
)

const testSecret = "handlers-test-secret-0123456789"

// stubIdP accepts any code and uses it as the subject.
type stubIdP struct{}

func (stubIdP) Name() string { return auth.ProviderGoogle }
func (stubIdP) AuthCodeURL(state string) string {
	return "https://idp.example/auth?state=" + state
}
func (stubIdP) Exchange(_ context.Context, code string) (auth.Identity, error) {
	if code == "bad" {
		return auth.Identity{}, fmt.Errorf("exchange rejected")
	}
	return auth.Identity{Provider: auth.ProviderGoogle, Subject: code, Email: code + "@example.org"}, nil
}

type harness struct {
	r        *gin.Engine
	db       *gorm.DB
	sessions *auth.SessionProvider
}

// newHarness wires real services over a throwaway SQLite file behind the
// same session middleware the server uses.
func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("handlers_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := repo.Store{}
	entries := services.NewEntryService(db, store, services.NewDeleteConfirmer(testSecret, time.Minute))
	entries.Idem = store
	aliases := services.NewAliasService(db, store)
	board := services.NewLeaderboardService(db, store)

	tokens, err := auth.NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	sp := auth.NewSessionProvider(db, store, tokens, map[string]auth.Provider{auth.ProviderGoogle: stubIdP{}})

	md := pages.NewMarkdown()
	info, err := pages.LoadInfoPages(md)
	if err != nil {
		t.Fatalf("info pages: %v", err)
	}

	h := New(Deps{
		Entries:     entries,
		Aliases:     aliases,
		Leaderboard: board,
		Sessions:    sp,
		Info:        info,
		InfoIndex:   search.NewIndex(info.Sources()),
		Markdown:    md,
		Stats:       func(ctx context.Context) (int64, *time.Time, error) { return repo.EntriesStats(ctx, db) },
	})

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		sessions.Sessions("snitchon_oauth", cookie.NewStore([]byte(testSecret))),
		middleware.LoadSession(sp),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil),
	)

	authed := middleware.RequireSession()
	r.GET("/auth/:provider/login", h.Login)
	r.GET("/auth/:provider/callback", h.Callback)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/session", h.Session)

	r.GET("/entries", h.ListEntries)
	r.GET("/entries/recent", h.RecentEntries)
	r.GET("/entries/:id", h.GetEntry)
	r.POST("/entries", authed, h.CreateEntry)
	r.PATCH("/entries/:id", authed, h.UpdateEntry)
	r.POST("/entries/:id/delete-request", authed, h.RequestDeleteEntry)
	r.DELETE("/entries/:id", authed, h.DeleteEntry)

	r.GET("/profile/alias", authed, h.GetAlias)
	r.PUT("/profile/alias", authed, h.SetAlias)
	r.GET("/leaderboard", h.Leaderboard)

	r.GET("/pages/landing", h.LandingPage)
	r.GET("/pages/dashboard", authed, h.DashboardPage)
	r.GET("/pages/entries/:id", h.EntryPage)
	r.GET("/pages/info", h.InfoIndex)
	r.GET("/pages/info/:slug", h.InfoPage)
	r.GET("/info/search", h.SearchInfo)

	return &harness{r: r, db: db, sessions: sp}
}

// signIn creates a user for subject and returns its session token.
func (h *harness) signIn(t *testing.T, subject string) string {
	t.Helper()
	_, tok, err := h.sessions.CompleteSignIn(context.Background(), auth.ProviderGoogle, subject)
	if err != nil {
		t.Fatalf("sign in %s: %v", subject, err)
	}
	return tok
}

// do sends a request with an optional JSON body and session token.
func (h *harness) do(t *testing.T, method, path, token string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			buf, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			rd = bytes.NewReader(buf)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v; body=%s", err, w.Body.String())
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d; body=%s", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code=%q want %q (message %q)", er.Code, code, er.Message)
	}
	return er
}

func validEntry(topic string) CreateEntryRequest {
	return CreateEntryRequest{
		TopicOrPerson:    topic,
		ShortDescription: "Claim about " + topic,
		URL:              "https://example.com/" + strings.ToLower(strings.ReplaceAll(topic, " ", "-")),
		Details:          "Debunked: **" + topic + "** was checked by three outlets.",
	}
}

func (h *harness) create(t *testing.T, token, topic string) domain.Entry {
	t.Helper()
	w := h.do(t, http.MethodPost, "/entries", token, validEntry(topic))
	if w.Code != http.StatusCreated {
		t.Fatalf("create %q: status=%d body=%s", topic, w.Code, w.Body.String())
	}
	return decode[domain.Entry](t, w)
}
