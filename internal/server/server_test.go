package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gokatarajesh/icebreaker/internal/admin"
	"github.com/gokatarajesh/icebreaker/internal/config"
	"github.com/gokatarajesh/icebreaker/internal/db/memdb"
	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	"github.com/gokatarajesh/icebreaker/internal/metrics"
	"github.com/gokatarajesh/icebreaker/internal/question"
	"github.com/gokatarajesh/icebreaker/internal/report"
	"github.com/gokatarajesh/icebreaker/internal/team"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

type testEnv struct {
	handler  http.Handler
	teams    *team.Service
	metrics  *metrics.Collectors
	redis    *miniredis.Miniredis
	adminSvc *admin.Service
}

type envOption func(*config.App, *Handlers)

func newTestEnv(t *testing.T, opts ...envOption) testEnv {
	t.Helper()
	store := memdb.New()
	bank := repository.NewQuestionRepository(store)
	ledger := repository.NewLedgerRepository(store)
	teamRepo := repository.NewTeamRepository(store)
	logger := zerolog.Nop()

	qsvc := question.NewService(bank, logger)
	reg := prometheus.NewRegistry()
	coll := metrics.New(reg)
	tsvc := team.NewService(teamRepo, ledger, qsvc, question.NewSelector(bank, ledger), logger, team.WithMetrics(coll))
	_, err := qsvc.SeedDefaults(context.Background())
	require.NoError(t, err)
	_, err = tsvc.SeedDefaults(context.Background())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.App{
		Name:    "icebreaker",
		Version: "1.2.3",
		CORS: config.CORS{
			AllowedOrigins: []string{"https://app.example"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
	adminSvc := admin.NewService(admin.Config{}, logger)
	h := Handlers{
		Teams:       team.NewHTTPHandler(tsvc, logger),
		Questions:   question.NewHTTPHandler(qsvc, logger),
		Reports:     report.NewHTTPHandler(report.NewService(ledger, bank, teamRepo, logger), logger),
		AdminHTTP:   admin.NewHTTPHandler(adminSvc, logger),
		Admin:       adminSvc,
		Database:    PingFunc(func(context.Context) error { return nil }),
		Cache:       PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		Metrics:     coll,
		Gatherer:    reg,
		RateLimiter: NewRateLimiter(rdb, 1000, time.Minute, coll, logger),
	}
	for _, opt := range opts {
		opt(cfg, &h)
	}
	return testEnv{handler: NewRouter(cfg, logger, h), teams: tsvc, metrics: coll, redis: mr, adminSvc: h.Admin}
}

func call(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := call(env.handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "connected", body.Database)
	assert.Equal(t, "connected", body.Cache)
	_, err := time.Parse(time.RFC3339Nano, body.Timestamp)
	assert.NoError(t, err)

	env.redis.Close()
	rec = call(env.handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "disconnected", body.Cache)
}

func TestHealthDatabaseDown(t *testing.T) {
	env := newTestEnv(t, func(_ *config.App, h *Handlers) {
		h.Database = PingFunc(func(context.Context) error { return errors.New("down") })
	})
	rec := call(env.handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"disconnected"`)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.handler, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httperrors.ErrCodeNotFound, body.Error)
	assert.Equal(t, "Route not found", body.Message)
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.handler, http.MethodGet, "/api/teams", "", "X-Request-ID", "req-42")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	rec = call(env.handler, http.MethodGet, "/api/teams", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	rec := call(env.handler, http.MethodGet, "/api/teams", "", "Origin", "https://app.example")
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = call(env.handler, http.MethodGet, "/api/teams", "", "Origin", "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEndToEndFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := call(env.handler, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []team.Team
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&teams))
	require.Len(t, teams, 4)
	base := "/api/teams/" + teams[0].ID.String()

	rec = call(env.handler, http.MethodGet, base+"/question", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var q question.Question
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&q))

	rec = call(env.handler, http.MethodPost, base+"/use-question", `{"questionId":"`+q.ID.String()+`","userName":"Ada"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(env.handler, http.MethodGet, "/api/admin/usage-stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats report.UsageStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.Summary.TotalUsed)
	assert.Equal(t, int64(len(question.DefaultQuestions)), stats.Summary.TotalQuestions)
	assert.Equal(t, int64(4), stats.Summary.TotalTeams)

	rec = call(env.handler, http.MethodPost, "/api/admin/teams/"+teams[0].ID.String()+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HTTPRequests.WithLabelValues("GET", "GET /api/teams/{teamId}/question", "200")))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	call(env.handler, http.MethodGet, "/api/teams", "")

	rec := call(env.handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "icebreaker_http_requests_total")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.handler, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
}

func TestAdminGuard(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("let-me-in"), bcrypt.MinCost)
	require.NoError(t, err)
	env := newTestEnv(t, func(_ *config.App, h *Handlers) {
		svc := admin.NewService(admin.Config{PasswordHash: string(hash), JWTSecret: "secret"}, zerolog.Nop())
		h.Admin = svc
		h.AdminHTTP = admin.NewHTTPHandler(svc, zerolog.Nop())
	})

	rec := call(env.handler, http.MethodGet, "/api/admin/questions", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Public routes stay open.
	rec = call(env.handler, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(env.handler, http.MethodPost, "/api/admin/login", `{"password":"let-me-in"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var tok admin.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))

	rec = call(env.handler, http.MethodGet, "/api/admin/questions", "", "Authorization", "Bearer "+tok.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(_ *config.App, h *Handlers) {
		h.RateLimiter = NewRateLimiter(h.RateLimiter.redis, 2, time.Minute, h.Metrics, zerolog.Nop())
	})

	for i := 0; i < 2; i++ {
		rec := call(env.handler, http.MethodGet, "/api/teams", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := call(env.handler, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RateLimited))

	// Health checks are exempt.
	rec = call(env.handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The window expires.
	env.redis.FastForward(2 * time.Minute)
	rec = call(env.handler, http.MethodGet, "/api/teams", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	env := newTestEnv(t)
	env.redis.Close()

	rec := call(env.handler, http.MethodGet, "/api/teams", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := call(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), httperrors.ErrCodeInternalError)
}

func TestRecovererKeepsStartedResponse(t *testing.T) {
	h := Recoverer(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
		panic("late")
	}))

	rec := call(h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestRecovererLogsFinalStatus(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(zerolog.New(&buf))(Recoverer(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := call(h, http.MethodGet, "/", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	env := newTestEnv(t, func(cfg *config.App, _ *Handlers) { cfg.StaticDir = dir })

	rec := call(env.handler, http.MethodGet, "/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")

	rec = call(env.handler, http.MethodGet, "/admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spa")

	rec = call(env.handler, http.MethodGet, "/api/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpgraderOrigins(t *testing.T) {
	up := NewUpgrader([]string{"https://app.example"})
	req := httptest.NewRequest(http.MethodGet, "/ws/teams/x", nil)
	assert.True(t, up.CheckOrigin(req))
	req.Header.Set("Origin", "https://app.example")
	assert.True(t, up.CheckOrigin(req))
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, up.CheckOrigin(req))
	assert.True(t, NewUpgrader([]string{"*"}).CheckOrigin(req))
}
