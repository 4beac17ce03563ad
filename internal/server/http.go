package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/admin"
	"github.com/gokatarajesh/icebreaker/internal/config"
	"github.com/gokatarajesh/icebreaker/internal/metrics"
	"github.com/gokatarajesh/icebreaker/internal/question"
	"github.com/gokatarajesh/icebreaker/internal/report"
	"github.com/gokatarajesh/icebreaker/internal/team"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

// NewUpgrader returns a WebSocket upgrader that accepts the configured CORS origins.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
}

// Handlers bundles everything the router dispatches to. Nil entries disable their routes.
type Handlers struct {
	Teams     *team.HTTPHandler
	Feed      http.Handler
	Questions *question.HTTPHandler
	Reports   *report.HTTPHandler
	AdminHTTP *admin.HTTPHandler
	Admin     *admin.Service

	Database Pinger
	Cache    Pinger

	Metrics     *metrics.Collectors
	Gatherer    prometheus.Gatherer
	RateLimiter *RateLimiter
}

// NewHTTPServer wires every route and the middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, logger, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the API handler. Exposed separately so tests can drive it with httptest.
func NewRouter(cfg *config.App, logger zerolog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /health", HealthHandler(h.Database, h.Cache))
	mux.HandleFunc("GET /version", versionHandler(cfg))

	gatherer := h.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if h.Teams != nil {
		mux.HandleFunc("GET /api/teams", h.Teams.List)
		mux.HandleFunc("POST /api/teams", h.Teams.Create)
		mux.HandleFunc("GET /api/teams/{teamId}/question", h.Teams.Question)
		mux.HandleFunc("POST /api/teams/{teamId}/use-question", h.Teams.UseQuestion)
		mux.HandleFunc("POST /api/teams/{teamId}/skip-question", h.Teams.SkipQuestion)
		mux.HandleFunc("GET /api/teams/{teamId}/users", h.Teams.TeamUsers)
		mux.HandleFunc("GET /api/users", h.Teams.AllUsers)
	}
	if h.Feed != nil {
		mux.Handle("GET /ws/teams/{teamId}", h.Feed)
	}

	adminSvc := h.Admin
	if adminSvc == nil {
		adminSvc = admin.NewService(admin.Config{}, logger)
	}
	if !adminSvc.Enabled() {
		logger.Warn().Msg("admin authentication not configured; /api/admin routes are open")
	}
	guard := admin.RequireAdmin(adminSvc, logger)
	if h.AdminHTTP != nil {
		mux.HandleFunc("POST /api/admin/login", h.AdminHTTP.Login)
	}
	if h.Questions != nil {
		mux.Handle("GET /api/admin/questions", guard(http.HandlerFunc(h.Questions.List)))
		mux.Handle("POST /api/admin/questions", guard(http.HandlerFunc(h.Questions.Create)))
		mux.Handle("PUT /api/admin/questions/{id}", guard(http.HandlerFunc(h.Questions.Update)))
		mux.Handle("DELETE /api/admin/questions/{id}", guard(http.HandlerFunc(h.Questions.Delete)))
	}
	if h.Reports != nil {
		mux.Handle("GET /api/admin/usage-stats", guard(http.HandlerFunc(h.Reports.UsageStats)))
	}
	if h.Teams != nil {
		mux.Handle("POST /api/admin/teams/{teamId}/reset", guard(http.HandlerFunc(h.Teams.Reset)))
	}

	mux.Handle("/", fallbackHandler(cfg.StaticDir))

	var handler http.Handler = mux
	handler = Instrument(h.Metrics)(handler)
	if h.RateLimiter != nil {
		handler = h.RateLimiter.Middleware(handler)
	}
	handler = SecurityHeaders(handler)
	handler = Recoverer(logger)(handler)
	handler = RequestLogger(logger)(handler)
	handler = CORS(cfg.CORS)(handler)
	return handler
}

// fallbackHandler answers unknown API routes with a JSON 404 and, when a static
// directory is configured, serves the single page app for everything else.
func fallbackHandler(staticDir string) http.Handler {
	notFound := func(w http.ResponseWriter) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Route not found")
	}
	if staticDir == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { notFound(w) })
	}

	files := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			notFound(w)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/ws/") {
			notFound(w)
			return
		}
		clean := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(clean); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}

type versionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

func versionHandler(cfg *config.App) http.HandlerFunc {
	body, _ := json.Marshal(versionInfo{Name: cfg.Name, Version: cfg.Version, GoVersion: runtime.Version()})
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}
