package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/health"
)

// Deps carries everything the page handlers need.
type Deps struct {
	API           *brainapi.Client
	Health        *health.Monitor
	Logger        *zap.Logger
	SessionSecret string
	PageLimit     int
	QRCacheTTL    time.Duration
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	api       *brainapi.Client
	health    *health.Monitor
	logger    *zap.Logger
	sessions  *sessions.CookieStore
	tmpl      *template.Template
	qrCache   *cache.Cache
	pageLimit int
}

// NewRouter builds the chi router serving all dashboard pages.
func NewRouter(d Deps) http.Handler {
	pageLimit := d.PageLimit
	if pageLimit <= 0 {
		pageLimit = 100
	}
	qrTTL := d.QRCacheTTL
	if qrTTL <= 0 {
		qrTTL = 5 * time.Minute
	}

	h := &Handlers{
		api:       d.API,
		health:    d.Health,
		logger:    d.Logger,
		sessions:  sessions.NewCookieStore([]byte(d.SessionSecret)),
		tmpl:      newTemplates(),
		qrCache:   cache.New(qrTTL, 10*time.Minute),
		pageLimit: pageLimit,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS()))))

	r.Get("/", h.handleDashboard)

	r.Get("/hubs", h.handleHubs)
	r.Post("/hubs", h.handleHubCreate)
	r.Post("/hubs/{hubID}/update", h.handleHubUpdate)
	r.Post("/hubs/{hubID}/delete", h.handleHubDelete)

	r.Get("/nodes", h.handleNodes)
	r.Post("/nodes", h.handleNodeCreate)
	r.Post("/nodes/{nodeID}/update", h.handleNodeUpdate)
	r.Post("/nodes/{nodeID}/delete", h.handleNodeDelete)

	r.Get("/vehicles", h.handleVehicles)
	r.Post("/vehicles", h.handleVehicleCreate)
	r.Post("/vehicles/{vehicleID}/update", h.handleVehicleUpdate)
	r.Post("/vehicles/{vehicleID}/delete", h.handleVehicleDelete)

	r.Get("/sessions", h.handleSessions)
	r.Post("/sessions", h.handleSessionCreate)
	r.Post("/sessions/{sessionID}/end", h.handleSessionEnd)
	r.Post("/sessions/{sessionID}/delete", h.handleSessionDelete)

	r.Get("/dlm-events", h.handleDLMEvents)

	r.Get("/qr-codes", h.handleQRCodes)
	r.Get("/qr-codes/{nodeID}/download", h.handleQRDownload)

	return r
}
