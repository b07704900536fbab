package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/config"
	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/videobg"
	"github.com/westbourne-advisory/website/web"
)

const (
	DefaultSiteURL  = "https://westbourneadvisory.com"
	DefaultSiteName = "Westbourne Advisory"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Content   *cms.Content
	Database  database.Database
	Templates *web.Templates
	Drafts    *intake.DraftCodec
	Notifier  Notifier
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
	Sections []videobg.Section
	Now      func() time.Time
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Deps) (Server, error) {
	if deps.Content == nil || deps.Templates == nil || deps.Drafts == nil {
		return Server{}, fmt.Errorf("content, templates and drafts are required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 30),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 60),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config         map[string]string
	startupTime    time.Time
	siteURL        string
	siteName       string
	adminPassword  string
	logFormat      string
	allowedOrigins []string
	logger         zerolog.Logger
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Deps, opts ...func(*router)) *chi.Mux {
	var rt router
	for _, opt := range opts {
		opt(&rt)
	}
	if rt.startupTime.IsZero() {
		rt.startupTime = time.Now()
	}
	rt.siteURL = strings.TrimSuffix(config.GetString(rt.config, "SITE_URL", DefaultSiteURL), "/")
	rt.siteName = config.GetString(rt.config, "SITE_NAME", DefaultSiteName)
	rt.adminPassword = config.GetString(rt.config, "ADMIN_PASSWORD", "")
	rt.logFormat = config.GetString(rt.config, "LOG_FORMAT", "console")
	rt.allowedOrigins = config.GetList(rt.config, "ACCEPTED_ORIGINS")
	if len(rt.allowedOrigins) == 0 {
		rt.allowedOrigins = []string{rt.siteURL}
	}
	rt.logger = log.With().Str("component", "router").Logger()

	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Sections == nil {
		deps.Sections = videobg.DefaultSections()
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}

	handlers := initializeHandlers(deps, rt)
	authMiddleware := newAuthMiddleware(rt.adminPassword)

	chiRouter := chi.NewRouter()
	setupRoutes(chiRouter, handlers, authMiddleware, routeConfig{
		cmsOrigin:      origin(deps.Content.Client().BaseURL()),
		logFormat:      rt.logFormat,
		allowedOrigins: rt.allowedOrigins,
		registry:       deps.Registry,
	})

	return chiRouter
}

// origin reduces a URL to scheme://host.
func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
