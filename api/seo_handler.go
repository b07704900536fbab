package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/sitemap"
)

// seoHandler serves the crawler files and the health check.
type seoHandler struct {
	responder   Responder
	logger      zerolog.Logger
	posts       sitemap.PostLister
	db          database.Database
	siteURL     string
	startupTime time.Time
	now         func() time.Time
}

func newSEOHandler(posts sitemap.PostLister, db database.Database, siteURL string, startupTime time.Time, now func() time.Time) seoHandler {
	logger := log.With().Str("handlerName", "seoHandler").Logger()
	return seoHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		posts:       posts,
		db:          db,
		siteURL:     siteURL,
		startupTime: startupTime,
		now:         now,
	}
}

func (h seoHandler) sitemapXML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := sitemap.Generate(r.Context(), h.posts, h.siteURL, h.now())

		var buf bytes.Buffer
		if err := sitemap.Write(&buf, entries); err != nil {
			h.logger.Error().Err(err).Msg("failed to write sitemap")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = buf.WriteTo(w)
	}
}

func (h seoHandler) robotsTXT() http.HandlerFunc {
	body := sitemap.Robots(h.siteURL)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// healthz reports the process as up. A failing database is reported but does
// not fail the check, since the pages are served from the CMS.
func (h seoHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "disabled"
		if h.db.Enabled() {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.db.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				dbStatus = "unavailable"
			} else {
				dbStatus = "ok"
			}
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status:   "ok",
			Uptime:   h.now().Sub(h.startupTime).Round(time.Second).String(),
			Database: dbStatus,
		})
	}
}
