package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/westbourne-advisory/website/web"
)

// pageRenderer executes page templates with the site-wide fields filled in.
type pageRenderer struct {
	templates *web.Templates
	siteName  string
	siteURL   string
	now       func() time.Time
	logger    zerolog.Logger
}

type messageView struct {
	Message string
}

func (p pageRenderer) site() web.Site {
	return web.Site{Name: p.siteName, URL: p.siteURL, Year: p.now().Year()}
}

// render writes page with status. The template runs into a buffer first so a
// failed render still produces a clean 500.
func (p pageRenderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data web.Page) {
	data.Site = p.site()
	if data.Path == "" {
		data.Path = r.URL.Path
	}

	var buf bytes.Buffer
	if err := p.templates.Render(&buf, page, data); err != nil {
		p.logger.Error().Err(err).
			Str("page", page).
			Str("requestID", middleware.GetReqID(r.Context())).
			Msg("template render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p pageRenderer) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, web.PageNotFound, web.Page{
		Title:     "Page Not Found",
		BodyClass: "error",
		Data:      messageView{},
	})
}

func (p pageRenderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error().Err(err).
		Str("path", r.URL.Path).
		Str("requestID", middleware.GetReqID(r.Context())).
		Msg("page request failed")
	p.render(w, r, http.StatusInternalServerError, web.PageError, web.Page{
		Title:     "Something Went Wrong",
		BodyClass: "error",
		Data:      messageView{},
	})
}
