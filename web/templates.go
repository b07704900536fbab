// Package web holds the HTML templates and static assets of the site.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates static
var files embed.FS

const (
	baseTemplate = "base.html"
	pagesDir     = "pages"
	partialsDir  = "partials"
)

// Page names.
const (
	PageHome         = "home"
	PageBlogIndex    = "blog_index"
	PageBlogPost     = "blog_post"
	PageLegal        = "legal"
	PageStartJourney = "start_journey"
	PageNotFound     = "not_found"
	PageError        = "error"
)

// TemplatesFS returns the embedded templates directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticFS returns the embedded static assets.
func StaticFS() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type Site struct {
	Name string
	URL  string
	Year int
}

// Page is the data every template receives. Data is page specific.
type Page struct {
	Title       string
	Description string
	Path        string
	BodyClass   string
	Site        Site
	Data        any
}

var titleCaser = cases.Title(language.BritishEnglish)

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	// humanize turns a slug such as "how-it-works" into "How It Works".
	"humanize": Humanize,
}

func Humanize(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// Templates is a set of page templates, each parsed on top of its own copy
// of base.html and the partials. It is safe for concurrent use and can be
// reloaded while serving.
type Templates struct {
	source fs.FS

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// Load parses every page in fsys.
func Load(fsys fs.FS) (*Templates, error) {
	t := &Templates{source: fsys}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-parses the templates. On error the previous set stays active.
func (t *Templates) Reload() error {
	pages, err := parse(t.source)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.pages = pages
	t.mu.Unlock()
	return nil
}

func parse(fsys fs.FS) (map[string]*template.Template, error) {
	partials, err := fs.Glob(fsys, path.Join(partialsDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("list partials: %w", err)
	}

	base, err := template.New(baseTemplate).Funcs(funcs).ParseFS(fsys, append([]string{baseTemplate}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base.html and partials: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, path.Join(pagesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", pagesDir)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", file, err)
		}
		tmpl, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}
	return pages, nil
}

// Has reports whether page exists.
func (t *Templates) Has(page string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.pages[page]
	return ok
}

// Render executes page into w. Nothing is written if execution fails.
func (t *Templates) Render(w io.Writer, page string, data Page) error {
	t.mu.RLock()
	tmpl, ok := t.pages[page]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
