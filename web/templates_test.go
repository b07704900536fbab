package web

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westbourne-advisory/website/intake"
)

var site = Site{Name: "Westbourne Advisory", URL: "https://westbourneadvisory.com", Year: 2025}

func render(t *testing.T, tmpl *Templates, page string, data Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tmpl.Render(&buf, page, data))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLoadEmbedded(t *testing.T) {
	tmpl, err := Load(TemplatesFS())
	require.NoError(t, err)

	for _, page := range []string{PageHome, PageBlogIndex, PageBlogPost, PageLegal, PageStartJourney, PageNotFound, PageError} {
		assert.True(t, tmpl.Has(page), page)
	}
	assert.False(t, tmpl.Has("base"))

	_, err = fs.ReadFile(StaticFS(), "video-bg.js")
	assert.NoError(t, err)
}

func TestRenderNotFound(t *testing.T) {
	tmpl, err := Load(TemplatesFS())
	require.NoError(t, err)

	doc := render(t, tmpl, PageNotFound, Page{Title: "Page Not Found", Path: "/nope", Site: site, Data: map[string]any{}})
	assert.Equal(t, "Page Not Found | Westbourne Advisory", doc.Find("title").Text())
	assert.Equal(t, "Page Not Found", doc.Find("main h1").Text())
	assert.Contains(t, doc.Find("footer").Text(), "2025 Westbourne Advisory")
}

func TestRenderStartJourney(t *testing.T) {
	tmpl, err := Load(TemplatesFS())
	require.NoError(t, err)

	step, _ := intake.StepAt(1)
	doc := render(t, tmpl, PageStartJourney, Page{Site: site, Data: map[string]any{
		"Step":       step,
		"StepNumber": 1,
		"Total":      intake.TotalSteps,
		"Progress":   25,
		"Values":     map[string]string{"fullName": "Alex Morgan", "country": "Ireland"},
		"Errors":     map[string]string{"emailAddress": "Enter a valid email address"},
		"Submitted":  false,
	}})

	assert.Equal(t, "Personal Details", doc.Find("main h1").Text())
	assert.Contains(t, doc.Find(".progress").Text(), "Step 1 of 4")
	val, _ := doc.Find("input#fullName").Attr("value")
	assert.Equal(t, "Alex Morgan", val)
	assert.Equal(t, "Ireland", doc.Find("select#country option[selected]").Text())
	assert.Equal(t, "Enter a valid email address", doc.Find(`[data-field="emailAddress"] .field-error`).Text())
	assert.Equal(t, 1, doc.Find(`button[value="next"]`).Length())
	assert.Zero(t, doc.Find(`button[value="prev"]`).Length())
	assert.Equal(t, 2, doc.Find("form h3").Length())
}

func TestRenderUnknownPage(t *testing.T) {
	tmpl, err := Load(TemplatesFS())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, tmpl.Render(&buf, "missing", Page{}))
	assert.Zero(t, buf.Len())
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "How It Works", Humanize("how-it-works"))
	assert.Equal(t, "Faq", Humanize("faq"))
}

func copyTemplates(t *testing.T, dst string) {
	t.Helper()
	err := fs.WalkDir(TemplatesFS(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, p)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		b, err := fs.ReadFile(TemplatesFS(), p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, b, 0o644)
	})
	require.NoError(t, err)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	copyTemplates(t, dir)

	tmpl, err := LoadDir(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, dir, tmpl))

	page := filepath.Join(dir, "pages", "not_found.html")
	require.NoError(t, os.WriteFile(page, []byte(`{{define "content"}}<h1>Moved Elsewhere</h1>{{end}}`), 0o644))

	assert.Eventually(t, func() bool {
		var buf bytes.Buffer
		if err := tmpl.Render(&buf, PageNotFound, Page{Site: site, Data: map[string]any{}}); err != nil {
			return false
		}
		return strings.Contains(buf.String(), "Moved Elsewhere")
	}, 5*time.Second, 50*time.Millisecond)

	// a broken edit keeps the last good set
	require.NoError(t, os.WriteFile(page, []byte(`{{define "content"}}{{.Broken`), 0o644))
	time.Sleep(2 * ReloadDelay)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Render(&buf, PageNotFound, Page{Site: site, Data: map[string]any{}}))
	assert.Contains(t, buf.String(), "Moved Elsewhere")
}
