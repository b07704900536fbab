// Package sitemap renders sitemap.xml and robots.txt.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/westbourne-advisory/website/models"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type ChangeFreq string

const (
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
)

// Entry is one <url> element.
type Entry struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []Entry  `xml:"url"`
}

type staticRoute struct {
	path     string
	freq     ChangeFreq
	priority float64
}

var staticRoutes = []staticRoute{
	{"", Monthly, 1.0},
	{"/about", Monthly, 0.8},
	{"/how-it-works", Monthly, 0.8},
	{"/faqs", Weekly, 0.7},
	{"/blog", Daily, 0.9},
	{"/contact", Monthly, 0.6},
}

const (
	postFreq     = Monthly
	postPriority = 0.7
	// PostPageSize is how many posts the sitemap asks the CMS for.
	PostPageSize = 100
)

// Entries lists the static pages followed by one entry per post.
func Entries(siteURL string, posts []models.BlogPost, now time.Time) []Entry {
	base := strings.TrimSuffix(siteURL, "/")
	today := formatDate(now)

	entries := make([]Entry, 0, len(staticRoutes)+len(posts))
	for _, r := range staticRoutes {
		entries = append(entries, Entry{
			Loc:        base + r.path,
			LastMod:    today,
			ChangeFreq: r.freq,
			Priority:   formatPriority(r.priority),
		})
	}

	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		lastMod := today
		if ts := p.LastModified(); !ts.IsZero() {
			lastMod = formatDate(ts.Time)
		}
		entries = append(entries, Entry{
			Loc:        base + "/blog/" + p.Slug,
			LastMod:    lastMod,
			ChangeFreq: postFreq,
			Priority:   formatPriority(postPriority),
		})
	}
	return entries
}

// Write encodes entries as a sitemap document.
func Write(w io.Writer, entries []Entry) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlSet{Xmlns: xmlns, URLs: entries}); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns robots.txt pointing crawlers at the sitemap.
func Robots(siteURL string) string {
	base := strings.TrimSuffix(siteURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range []string{"/admin/", "/api/", "/backend/"} {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + base + "/sitemap.xml\n")
	return b.String()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatPriority(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
