package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ClassMap holds optional CSS classes per element. Empty values add no attribute.
type ClassMap struct {
	Paragraph string
	Heading1  string
	Heading2  string
	Heading3  string // h3 and deeper
}

// LegalClasses matches the typography of the legal pages.
var LegalClasses = ClassMap{
	Paragraph: "mb-4 leading-relaxed",
	Heading1:  "text-3xl font-bold mb-6 mt-8",
	Heading2:  "text-2xl font-semibold mb-4 mt-6",
	Heading3:  "text-xl font-medium mb-3 mt-4",
}

// CMS authors are trusted, so raw HTML inside markdown is kept.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
		gmhtml.WithUnsafe(),
	),
)

// Render converts raw CMS content to HTML.
func Render(raw json.RawMessage) (template.HTML, error) {
	return RenderWithClasses(raw, ClassMap{})
}

// RenderWithClasses converts raw CMS content to HTML, adding classes to
// block elements. Classes only apply to blocks documents.
func RenderWithClasses(raw json.RawMessage, classes ClassMap) (template.HTML, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return doc.HTML(classes)
}

// HTML renders the document.
func (d Document) HTML(classes ClassMap) (template.HTML, error) {
	if d.IsEmpty() {
		return "", nil
	}
	if !d.IsBlocks {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(d.Markdown), &buf); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		return template.HTML(buf.String()), nil
	}

	var b strings.Builder
	for _, node := range d.Blocks {
		renderNode(&b, node, classes)
	}
	return template.HTML(b.String()), nil
}

// headingLevel defaults a missing level to 2 and clamps the rest to 1..6.
func headingLevel(level int) int {
	switch {
	case level == 0:
		return 2
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}

func renderNode(b *strings.Builder, n Node, classes ClassMap) {
	switch n.Type {
	case "paragraph":
		openTag(b, "p", classes.Paragraph)
		renderChildren(b, n.Children, classes)
		b.WriteString("</p>")
	case "heading":
		level := headingLevel(n.Level)
		tag := "h" + strconv.Itoa(level)
		openTag(b, tag, headingClass(level, classes))
		renderChildren(b, n.Children, classes)
		b.WriteString("</" + tag + ">")
	case "list":
		tag := "ul"
		if n.Format == "ordered" {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">")
		renderChildren(b, n.Children, classes)
		b.WriteString("</" + tag + ">")
	case "list-item":
		b.WriteString("<li>")
		renderChildren(b, n.Children, classes)
		b.WriteString("</li>")
	case "quote":
		b.WriteString("<blockquote>")
		renderChildren(b, n.Children, classes)
		b.WriteString("</blockquote>")
	case "code":
		b.WriteString("<pre><code>")
		b.WriteString(html.EscapeString(rawText(n.Children)))
		b.WriteString("</code></pre>")
	case "link":
		if href, ok := safeURL(n.URL); ok {
			b.WriteString(`<a href="` + html.EscapeString(href) + `">`)
			renderChildren(b, n.Children, classes)
			b.WriteString("</a>")
		} else {
			renderChildren(b, n.Children, classes)
		}
	case "text", "":
		renderText(b, n)
		if n.Type == "" && len(n.Children) > 0 {
			renderChildren(b, n.Children, classes)
		}
	default:
		renderChildren(b, n.Children, classes)
	}
}

func renderChildren(b *strings.Builder, children []Node, classes ClassMap) {
	for _, child := range children {
		renderNode(b, child, classes)
	}
}

func renderText(b *strings.Builder, n Node) {
	if n.Text == "" {
		return
	}

	var closers []string
	wrap := func(on bool, tag string) {
		if on {
			b.WriteString("<" + tag + ">")
			closers = append(closers, "</"+tag+">")
		}
	}
	wrap(n.Bold, "strong")
	wrap(n.Italic, "em")
	wrap(n.Underline, "u")
	wrap(n.Code, "code")

	b.WriteString(html.EscapeString(n.Text))

	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func openTag(b *strings.Builder, tag, class string) {
	if class == "" {
		b.WriteString("<" + tag + ">")
		return
	}
	b.WriteString("<" + tag + ` class="` + html.EscapeString(class) + `">`)
}

func headingClass(level int, classes ClassMap) string {
	switch level {
	case 1:
		return classes.Heading1
	case 2:
		return classes.Heading2
	default:
		return classes.Heading3
	}
}

// safeURL allows http(s), mailto, tel and relative links.
func safeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return u.String(), true
	}
	return "", false
}

// rawText concatenates text runs without touching whitespace.
func rawText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Text)
		b.WriteString(rawText(n.Children))
	}
	return b.String()
}
