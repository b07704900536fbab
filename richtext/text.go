package richtext

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

var markdownSyntax = regexp.MustCompile("[#*_>`\\[\\]()!|-]+")

// PlainText extracts the readable text of raw content, runs joined by spaces.
func PlainText(raw json.RawMessage) string {
	doc, err := Parse(raw)
	if err != nil {
		return ""
	}
	return doc.PlainText()
}

func (d Document) PlainText() string {
	if !d.IsBlocks {
		return strings.Join(strings.Fields(markdownSyntax.ReplaceAllString(d.Markdown, " ")), " ")
	}
	return plainText(d.Blocks)
}

func plainText(nodes []Node) string {
	var parts []string
	var walk func([]Node)
	walk = func(ns []Node) {
		for _, n := range ns {
			if n.Text != "" {
				parts = append(parts, n.Text)
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ReadingTime estimates minutes to read raw content, never less than one.
func ReadingTime(raw json.RawMessage) int {
	words := len(strings.Fields(PlainText(raw)))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
