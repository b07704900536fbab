// Package richtext turns CMS rich-text content into HTML and plain text.
//
// Content arrives either as a Strapi blocks document (a JSON array of nodes)
// or as a single markdown string.
package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one element of a blocks document.
type Node struct {
	Type      string `json:"type"`
	Level     int    `json:"level,omitempty"`
	Format    string `json:"format,omitempty"`
	URL       string `json:"url,omitempty"`
	Text      string `json:"text,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Code      bool   `json:"code,omitempty"`
	Children  []Node `json:"children,omitempty"`
}

// Document is decoded content: exactly one of Markdown or Blocks is set.
type Document struct {
	Markdown string
	Blocks   []Node
	IsBlocks bool
}

// Parse decodes raw content. Empty or null content yields an empty document.
func Parse(raw json.RawMessage) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Document{}, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Document{}, fmt.Errorf("decode markdown content: %w", err)
		}
		return Document{Markdown: s}, nil
	case '[':
		var nodes []Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return Document{}, fmt.Errorf("decode blocks content: %w", err)
		}
		return Document{Blocks: nodes, IsBlocks: true}, nil
	case '{':
		var node Node
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return Document{}, fmt.Errorf("decode block content: %w", err)
		}
		return Document{Blocks: []Node{node}, IsBlocks: true}, nil
	}

	return Document{}, fmt.Errorf("unsupported content of kind %q", trimmed[0])
}

// IsEmpty reports whether the document has nothing to render.
func (d Document) IsEmpty() bool {
	return d.Markdown == "" && len(d.Blocks) == 0
}
