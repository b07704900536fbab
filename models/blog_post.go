package models

import "encoding/json"

// BlogPost is a published article from the CMS. Slug uniquely identifies a post.
type BlogPost struct {
	ID             int             `json:"id"`
	DocumentID     string          `json:"documentId,omitempty"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Excerpt        string          `json:"excerpt"`
	Content        json.RawMessage `json:"content,omitempty"`
	Author         string          `json:"author"`
	Category       string          `json:"category"`
	Tags           string          `json:"tags,omitempty"`
	SEOTitle       string          `json:"seoTitle,omitempty"`
	SEODescription string          `json:"seoDescription,omitempty"`
	Status         string          `json:"status,omitempty"`
	PublishedAt    Timestamp       `json:"publishedAt"`
	CreatedAt      Timestamp       `json:"createdAt"`
	UpdatedAt      Timestamp       `json:"updatedAt"`
	FeaturedImage  *Media          `json:"featuredImage,omitempty"`
}

// LastModified is the best available modification time for sitemaps.
func (p BlogPost) LastModified() Timestamp {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.PublishedAt
}

// TextContent wraps plain text as a JSON string content value.
func TextContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
