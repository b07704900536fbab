package cms

import (
	"context"
	"fmt"

	"github.com/westbourne-advisory/website/models"
)

const (
	testimonialsEndpoint = "/testimonials"
	faqsEndpoint         = "/faqs"
	legalPagesEndpoint   = "/legal-pages"

	PrivacyPolicySlug      = "privacy-policy"
	TermsAndConditionsSlug = "terms-and-conditions"
)

// GetTestimonials lists testimonials, newest first.
func (c *Client) GetTestimonials(ctx context.Context, featuredOnly bool) ([]models.Testimonial, error) {
	q := NewQuery().Sort("createdAt", "desc").Populate("avatar")
	if featuredOnly {
		q = q.FilterEq("featured", "true")
	}

	var res list[models.Testimonial]
	if err := c.fetch(ctx, testimonialsEndpoint, q, &res); err != nil {
		return nil, fmt.Errorf("get testimonials: %w", err)
	}
	return res.Items, nil
}

// GetFAQs lists FAQs in display order, optionally for one category.
func (c *Client) GetFAQs(ctx context.Context, category string) ([]models.FAQ, error) {
	q := NewQuery().Sort("order", "asc")
	if category != "" {
		q = q.FilterEq("category", category)
	}

	var res list[models.FAQ]
	if err := c.fetch(ctx, faqsEndpoint, q, &res); err != nil {
		return nil, fmt.Errorf("get faqs: %w", err)
	}
	models.SortFAQs(res.Items)
	return res.Items, nil
}

// GetLegalPage returns the legal page with slug, or nil if there is none.
func (c *Client) GetLegalPage(ctx context.Context, slug string) (*models.LegalPage, error) {
	q := NewQuery().FilterEq("slug", slug)

	var res list[models.LegalPage]
	if err := c.fetch(ctx, legalPagesEndpoint, q, &res); err != nil {
		return nil, fmt.Errorf("get legal page %q: %w", slug, err)
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	return &res.Items[0], nil
}
