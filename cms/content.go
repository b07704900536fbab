package cms

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/westbourne-advisory/website/models"
)

// Content loads page data, substituting the sample content when the CMS
// fails. It is the boundary where CMS errors stop propagating.
type Content struct {
	client  *Client
	metrics *Metrics
	logger  zerolog.Logger
}

func NewContent(client *Client, metrics *Metrics) *Content {
	return &Content{
		client:  client,
		metrics: metrics,
		logger:  log.With().Str("component", "content").Logger(),
	}
}

func (c *Content) Client() *Client {
	return c.client
}

type BlogIndex struct {
	Posts      []models.BlogPost
	Categories []string
	Pagination models.Pagination
	Fallback   bool
}

// LoadBlogIndex fetches a page of posts and the category list together.
// If either fails both are replaced by the samples, on a single page.
func (c *Content) LoadBlogIndex(ctx context.Context, params BlogPostParams) BlogIndex {
	var (
		posts      BlogPostList
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = c.client.GetBlogPosts(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.client.GetBlogCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.fallback("blog_index", err)
		samples := FallbackBlogPosts()
		return BlogIndex{
			Posts:      samples,
			Categories: FallbackCategories(),
			Pagination: models.Pagination{Page: 1, PageSize: params.PageSize, PageCount: 1, Total: len(samples)},
			Fallback:   true,
		}
	}

	pagination := posts.Pagination
	if pagination.PageCount < 1 {
		pagination.PageCount = 1
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	return BlogIndex{Posts: posts.Posts, Categories: categories, Pagination: pagination}
}

func (c *Content) LoadTestimonials(ctx context.Context, featuredOnly bool) []models.Testimonial {
	testimonials, err := c.client.GetTestimonials(ctx, featuredOnly)
	if err != nil {
		c.fallback("testimonials", err)
		return FallbackTestimonials()
	}
	return testimonials
}

func (c *Content) LoadFAQs(ctx context.Context, category string) []models.FAQ {
	faqs, err := c.client.GetFAQs(ctx, category)
	if err != nil {
		c.fallback("faqs", err)
		return FallbackFAQs()
	}
	return faqs
}

type Home struct {
	Testimonials []models.Testimonial
	FAQs         []models.FAQ
}

// LoadHome fetches featured testimonials and FAQs concurrently. Each falls
// back on its own.
func (c *Content) LoadHome(ctx context.Context) Home {
	var home Home

	var g errgroup.Group
	g.Go(func() error {
		home.Testimonials = c.LoadTestimonials(ctx, true)
		return nil
	})
	g.Go(func() error {
		home.FAQs = c.LoadFAQs(ctx, "")
		return nil
	})
	_ = g.Wait()

	return home
}

type PostPage struct {
	Post    *models.BlogPost
	Related []models.BlogPost
}

// LoadPost fetches a post and its related posts. A nil Post means not found.
// Related posts are best effort.
func (c *Content) LoadPost(ctx context.Context, slug string) (PostPage, error) {
	var page PostPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Post, err = c.client.GetBlogPost(gctx, slug)
		return err
	})
	g.Go(func() error {
		related, err := c.client.GetRelatedPosts(gctx, slug)
		if err != nil {
			c.logger.Warn().Err(err).Str("slug", slug).Msg("related posts unavailable")
			return nil
		}
		page.Related = related
		return nil
	})

	if err := g.Wait(); err != nil {
		return PostPage{}, err
	}
	return page, nil
}

// LoadLegalPage returns the CMS page, or nil when the samples should be used.
func (c *Content) LoadLegalPage(ctx context.Context, slug string) *models.LegalPage {
	page, err := c.client.GetLegalPage(ctx, slug)
	if err != nil {
		c.fallback("legal:"+slug, err)
		return nil
	}
	if page == nil {
		c.metrics.fallbackServed("legal:" + slug)
	}
	return page
}

func (c *Content) fallback(content string, err error) {
	c.logger.Warn().Err(err).Str("content", content).Msg("serving fallback content")
	c.metrics.fallbackServed(content)
}
