package cms

import (
	"context"
	"fmt"

	"github.com/westbourne-advisory/website/models"
)

const (
	blogPostsEndpoint = "/blog-posts"

	statusPublished = "published"

	relatedFetchSize = 3
	relatedLimit     = 2
)

type BlogPostParams struct {
	Page     int
	PageSize int
	Category string
	Search   string
}

type BlogPostList struct {
	Posts      []models.BlogPost
	Pagination models.Pagination
}

// BlogPostsQuery is the query GetBlogPosts sends for params.
func BlogPostsQuery(params BlogPostParams) Query {
	q := NewQuery()
	if params.Page > 0 {
		q = q.Page(params.Page)
	}
	if params.PageSize > 0 {
		q = q.PageSize(params.PageSize)
	}
	if params.Category != "" {
		q = q.FilterEq("category", params.Category)
	}
	if params.Search != "" {
		q = q.FilterOrContains(0, "title", params.Search).
			FilterOrContains(1, "content", params.Search)
	}
	return q.FilterEq("status", statusPublished).
		Sort("publishedAt", "desc").
		Populate("featuredImage")
}

// GetBlogPosts lists published posts, newest first.
func (c *Client) GetBlogPosts(ctx context.Context, params BlogPostParams) (BlogPostList, error) {
	var res list[models.BlogPost]
	if err := c.fetch(ctx, blogPostsEndpoint, BlogPostsQuery(params), &res); err != nil {
		return BlogPostList{}, fmt.Errorf("get blog posts: %w", err)
	}
	return BlogPostList{Posts: res.Items, Pagination: res.Pagination}, nil
}

// GetBlogPost returns the published post with slug, or nil if there is none.
func (c *Client) GetBlogPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	q := NewQuery().
		FilterEq("slug", slug).
		FilterEq("status", statusPublished).
		Populate("featuredImage")

	var res list[models.BlogPost]
	if err := c.fetch(ctx, blogPostsEndpoint, q, &res); err != nil {
		return nil, fmt.Errorf("get blog post %q: %w", slug, err)
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	return &res.Items[0], nil
}

// GetBlogCategories returns the distinct categories of published posts in
// the order they first appear.
func (c *Client) GetBlogCategories(ctx context.Context) ([]string, error) {
	q := NewQuery().FilterEq("status", statusPublished)

	var res list[models.BlogPost]
	if err := c.fetch(ctx, blogPostsEndpoint, q, &res); err != nil {
		return nil, fmt.Errorf("get blog categories: %w", err)
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range res.Items {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// GetRelatedPosts returns up to two recent posts other than slug.
func (c *Client) GetRelatedPosts(ctx context.Context, slug string) ([]models.BlogPost, error) {
	res, err := c.GetBlogPosts(ctx, BlogPostParams{PageSize: relatedFetchSize})
	if err != nil {
		return nil, fmt.Errorf("get related posts: %w", err)
	}

	related := make([]models.BlogPost, 0, relatedLimit)
	for _, p := range res.Posts {
		if p.Slug == slug {
			continue
		}
		related = append(related, p)
		if len(related) == relatedLimit {
			break
		}
	}
	return related, nil
}
