package sitemap

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/cms"
)

// PostLister is the part of the CMS client the sitemap needs.
type PostLister interface {
	GetBlogPosts(ctx context.Context, params cms.BlogPostParams) (cms.BlogPostList, error)
}

// Generate builds the entries for siteURL. When the posts cannot be
// fetched only the static pages are listed.
func Generate(ctx context.Context, posts PostLister, siteURL string, now time.Time) []Entry {
	res, err := posts.GetBlogPosts(ctx, cms.BlogPostParams{PageSize: PostPageSize})
	if err != nil {
		log.Warn().Err(err).Msg("sitemap: blog posts unavailable, listing static pages only")
		return Entries(siteURL, nil, now)
	}
	return Entries(siteURL, res.Posts, now)
}
