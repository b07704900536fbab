package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/richtext"
	"github.com/westbourne-advisory/website/videobg"
	"github.com/westbourne-advisory/website/web"
)

// BlogPageSize is how many posts the blog index shows per page.
const BlogPageSize = 9

type pageHandler struct {
	renderer  pageRenderer
	logger    zerolog.Logger
	content   *cms.Content
	mediaBase string
}

func newPageHandler(renderer pageRenderer, content *cms.Content) pageHandler {
	return pageHandler{
		renderer:  renderer,
		logger:    log.With().Str("handlerName", "pageHandler").Logger(),
		content:   content,
		mediaBase: content.Client().BaseURL(),
	}
}

func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		home := h.content.LoadHome(r.Context())

		status := r.URL.Query().Get("contact")
		h.renderer.render(w, r, http.StatusOK, web.PageHome, web.Page{
			Description: "Expert UK surrogacy law for intended parents: surrogacy agreements, parental orders and international arrangements.",
			BodyClass:   "home",
			Data: homeView{
				InitialVideo:   videobg.InitialVideo,
				Testimonials:   newTestimonialViews(home.Testimonials, h.mediaBase),
				FAQs:           home.FAQs,
				ContactSent:    status == contactSent,
				ContactInvalid: status == contactInvalid,
			},
		})
	}
}

func (h pageHandler) blogIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		category := strings.TrimSpace(query.Get("category"))
		search := strings.TrimSpace(query.Get("q"))

		idx := h.content.LoadBlogIndex(r.Context(), cms.BlogPostParams{
			Page:     page,
			PageSize: BlogPageSize,
			Category: category,
			Search:   search,
		})

		current := idx.Pagination.Page
		total := idx.Pagination.PageCount
		view := blogIndexView{
			Category:   category,
			Search:     search,
			Categories: categoryLinks(idx.Categories, category, search),
			Posts:      newPostCards(idx.Posts, h.mediaBase),
			TotalPages: total,
			PageLinks:  pageLinks(current, total, category, search),
			Fallback:   idx.Fallback,
		}
		if current > 1 {
			view.PrevURL = blogURL(current-1, category, search)
		}
		if current < total {
			view.NextURL = blogURL(current+1, category, search)
		}

		title := "Blog"
		if category != "" {
			title = category + " | Blog"
		}
		h.renderer.render(w, r, http.StatusOK, web.PageBlogIndex, web.Page{
			Title:       title,
			Description: "Articles on UK surrogacy law, parental orders and the legal journey for intended parents.",
			BodyClass:   "blog",
			Path:        "/blog",
			Data:        view,
		})
	}
}

func (h pageHandler) blogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		page, err := h.content.LoadPost(r.Context(), slug)
		if err != nil {
			h.logger.Warn().Err(err).Str("slug", slug).Msg("blog post unavailable")
			h.renderer.notFound(w, r)
			return
		}
		if page.Post == nil {
			h.renderer.notFound(w, r)
			return
		}

		post := page.Post
		body, err := richtext.Render(post.Content)
		if err != nil {
			h.renderer.serverError(w, r, fmt.Errorf("render post %s: %w", slug, err))
			return
		}

		title := post.Title
		if post.SEOTitle != "" {
			title = post.SEOTitle
		}
		description := post.Excerpt
		if post.SEODescription != "" {
			description = post.SEODescription
		}

		h.renderer.render(w, r, http.StatusOK, web.PageBlogPost, web.Page{
			Title:       title,
			Description: description,
			BodyClass:   "blog-post",
			Data: blogPostView{
				Post:    newPostCard(*post, h.mediaBase),
				Body:    body,
				Tags:    splitTags(post.Tags),
				Related: newPostCards(page.Related, h.mediaBase),
			},
		})
	}
}

func (h pageHandler) privacy() http.HandlerFunc {
	return h.legal(cms.PrivacyPolicySlug)
}

func (h pageHandler) terms() http.HandlerFunc {
	return h.legal(cms.TermsAndConditionsSlug)
}

// legal renders a CMS legal page, or the built-in text when the CMS has none.
func (h pageHandler) legal(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb := cms.FallbackLegalPage(slug)
		var (
			view        legalView
			title       string
			description = fb.Description
		)

		if page := h.content.LoadLegalPage(r.Context(), slug); page != nil {
			body, err := richtext.RenderWithClasses(page.Content, richtext.LegalClasses)
			if err != nil {
				h.renderer.serverError(w, r, fmt.Errorf("render legal page %s: %w", slug, err))
				return
			}
			view = legalView{
				ShowHeader:  true,
				Title:       page.Title,
				LastUpdated: page.LastUpdated.Long(),
				Body:        body,
			}
			title = page.Title
			if page.MetaTitle != "" {
				title = page.MetaTitle
			}
			if page.MetaDescription != "" {
				description = page.MetaDescription
			}
		} else {
			view = legalView{Title: fb.Title, LastUpdated: fb.LastUpdated, Body: fb.HTML}
			title = fb.Title
		}

		h.renderer.render(w, r, http.StatusOK, web.PageLegal, web.Page{
			Title:       title,
			Description: description,
			BodyClass:   "legal",
			Data:        view,
		})
	}
}

func (h pageHandler) notFound() http.HandlerFunc {
	return h.renderer.notFound
}
