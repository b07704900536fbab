package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/models"
	"github.com/westbourne-advisory/website/videobg"
)

const maxAPIPageSize = 100

// contentHandler serves CMS content as JSON. Unlike the pages it reports CMS
// failures instead of substituting sample content.
type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	client    *cms.Client
	sections  []videobg.Section
}

func newContentHandler(client *cms.Client, sections []videobg.Section) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()
	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		client:    client,
		sections:  sections,
	}
}

type BlogPostsResponse struct {
	Posts      []models.BlogPost `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// getBlogPosts lists published posts
// @Router /api/blog-posts [get]
func (h contentHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageSize := queryInt(r, "pageSize", BlogPageSize)
		if pageSize > maxAPIPageSize {
			h.responder.WriteError(w, errs.NewInvalidFieldError("pageSize", "must be at most "+strconv.Itoa(maxAPIPageSize)))
			return
		}

		list, err := h.client.GetBlogPosts(r.Context(), cms.BlogPostParams{
			Page:     queryInt(r, "page", 1),
			PageSize: pageSize,
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewCMSApiErr("get blog posts", err))
			return
		}

		posts := list.Posts
		if posts == nil {
			posts = []models.BlogPost{}
		}
		h.responder.WriteJSON(w, BlogPostsResponse{Posts: posts, Pagination: list.Pagination})
	}
}

// getBlogPost returns one post by slug
// @Router /api/blog-posts/{slug} [get]
func (h contentHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		post, err := h.client.GetBlogPost(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, errs.NewCMSApiErr("get blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Router /api/blog-categories [get]
func (h contentHandler) getBlogCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.client.GetBlogCategories(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewCMSApiErr("get blog categories", err))
			return
		}
		h.responder.WriteJSON(w, CategoriesResponse{Categories: categories})
	}
}

// @Router /api/testimonials [get]
func (h contentHandler) getTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))

		testimonials, err := h.client.GetTestimonials(r.Context(), featured)
		if err != nil {
			h.responder.WriteError(w, errs.NewCMSApiErr("get testimonials", err))
			return
		}
		if testimonials == nil {
			testimonials = []models.Testimonial{}
		}
		h.responder.WriteJSON(w, testimonials)
	}
}

// @Router /api/faqs [get]
func (h contentHandler) getFAQs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faqs, err := h.client.GetFAQs(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
		if err != nil {
			h.responder.WriteError(w, errs.NewCMSApiErr("get faqs", err))
			return
		}
		if faqs == nil {
			faqs = []models.FAQ{}
		}
		h.responder.WriteJSON(w, faqs)
	}
}

// getVideoSections returns the section to video table used by video-bg.js.
// @Router /api/video-sections [get]
func (h contentHandler) getVideoSections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"initialVideo":    videobg.InitialVideo,
			"minVisibleRatio": videobg.MinVisibleRatio,
			"delayMs":         videobg.DefaultDelay.Milliseconds(),
			"sections":        h.sections,
		})
	}
}
