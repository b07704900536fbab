package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/westbourne-advisory/website/web"
)

type routeConfig struct {
	cmsOrigin      string
	logFormat      string
	allowedOrigins []string
	registry       *prometheus.Registry
}

// setupRoutes mounts the pages at the root and the JSON API under /api.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, cfg routeConfig) {
	metrics := newHTTPMetrics(cfg.registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LogInternalServerErrors)
	r.Use(metrics.instrument)
	r.Use(securityHeaders(cfg.cmsOrigin))

	r.Get("/healthz", handlers.seoHandler.healthz())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware(cfg.logFormat))

		r.NotFound(handlers.pageHandler.notFound())

		// Pages
		r.Get("/", handlers.pageHandler.home())
		r.Get("/blog", handlers.pageHandler.blogIndex())
		r.Get("/blog/{slug}", handlers.pageHandler.blogPost())
		r.Get("/privacy", handlers.pageHandler.privacy())
		r.Get("/terms", handlers.pageHandler.terms())

		// Forms
		r.Get("/start-journey", handlers.journeyHandler.show())
		r.Post("/start-journey", handlers.journeyHandler.submit())
		r.Post("/contact", handlers.contactHandler.create())

		// Crawlers and assets
		r.Get("/sitemap.xml", handlers.seoHandler.sitemapXML())
		r.Get("/robots.txt", handlers.seoHandler.robotsTXT())
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

		r.Route("/api", func(r chi.Router) {
			r.Use(CORSCheckMiddleware(cfg.allowedOrigins))
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.allowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
				MaxAge:         300,
			}))

			r.Get("/blog-posts", handlers.contentHandler.getBlogPosts())
			r.Get("/blog-posts/{slug}", handlers.contentHandler.getBlogPost())
			r.Get("/blog-categories", handlers.contentHandler.getBlogCategories())
			r.Get("/testimonials", handlers.contentHandler.getTestimonials())
			r.Get("/faqs", handlers.contentHandler.getFAQs())
			r.Get("/video-sections", handlers.contentHandler.getVideoSections())

			r.Route("/admin", func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/intake-applications", handlers.adminHandler.getIntakeApplications())
				r.Get("/intake-applications/{applicationID}", handlers.adminHandler.getIntakeApplication())
				r.Put("/intake-applications/{applicationID}/status", handlers.adminHandler.updateIntakeStatus())
				r.Get("/contact-messages", handlers.adminHandler.getContactMessages())
			})
		})
	})
}
