package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Deps, rt router) *routeHandlers {
	renderer := pageRenderer{
		templates: deps.Templates,
		siteName:  rt.siteName,
		siteURL:   rt.siteURL,
		now:       deps.Now,
		logger:    rt.logger,
	}

	return &routeHandlers{
		pageHandler:    newPageHandler(renderer, deps.Content),
		journeyHandler: newJourneyHandler(renderer, deps.Drafts, deps.Database.IntakeApplicationRepo(), deps.Notifier, deps.Now),
		contactHandler: newContactHandler(renderer, deps.Database.ContactMessageRepo(), deps.Notifier, deps.Now),
		contentHandler: newContentHandler(deps.Content.Client(), deps.Sections),
		adminHandler:   newAdminHandler(deps.Database.IntakeApplicationRepo(), deps.Database.ContactMessageRepo()),
		seoHandler:     newSEOHandler(deps.Content.Client(), deps.Database, rt.siteURL, rt.startupTime, deps.Now),
	}
}
