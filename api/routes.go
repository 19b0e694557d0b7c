package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupContentRoutes sets up the public site routes and the admin routes
// behind the shared-secret gate
func setupContentRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/collections/projects", handlers.projectHandler.listProjects())
		r.Get("/collections/team", handlers.teamHandler.listTeam())
		r.Post("/messages", handlers.messageHandler.createMessage())
	})

	// Authenticated admin routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		// Collection endpoints
		r.Post("/collections/projects", handlers.projectHandler.replaceProjects())
		r.Delete("/collections/projects", handlers.projectHandler.deleteProject())
		r.Post("/collections/team", handlers.teamHandler.replaceTeam())
		r.Delete("/collections/team", handlers.teamHandler.deleteTeamMember())
		r.Get("/collections/messages", handlers.messageHandler.listMessages())
		r.Delete("/collections/messages", handlers.messageHandler.deleteMessages())

		// Media endpoints
		r.Post("/media", handlers.mediaHandler.upload())
		r.Delete("/media", handlers.mediaHandler.remove())
	})
}

// setupAssetRoutes serves derived media from the primary local storage root
// so uploaded files resolve under their public reference paths.
func setupAssetRoutes(r chi.Router, assetPrefix, uploadsDir string) {
	fileServer := http.StripPrefix(assetPrefix, http.FileServer(http.Dir(uploadsDir)))
	r.Get(assetPrefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})
}
