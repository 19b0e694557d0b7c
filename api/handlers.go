package api

import (
	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/media"
	"github.com/purdeep/studio-backend/ratelimit"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, pipeline *media.Pipeline, limiter ratelimit.Store) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db.ProjectRepo(), pipeline),
		teamHandler:    newTeamHandler(db.TeamRepo(), pipeline),
		messageHandler: newMessageHandler(db.MessageRepo(), limiter),
		mediaHandler:   newMediaHandler(pipeline),
	}
}
