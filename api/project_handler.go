package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/errs"
	"github.com/purdeep/studio-backend/media"
	"github.com/purdeep/studio-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	pipeline    *media.Pipeline
}

func newProjectHandler(projectRepo *database.ProjectRepo, pipeline *media.Pipeline) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		pipeline:    pipeline,
	}
}

// deleteProjectRequest identifies the record to remove; the optional images
// list overrides the stored record's image references for cleanup.
type deleteProjectRequest struct {
	ID     int      `json:"id"`
	Images []string `json:"images,omitempty"`
}

// listProjects returns the full project collection
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "Project collection"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error reading projects"
// @Router /collections/projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapPersistenceError("load", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// replaceProjects overwrites the whole project collection
// @Summary Replace project collection
// @Tags Projects
// @Accept json
// @Produce json
// @Param projects body []models.Project true "Full replacement collection"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed collection"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error saving projects"
// @Router /collections/projects [post]
func (h projectHandler) replaceProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var projects []models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&projects); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project collection")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project collection", err))
			return
		}

		if err := h.projectRepo.ReplaceAll(projects); err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// deleteProject removes one project and best-effort cleans up its media
// @Summary Delete project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body deleteProjectRequest true "Project id and optional image override"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed request"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /collections/projects [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		var req deleteProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("delete request", err))
			return
		}

		removed, err := h.projectRepo.DeleteByID(req.ID)
		if err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "projects", err))
			return
		}

		// Image cleanup is best-effort: the record deletion already
		// succeeded, per-file failures are logged inside the pipeline.
		images := req.Images
		if images == nil && removed != nil {
			images = removed.Images
		}
		for _, img := range images {
			h.pipeline.Delete(img)
		}

		if removed != nil {
			h.pipeline.RemoveFolder(fmt.Sprintf("projects/%s/%d", categoryFolder(removed.Category), req.ID))
			// Legacy layout kept project folders directly under projects/.
			h.pipeline.RemoveFolder(fmt.Sprintf("projects/%d", req.ID))
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// categoryFolder maps a display category to its upload subdirectory.
func categoryFolder(category string) string {
	switch {
	case strings.Contains(category, "Hotel"):
		return "hotel"
	case strings.Contains(category, "Villa"):
		return "villa"
	case strings.Contains(category, "Apartment"):
		return "apartment"
	default:
		return "other"
	}
}
