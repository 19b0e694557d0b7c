package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/errs"
	"github.com/purdeep/studio-backend/media"
	"github.com/purdeep/studio-backend/models"
)

type teamHandler struct {
	responder Responder
	logger    zerolog.Logger
	teamRepo  *database.TeamRepo
	pipeline  *media.Pipeline
}

func newTeamHandler(teamRepo *database.TeamRepo, pipeline *media.Pipeline) teamHandler {
	logger := log.With().Str("handlerName", "teamHandler").Logger()

	return teamHandler{
		responder: NewResponder(logger),
		logger:    logger,
		teamRepo:  teamRepo,
		pipeline:  pipeline,
	}
}

type deleteTeamMemberRequest struct {
	ID    int    `json:"id"`
	Image string `json:"image,omitempty"`
}

// listTeam returns the full team collection
// @Summary List team members
// @Tags Team
// @Produce json
// @Success 200 {array} models.TeamMember "Team collection"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error reading team"
// @Router /collections/team [get]
func (h teamHandler) listTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := h.teamRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapPersistenceError("load", "team", err))
			return
		}

		h.responder.WriteJSON(w, team)
	}
}

// replaceTeam overwrites the whole team collection
// @Summary Replace team collection
// @Tags Team
// @Accept json
// @Produce json
// @Param team body []models.TeamMember true "Full replacement collection"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed collection"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error saving team"
// @Router /collections/team [post]
func (h teamHandler) replaceTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var team []models.TeamMember
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&team); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode team collection")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("team collection", err))
			return
		}

		if err := h.teamRepo.ReplaceAll(team); err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "team", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// deleteTeamMember removes one member and best-effort deletes their photo
// @Summary Delete team member
// @Tags Team
// @Accept json
// @Produce json
// @Param request body deleteTeamMemberRequest true "Member id and optional image override"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed request"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting member"
// @Router /collections/team [delete]
func (h teamHandler) deleteTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		var req deleteTeamMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("delete request", err))
			return
		}

		removed, err := h.teamRepo.DeleteByID(req.ID)
		if err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "team", err))
			return
		}

		image := req.Image
		if image == "" && removed != nil {
			image = removed.Image
		}
		if image != "" {
			h.pipeline.Delete(image)
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
