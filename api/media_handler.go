package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/errs"
	"github.com/purdeep/studio-backend/media"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	pipeline  *media.Pipeline
}

func newMediaHandler(pipeline *media.Pipeline) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		pipeline:  pipeline,
	}
}

type deleteMediaRequest struct {
	URL string `json:"url"`
}

// upload runs a multipart upload through the derivation pipeline
// @Summary Upload media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (max 20MB)"
// @Param folder formData string false "Logical upload folder" default(misc)
// @Success 200 {object} map[string]string "Public URL of the derived file"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or oversize file"
// @Failure 500 {object} ErrorResponse "Internal Server Error - No storage target accepted the file"
// @Router /media [post]
func (h mediaHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "misc"
		}

		// Read one byte past the cap so Derive can reject oversize uploads
		// without buffering arbitrarily large bodies.
		raw, err := io.ReadAll(io.LimitReader(file, media.DefaultMaxUploadBytes+1))
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read upload")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}

		url, err := h.pipeline.Derive(raw, header.Filename, folder)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"url": url})
	}
}

// remove best-effort deletes a derived file from every storage root
// @Summary Delete media
// @Tags Media
// @Accept json
// @Produce json
// @Param request body deleteMediaRequest true "Public URL of the file"
// @Success 200 {object} map[string]bool "Success (no-op for non-managed URLs)"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed request"
// @Router /media [delete]
func (h mediaHandler) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		var req deleteMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("delete request", err))
			return
		}

		h.pipeline.Delete(req.URL)

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
