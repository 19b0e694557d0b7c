package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/errs"
	"github.com/purdeep/studio-backend/models"
	"github.com/purdeep/studio-backend/ratelimit"
)

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
	limiter     ratelimit.Store
	now         func() time.Time
}

func newMessageHandler(messageRepo *database.MessageRepo, limiter ratelimit.Store) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		limiter:     limiter,
		now:         time.Now,
	}
}

// createMessageRequest carries a contact-form submission. WebsiteURL is a
// honeypot: the form never shows the field, so any value means a bot.
type createMessageRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	WebsiteURL string `json:"website_url"`
}

type deleteMessagesRequest struct {
	IDs []int64 `json:"ids"`
}

// createMessage accepts a public contact-form submission
// @Summary Submit contact message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body createMessageRequest true "Submission"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed submission"
// @Failure 429 {object} ErrorResponse "Too Many Requests - Submission window not elapsed"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error saving message"
// @Router /messages [post]
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("message", err))
			return
		}

		// Honeypot tripped: report success so the bot moves on, store nothing.
		if req.WebsiteURL != "" {
			h.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("honeypot triggered, dropping submission")
			h.responder.WriteJSON(w, map[string]bool{"success": true})
			return
		}

		if !h.limiter.Allow(callerIdentity(r)) {
			h.responder.WriteError(w, errs.NewRateLimitError("Please wait 10 minutes between submissions"))
			return
		}

		msg := models.NewMessage(req.Name, req.Phone, req.Message, h.now())
		if err := h.messageRepo.Prepend(msg); err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "messages", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// listMessages returns every stored submission
// @Summary List messages
// @Tags Messages
// @Produce json
// @Success 200 {array} models.Message "Message collection, newest first"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error reading messages"
// @Router /collections/messages [get]
func (h messageHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		messages, err := h.messageRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapPersistenceError("load", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// deleteMessages removes every message matching the submitted ids
// @Summary Delete messages
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body deleteMessagesRequest true "Message ids"
// @Success 200 {object} map[string]bool "Success"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed request"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting messages"
// @Router /collections/messages [delete]
func (h messageHandler) deleteMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		var req deleteMessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("delete request", err))
			return
		}

		if err := h.messageRepo.DeleteByIDs(req.IDs); err != nil {
			h.responder.WriteError(w, wrapPersistenceError("save", "messages", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// callerIdentity keys the rate limiter: first X-Forwarded-For entry when
// present, otherwise the connection's remote host. The forwarded header is
// trivially spoofable; that weakness is accepted rather than silently fixed.
func callerIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
