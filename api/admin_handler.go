package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/models"
)

type adminHandler struct {
	responder   Responder
	logger      zerolog.Logger
	intakeRepo  *database.IntakeApplicationRepo
	contactRepo *database.ContactMessageRepo
}

func newAdminHandler(intakeRepo *database.IntakeApplicationRepo, contactRepo *database.ContactMessageRepo) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()
	return adminHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		intakeRepo:  intakeRepo,
		contactRepo: contactRepo,
	}
}

type IntakeApplicationsResponse struct {
	Applications []*models.IntakeApplication `json:"applications"`
	Total        int                         `json:"total"`
}

type ContactMessagesResponse struct {
	Messages []*models.ContactMessage `json:"messages"`
	Total    int                      `json:"total"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// getIntakeApplications lists the most recent applications
// @Router /api/admin/intake-applications [get]
func (h adminHandler) getIntakeApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxIsAdmin(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		apps, err := h.intakeRepo.FindAll(r.Context(), queryInt(r, "limit", database.DefaultListLimit))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "intake applications", err))
			return
		}
		if apps == nil {
			apps = []*models.IntakeApplication{}
		}
		h.responder.WriteJSON(w, IntakeApplicationsResponse{Applications: apps, Total: len(apps)})
	}
}

// getIntakeApplication returns a single application
// @Router /api/admin/intake-applications/{applicationID} [get]
func (h adminHandler) getIntakeApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxIsAdmin(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		app, err := h.intakeRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "intake application", err))
			return
		}
		h.responder.WriteJSON(w, app)
	}
}

// updateIntakeStatus records whether the firm has followed up an application
// @Router /api/admin/intake-applications/{applicationID}/status [put]
func (h adminHandler) updateIntakeStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxIsAdmin(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("status update", err))
			return
		}
		if req.Status != models.IntakeStatusNew && req.Status != models.IntakeStatusContacted {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be new or contacted"))
			return
		}

		if err := h.intakeRepo.UpdateStatus(r.Context(), id, req.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "intake application", err))
			return
		}

		h.logger.Info().Str("application", id.String()).Str("status", req.Status).Msg("intake application status updated")
		h.responder.WriteJSON(w, map[string]string{"id": id.String(), "status": req.Status})
	}
}

// getContactMessages lists the most recent contact form messages
// @Router /api/admin/contact-messages [get]
func (h adminHandler) getContactMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxIsAdmin(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		msgs, err := h.contactRepo.FindAll(r.Context(), queryInt(r, "limit", database.DefaultListLimit))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact messages", err))
			return
		}
		if msgs == nil {
			msgs = []*models.ContactMessage{}
		}
		h.responder.WriteJSON(w, ContactMessagesResponse{Messages: msgs, Total: len(msgs)})
	}
}
