package api

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/models"
)

// Values of the contact query parameter the home page reads after a redirect.
const (
	contactSent    = "sent"
	contactInvalid = "invalid"
)

const maxMessageLength = 5000

type contactHandler struct {
	renderer    pageRenderer
	logger      zerolog.Logger
	contactRepo *database.ContactMessageRepo
	notifier    Notifier
	now         func() time.Time
}

func newContactHandler(renderer pageRenderer, contactRepo *database.ContactMessageRepo, notifier Notifier, now func() time.Time) contactHandler {
	return contactHandler{
		renderer:    renderer,
		logger:      log.With().Str("handlerName", "contactHandler").Logger(),
		contactRepo: contactRepo,
		notifier:    notifier,
		now:         now,
	}
}

// create stores a contact form message and sends the visitor back to the form.
func (h contactHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			redirectToContact(w, r, contactInvalid)
			return
		}

		msg := &models.ContactMessage{
			ID:        uuid.New(),
			Name:      strings.TrimSpace(r.PostForm.Get("name")),
			Email:     strings.TrimSpace(r.PostForm.Get("email")),
			Phone:     strings.TrimSpace(r.PostForm.Get("phone")),
			Message:   strings.TrimSpace(r.PostForm.Get("message")),
			CreatedAt: h.now().UTC(),
		}
		if !validContact(msg) {
			redirectToContact(w, r, contactInvalid)
			return
		}

		if err := h.contactRepo.Add(r.Context(), msg); err != nil {
			if !errs.IsDatabaseDisabled(err) {
				h.renderer.serverError(w, r, wrapDatabaseError("save", "contact message", err))
				return
			}
			h.logger.Warn().Str("message", msg.ID.String()).Msg("database not configured, contact message not stored")
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyContact(ctx, msg); err != nil {
			h.logger.Warn().Err(err).Str("message", msg.ID.String()).Msg("contact notification failed")
		}

		redirectToContact(w, r, contactSent)
	}
}

func validContact(msg *models.ContactMessage) bool {
	if msg.Name == "" || msg.Email == "" {
		return false
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return false
	}
	return utf8.RuneCountInString(msg.Message) <= maxMessageLength
}

func redirectToContact(w http.ResponseWriter, r *http.Request, status string) {
	http.Redirect(w, r, "/?contact="+status+"#contact", http.StatusSeeOther)
}
