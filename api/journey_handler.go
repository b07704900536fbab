package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/database"
	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/models"
	"github.com/westbourne-advisory/website/web"
)

// Notifier is told about every stored submission.
type Notifier interface {
	NotifyIntake(ctx context.Context, app *models.IntakeApplication) error
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
}

// maxFormBytes caps the size of a posted form.
const maxFormBytes = 64 << 10

// notifyTimeout bounds the notifications sent after a submission.
const notifyTimeout = 20 * time.Second

const (
	actionNext   = "next"
	actionPrev   = "prev"
	actionSubmit = "submit"
)

type journeyHandler struct {
	renderer   pageRenderer
	logger     zerolog.Logger
	drafts     *intake.DraftCodec
	intakeRepo *database.IntakeApplicationRepo
	notifier   Notifier
	now        func() time.Time
}

func newJourneyHandler(renderer pageRenderer, drafts *intake.DraftCodec, intakeRepo *database.IntakeApplicationRepo, notifier Notifier, now func() time.Time) journeyHandler {
	return journeyHandler{
		renderer:   renderer,
		logger:     log.With().Str("handlerName", "journeyHandler").Logger(),
		drafts:     drafts,
		intakeRepo: intakeRepo,
		notifier:   notifier,
		now:        now,
	}
}

func (h journeyHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := h.drafts.FromRequest(r)
		h.renderStep(w, r, http.StatusOK, draft, nil)
	}
}

// submit handles every button of the form. The posted fields always belong
// to the step currently stored in the draft.
func (h journeyHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			h.renderer.render(w, r, http.StatusBadRequest, web.PageError, web.Page{
				Title: "Something Went Wrong",
				Data:  messageView{Message: "We could not read the form. Please try again."},
			})
			return
		}

		draft := h.drafts.FromRequest(r)
		posted := draft.Step
		draft.Apply(posted, r.PostForm)

		// Over-long answers are shown back without replacing the stored draft.
		if fieldErrs := draft.CheckLengths(posted); !fieldErrs.Empty() {
			h.renderStep(w, r, http.StatusUnprocessableEntity, draft, fieldErrs)
			return
		}

		switch r.PostForm.Get("action") {
		case actionPrev:
			draft.Prev()
			h.saveAndRender(w, r, draft, posted)
		case actionSubmit:
			h.complete(w, r, draft, posted)
		default:
			if fieldErrs := draft.Next(); !fieldErrs.Empty() {
				h.saveAndRenderErrors(w, r, draft, posted, fieldErrs)
				return
			}
			h.saveAndRender(w, r, draft, posted)
		}
	}
}

// complete validates every step, stores the application and notifies the firm.
func (h journeyHandler) complete(w http.ResponseWriter, r *http.Request, draft *intake.Draft, posted int) {
	if step, fieldErrs := draft.ValidateAll(); !fieldErrs.Empty() {
		draft.Step = step
		h.saveAndRenderErrors(w, r, draft, posted, fieldErrs)
		return
	}

	app, err := draft.Application(h.now())
	if err != nil {
		h.renderer.serverError(w, r, err)
		return
	}

	if err := h.intakeRepo.Add(r.Context(), app); err != nil {
		if !errs.IsDatabaseDisabled(err) {
			h.renderer.serverError(w, r, wrapDatabaseError("save", "intake application", err))
			return
		}
		h.logger.Warn().Str("application", app.ID.String()).Msg("database not configured, intake application not stored")
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
	defer cancel()
	if err := h.notifier.NotifyIntake(ctx, app); err != nil {
		h.logger.Warn().Err(err).Str("application", app.ID.String()).Msg("intake notifications incomplete")
	}

	http.SetCookie(w, h.drafts.ClearCookie())
	h.renderer.render(w, r, http.StatusOK, web.PageStartJourney, web.Page{
		Title:     "Application Received",
		BodyClass: "journey",
		Data:      journeyView{Submitted: true},
	})
}

func (h journeyHandler) saveAndRender(w http.ResponseWriter, r *http.Request, draft *intake.Draft, posted int) {
	if !h.saveDraft(w, r, draft, posted) {
		return
	}
	h.renderStep(w, r, http.StatusOK, draft, nil)
}

func (h journeyHandler) saveAndRenderErrors(w http.ResponseWriter, r *http.Request, draft *intake.Draft, posted int, fieldErrs intake.FieldErrors) {
	if !h.saveDraft(w, r, draft, posted) {
		return
	}
	h.renderStep(w, r, http.StatusUnprocessableEntity, draft, fieldErrs)
}

// saveDraft sets the draft cookie. A draft too large for a cookie sends the
// visitor back to the posted step with its longest answer flagged, and the
// previous cookie stays in place.
func (h journeyHandler) saveDraft(w http.ResponseWriter, r *http.Request, draft *intake.Draft, posted int) bool {
	cookie, err := h.drafts.Cookie(draft)
	if errors.Is(err, intake.ErrDraftTooLarge) {
		h.logger.Info().Err(err).Int("step", posted).Msg("intake draft too large")
		draft.Step = posted
		h.renderStep(w, r, http.StatusUnprocessableEntity, draft, intake.FieldErrors{
			draft.LongestAnswer(posted): "Your answers are too long to save. Please shorten this one.",
		})
		return false
	}
	if err != nil {
		h.renderer.serverError(w, r, err)
		return false
	}
	http.SetCookie(w, cookie)
	return true
}

func (h journeyHandler) renderStep(w http.ResponseWriter, r *http.Request, status int, draft *intake.Draft, fieldErrs intake.FieldErrors) {
	h.renderer.render(w, r, status, web.PageStartJourney, web.Page{
		Title:       "Start Your Journey",
		Description: "Tell us about your situation and our surrogacy lawyers will be in touch.",
		BodyClass:   "journey",
		Data:        newJourneyView(draft, fieldErrs),
	})
}
