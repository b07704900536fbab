package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/models"
)

// Mailer sends an HTML email.
type Mailer interface {
	Send(ctx context.Context, subject, html, replyTo string, recipients []string) error
}

// TextMessenger sends an SMS.
type TextMessenger interface {
	Send(to, body string) error
}

// IntakeArchiver stores a copy of an intake application.
type IntakeArchiver interface {
	ArchiveIntake(ctx context.Context, app *models.IntakeApplication) error
}

// NotifierConfig wires the notification channels. A nil channel is skipped.
type NotifierConfig struct {
	SiteName   string
	Mailer     Mailer
	Recipients []string
	SMS        TextMessenger
	SMSTo      string
	Archiver   IntakeArchiver
}

// Notifier tells the firm about new intake applications and contact messages.
// Each channel is attempted even when another one fails.
type Notifier struct {
	cfg    NotifierConfig
	logger zerolog.Logger
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: log.With().Str("component", "notifier").Logger(),
	}
}

type answerRow struct {
	Label string
	Value string
}

var intakeEmail = template.Must(template.New("intake").Parse(`<h2>New intake application</h2>
<p><strong>{{.App.FullName}}</strong> ({{.App.Email}}) submitted the start your journey form on {{.Submitted}}.</p>
<table cellpadding="6" style="border-collapse:collapse">
{{range .Rows}}<tr><td style="vertical-align:top"><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{end}}</table>
<p>Reference: {{.App.ID}}</p>
`))

var contactEmail = template.Must(template.New("contact").Parse(`<h2>New contact message</h2>
<p><strong>{{.Name}}</strong> ({{.Email}}){{if .Phone}}, {{.Phone}}{{end}}</p>
<p style="white-space:pre-wrap">{{.Message}}</p>
`))

// NotifyIntake sends the email and SMS alerts and archives app.
func (n *Notifier) NotifyIntake(ctx context.Context, app *models.IntakeApplication) error {
	var failures []string
	logger := n.logger.With().Str("application", app.ID.String()).Logger()

	if n.cfg.Mailer != nil && len(n.cfg.Recipients) > 0 {
		html, err := IntakeEmailHTML(app)
		if err == nil {
			subject := fmt.Sprintf("%s: new intake application from %s", n.siteName(), app.FullName)
			err = n.cfg.Mailer.Send(ctx, subject, html, app.Email, n.cfg.Recipients)
		}
		if err != nil {
			logger.Error().Err(err).Msg("Failed to send intake email")
			failures = append(failures, fmt.Sprintf("email: %v", err))
		}
	}

	if n.cfg.SMS != nil && n.cfg.SMSTo != "" {
		body := fmt.Sprintf("New intake application from %s (%s).", app.FullName, app.Email)
		if err := n.cfg.SMS.Send(n.cfg.SMSTo, body); err != nil {
			logger.Error().Err(err).Msg("Failed to send intake SMS")
			failures = append(failures, fmt.Sprintf("sms: %v", err))
		}
	}

	if n.cfg.Archiver != nil {
		if err := n.cfg.Archiver.ArchiveIntake(ctx, app); err != nil {
			logger.Error().Err(err).Msg("Failed to archive intake application")
			failures = append(failures, fmt.Sprintf("archive: %v", err))
		}
	}

	return joinFailures(failures)
}

// NotifyContact emails a contact form message to the firm.
func (n *Notifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	if n.cfg.Mailer == nil || len(n.cfg.Recipients) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := contactEmail.Execute(&buf, msg); err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	subject := fmt.Sprintf("%s: message from %s", n.siteName(), msg.Name)
	if err := n.cfg.Mailer.Send(ctx, subject, buf.String(), msg.Email, n.cfg.Recipients); err != nil {
		n.logger.Error().Err(err).Str("message", msg.ID.String()).Msg("Failed to send contact email")
		return joinFailures([]string{fmt.Sprintf("email: %v", err)})
	}
	return nil
}

func (n *Notifier) siteName() string {
	if n.cfg.SiteName == "" {
		return "Website"
	}
	return n.cfg.SiteName
}

// IntakeEmailHTML lists the answers of app in form order, labelled as on the form.
func IntakeEmailHTML(app *models.IntakeApplication) (string, error) {
	answers := map[string]string{}
	if len(app.Answers) > 0 {
		if err := json.Unmarshal(app.Answers, &answers); err != nil {
			return "", fmt.Errorf("decode answers: %w", err)
		}
	}

	var rows []answerRow
	for _, step := range intake.Steps() {
		for _, f := range step.Fields {
			v := answers[f.Name]
			if v == "" {
				continue
			}
			if f.IsBool() {
				v = yesNo(v)
			}
			rows = append(rows, answerRow{Label: f.Label, Value: v})
		}
	}

	var buf bytes.Buffer
	err := intakeEmail.Execute(&buf, map[string]any{
		"App":       app,
		"Rows":      rows,
		"Submitted": models.NewTimestamp(app.CreatedAt).Long(),
	})
	if err != nil {
		return "", fmt.Errorf("render intake email: %w", err)
	}
	return buf.String(), nil
}

func yesNo(v string) string {
	if v == "true" {
		return "Yes"
	}
	return "No"
}

func joinFailures(failures []string) error {
	if len(failures) == 0 {
		return nil
	}
	return fmt.Errorf("some notifications failed: %s", strings.Join(failures, "; "))
}
