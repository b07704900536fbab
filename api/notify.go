package api

import (
	"context"

	"github.com/westbourne-advisory/website/models"
)

// noopNotifier is used when no notification channel is configured.
type noopNotifier struct{}

func (noopNotifier) NotifyIntake(context.Context, *models.IntakeApplication) error { return nil }

func (noopNotifier) NotifyContact(context.Context, *models.ContactMessage) error { return nil }
