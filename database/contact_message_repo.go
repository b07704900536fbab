package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// FindAll returns the most recent messages first.
func (r *ContactMessageRepo) FindAll(ctx context.Context, limit int) ([]*models.ContactMessage, error) {
	if r.db == nil {
		return nil, errs.ErrDatabaseDisabled
	}
	var msgs []*models.ContactMessage
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Order("created_at DESC").
		Limit(listLimit(limit)).
		Find(&msgs).Error
	return msgs, err
}

// Add inserts a new contact message
func (r *ContactMessageRepo) Add(ctx context.Context, msg *models.ContactMessage) error {
	if r.db == nil {
		return errs.ErrDatabaseDisabled
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}
