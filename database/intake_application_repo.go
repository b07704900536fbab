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

// DefaultListLimit caps admin listings when no limit is given.
const DefaultListLimit = 100

type IntakeApplicationRepo struct {
	db *gorm.DB
}

func NewIntakeApplicationRepo(db *gorm.DB) *IntakeApplicationRepo {
	return &IntakeApplicationRepo{db}
}

// FindAll returns the most recent applications first.
func (r *IntakeApplicationRepo) FindAll(ctx context.Context, limit int) ([]*models.IntakeApplication, error) {
	if r.db == nil {
		return nil, errs.ErrDatabaseDisabled
	}
	var apps []*models.IntakeApplication
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Order("created_at DESC").
		Limit(listLimit(limit)).
		Find(&apps).Error
	return apps, err
}

// FindByID returns an application by its ID
func (r *IntakeApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.IntakeApplication, error) {
	if r.db == nil {
		return nil, errs.ErrDatabaseDisabled
	}
	var app models.IntakeApplication
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Add inserts a new application, filling in the ID, status and creation time when unset.
func (r *IntakeApplicationRepo) Add(ctx context.Context, app *models.IntakeApplication) error {
	if r.db == nil {
		return errs.ErrDatabaseDisabled
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.Status == "" {
		app.Status = models.IntakeStatusNew
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(app).Error
}

// UpdateStatus sets the follow-up status of an application.
func (r *IntakeApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if r.db == nil {
		return errs.ErrDatabaseDisabled
	}
	res := r.db.WithContext(ctx).
		Model(&models.IntakeApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
