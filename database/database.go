package database

import (
	"context"

	"github.com/westbourne-advisory/website/errs"
	"github.com/westbourne-advisory/website/models"
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	intakeApplicationRepo *IntakeApplicationRepo
	contactMessageRepo    *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance.
// A nil db gives a disabled Database whose repositories return errs.ErrDatabaseDisabled.
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		intakeApplicationRepo: NewIntakeApplicationRepo(db),
		contactMessageRepo:    NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) IntakeApplicationRepo() *IntakeApplicationRepo {
	return d.intakeApplicationRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// Enabled reports whether a connection was configured.
func (d Database) Enabled() bool {
	return d.db != nil
}

// Migrate creates or updates the tables of every persisted model.
func (d Database) Migrate() error {
	if d.db == nil {
		return errs.ErrDatabaseDisabled
	}
	return models.Migrate(d.db)
}

// Ping checks the primary connection.
func (d Database) Ping(ctx context.Context) error {
	if d.db == nil {
		return errs.ErrDatabaseDisabled
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
