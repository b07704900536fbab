package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Persisted lists every model owned by this service's database.
func Persisted() []interface{} {
	return []interface{}{
		&IntakeApplication{},
		&ContactMessage{},
	}
}

// Migrate creates or updates the tables for all persisted models.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Int("models", len(Persisted())).Msg("Migrating models")
	if err := migrateDB.AutoMigrate(Persisted()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}

// ColumnMismatch lists database columns that no model field maps to.
type ColumnMismatch struct {
	Table   string
	Columns []string
}

// ColumnMismatchReport compares each persisted table with its model.
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch

	for _, model := range Persisted() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			log.Warn().Str("table", table).Msg("Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error getting columns for table %s: %w", table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}

		var extra []string
		for _, col := range columnTypes {
			if !known[col.Name()] {
				extra = append(extra, col.Name())
			}
		}
		sort.Strings(extra)

		if len(extra) > 0 {
			report = append(report, ColumnMismatch{Table: table, Columns: extra})
		}
	}

	return report, nil
}
