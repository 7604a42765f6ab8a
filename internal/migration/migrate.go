package migration

import (
	"gorm.io/gorm"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/pkg/logger"
)

// Run creates or updates the schema for all models
func Run(db *gorm.DB) error {
	logger.Info("Running schema migration")

	if err := db.AutoMigrate(
		&domain.Client{},
		&domain.Case{},
		&domain.Template{},
		&domain.GeneratedDocument{},
		&domain.DocumentVersion{},
	); err != nil {
		return err
	}

	// One row per (document, version); also serves the history lookup
	if !db.Migrator().HasIndex(&domain.DocumentVersion{}, "idx_document_version") {
		db.Exec("CREATE UNIQUE INDEX idx_document_version ON document_versions (document_id, version_number)")
	}

	logger.Info("Schema migration complete")
	return nil
}
