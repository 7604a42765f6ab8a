package repository

import (
	"errors"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository document version history data access. Versions are
// append-only; nothing here mutates or deletes an individual row.
type VersionRepository interface {
	Create(version *domain.DocumentVersion) error
	FindByDocumentID(documentID string) ([]domain.DocumentVersion, error)
	FindByDocumentIDAndVersion(documentID string, version int) (*domain.DocumentVersion, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(version *domain.DocumentVersion) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) FindByDocumentID(documentID string) ([]domain.DocumentVersion, error) {
	var versions []domain.DocumentVersion
	err := r.db.Where("document_id = ?", documentID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByDocumentIDAndVersion(documentID string, version int) (*domain.DocumentVersion, error) {
	var v domain.DocumentVersion
	err := r.db.Where("document_id = ? AND version_number = ?", documentID, version).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
