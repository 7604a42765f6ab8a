package repository

import (
	"errors"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// DocumentRepository handles generated document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new generated document
func (r *DocumentRepository) Create(doc *domain.GeneratedDocument) error {
	return r.db.Create(doc).Error
}

// FindByID retrieves a document owned by the user
func (r *DocumentRepository) FindByID(id, userID string) (*domain.GeneratedDocument, error) {
	var doc domain.GeneratedDocument
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// List retrieves the user's documents with optional filters, newest first
func (r *DocumentRepository) List(userID string, filter domain.DocumentListFilter) ([]domain.GeneratedDocument, error) {
	var docs []domain.GeneratedDocument

	query := r.db.Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.CaseID != "" {
		query = query.Where("case_id = ?", filter.CaseID)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&docs).Error
	return docs, err
}

// Update persists all fields of a document
func (r *DocumentRepository) Update(doc *domain.GeneratedDocument) error {
	return r.db.Save(doc).Error
}

// SaveWithSnapshot archives the snapshot and persists the updated document in
// one transaction, so a version row never exists without its content update.
func (r *DocumentRepository) SaveWithSnapshot(doc *domain.GeneratedDocument, snapshot *domain.DocumentVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Save(doc).Error
	})
}

// Delete removes a document and its versions; returns affected rows
func (r *DocumentRepository) Delete(id, userID string) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.GeneratedDocument{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected > 0 {
			return tx.Where("document_id = ?", id).Delete(&domain.DocumentVersion{}).Error
		}
		return nil
	})
	return affected, err
}

// statRow is an aggregation scan target
type statRow struct {
	StatKey string
	Cnt     int64
}

// Stats aggregates the user's documents by status and category
func (r *DocumentRepository) Stats(userID string) (*domain.DocumentStats, error) {
	stats := &domain.DocumentStats{
		ByStatus:   make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	if err := r.db.Model(&domain.GeneratedDocument{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byStatus []statRow
	if err := r.db.Model(&domain.GeneratedDocument{}).
		Select("status AS stat_key, COUNT(*) AS cnt").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.StatKey] = row.Cnt
	}

	var byCategory []statRow
	if err := r.db.Model(&domain.GeneratedDocument{}).
		Select("category AS stat_key, COUNT(*) AS cnt").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		stats.ByCategory[row.StatKey] = row.Cnt
	}

	return stats, nil
}
