package repository

import (
	"errors"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// TemplateRepository handles template data operations
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template
func (r *TemplateRepository) Create(template *domain.Template) error {
	return r.db.Create(template).Error
}

// FindByID retrieves a template visible to the user (owned or public)
func (r *TemplateRepository) FindByID(id, userID string) (*domain.Template, error) {
	var template domain.Template
	err := r.db.Where("id = ? AND (user_id = ? OR is_public = ?)", id, userID, true).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// FindOwnedByID retrieves a template only if the user owns it
func (r *TemplateRepository) FindOwnedByID(id, userID string) (*domain.Template, error) {
	var template domain.Template
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// List retrieves templates for a user, optionally including public ones,
// ordered by usage then recency
func (r *TemplateRepository) List(userID string, filter domain.TemplateListFilter) ([]domain.Template, int64, error) {
	var templates []domain.Template
	var total int64

	query := r.db.Model(&domain.Template{})
	if filter.IncludePublic {
		query = query.Where("user_id = ? OR is_public = ?", userID, true)
	} else {
		query = query.Where("user_id = ?", userID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := query.Order("usage_count DESC, created_at DESC").
		Offset(offset).
		Limit(filter.PerPage).
		Find(&templates).Error
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// Search finds templates matching name or description
func (r *TemplateRepository) Search(userID, q string, includePublic bool, limit int) ([]domain.Template, error) {
	var templates []domain.Template
	pattern := "%" + q + "%"

	query := r.db.Model(&domain.Template{})
	if includePublic {
		query = query.Where("user_id = ? OR is_public = ?", userID, true)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	err := query.Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Order("usage_count DESC").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

// Update persists all fields of a template
func (r *TemplateRepository) Update(template *domain.Template) error {
	return r.db.Save(template).Error
}

// Delete removes a template owned by the user; returns affected rows
func (r *TemplateRepository) Delete(id, userID string) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Template{})
	return result.RowsAffected, result.Error
}

// IncrementUsage bumps the usage counter once per successful generation
func (r *TemplateRepository) IncrementUsage(id string) error {
	return r.db.Model(&domain.Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}
