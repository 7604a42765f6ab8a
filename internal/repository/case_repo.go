package repository

import (
	"errors"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// CaseRepository handles CRM case data operations
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create inserts a new case
func (r *CaseRepository) Create(c *domain.Case) error {
	return r.db.Create(c).Error
}

// FindByID retrieves a case owned by the user
func (r *CaseRepository) FindByID(id, userID string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// List retrieves the user's cases, optionally filtered by client or status
func (r *CaseRepository) List(userID, clientID, status string, page, perPage int) ([]domain.Case, int64, error) {
	var cases []domain.Case
	var total int64

	query := r.db.Model(&domain.Case{}).Where("user_id = ?", userID)
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// Update persists all fields of a case
func (r *CaseRepository) Update(c *domain.Case) error {
	return r.db.Save(c).Error
}

// Delete removes a case owned by the user; returns affected rows
func (r *CaseRepository) Delete(id, userID string) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Case{})
	return result.RowsAffected, result.Error
}
