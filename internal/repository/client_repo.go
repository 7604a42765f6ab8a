package repository

import (
	"errors"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"gorm.io/gorm"
)

// ClientRepository handles CRM client data operations
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client
func (r *ClientRepository) Create(client *domain.Client) error {
	return r.db.Create(client).Error
}

// FindByID retrieves a client owned by the user
func (r *ClientRepository) FindByID(id, userID string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// List retrieves the user's clients with optional name/document search
func (r *ClientRepository) List(userID, search string, page, perPage int) ([]domain.Client, int64, error) {
	var clients []domain.Client
	var total int64

	query := r.db.Model(&domain.Client{}).Where("user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR cpf_cnpj LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Update persists all fields of a client
func (r *ClientRepository) Update(client *domain.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client owned by the user; returns affected rows
func (r *ClientRepository) Delete(id, userID string) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Client{})
	return result.RowsAffected, result.Error
}
