package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
	"github.com/jurisdesk/jurisdesk-backend/pkg/cache"
)

// ClientService handles client registry business logic
type ClientService struct {
	clientRepo   *repository.ClientRepository
	cacheService cache.Service
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo *repository.ClientRepository, cacheService cache.Service) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		cacheService: cacheService,
	}
}

// ClientListResult wraps a page of clients with its total count
type ClientListResult struct {
	Clients []domain.Client `json:"clients"`
	Total   int64           `json:"total"`
}

// Create registers a new client for the user
func (s *ClientService) Create(ctx context.Context, userID string, req *domain.ClientRequest) (*domain.Client, error) {
	clientType := req.ClientType
	if clientType == "" {
		clientType = domain.ClientPessoaFisica
	}
	if clientType != domain.ClientPessoaFisica && clientType != domain.ClientPessoaJuridica {
		return nil, fmt.Errorf("%w: invalid client type %q", common.ErrInvalidInput, clientType)
	}

	client := &domain.Client{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          req.Name,
		CPFCNPJ:       req.CPFCNPJ,
		ClientType:    clientType,
		Email:         req.Email,
		Phone:         req.Phone,
		BirthDate:     req.BirthDate,
		Nationality:   req.Nationality,
		MaritalStatus: req.MaritalStatus,
		Profession:    req.Profession,
		Address:       req.Address,
		Notes:         req.Notes,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetByID returns one of the user's clients
func (s *ClientService) GetByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindByID(clientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, common.ErrClientNotFound
	}
	return client, nil
}

// List returns the user's clients, optionally filtered by a name/document search
func (s *ClientService) List(ctx context.Context, userID, search string, page, perPage int) (*ClientListResult, error) {
	clients, total, err := s.clientRepo.List(userID, search, page, perPage)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients, Total: total}, nil
}

// Update replaces a client's registration data
func (s *ClientService) Update(ctx context.Context, userID, clientID string, req *domain.ClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindByID(clientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, common.ErrClientNotFound
	}

	client.Name = req.Name
	client.CPFCNPJ = req.CPFCNPJ
	if req.ClientType != "" {
		client.ClientType = req.ClientType
	}
	client.Email = req.Email
	client.Phone = req.Phone
	client.BirthDate = req.BirthDate
	client.Nationality = req.Nationality
	client.MaritalStatus = req.MaritalStatus
	client.Profession = req.Profession
	client.Address = req.Address
	client.Notes = req.Notes

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}

	// Auto-fill entries referencing this client expire by TTL; drop the
	// direct key so single-client lookups refresh immediately
	if s.cacheService != nil {
		_ = s.cacheService.InvalidateAutoFill(ctx, userID, clientID, "")
	}

	return client, nil
}

// Delete removes one of the user's clients
func (s *ClientService) Delete(ctx context.Context, userID, clientID string) error {
	deleted, err := s.clientRepo.Delete(clientID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return common.ErrClientNotFound
	}
	if s.cacheService != nil {
		_ = s.cacheService.InvalidateAutoFill(ctx, userID, clientID, "")
	}
	return nil
}
