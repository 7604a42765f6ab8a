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

var caseStatuses = map[string]bool{
	domain.CaseNovo:        true,
	domain.CaseEmAndamento: true,
	domain.CaseAguardando:  true,
	domain.CaseConcluido:   true,
	domain.CaseArquivado:   true,
}

var casePriorities = map[string]bool{
	domain.PriorityBaixa:   true,
	domain.PriorityMedia:   true,
	domain.PriorityAlta:    true,
	domain.PriorityUrgente: true,
}

// CaseService handles legal case business logic
type CaseService struct {
	caseRepo     *repository.CaseRepository
	clientRepo   *repository.ClientRepository
	cacheService cache.Service
}

// NewCaseService creates a new CaseService
func NewCaseService(caseRepo *repository.CaseRepository, clientRepo *repository.ClientRepository, cacheService cache.Service) *CaseService {
	return &CaseService{
		caseRepo:     caseRepo,
		clientRepo:   clientRepo,
		cacheService: cacheService,
	}
}

// CaseListResult wraps a page of cases with its total count
type CaseListResult struct {
	Cases []domain.Case `json:"cases"`
	Total int64         `json:"total"`
}

// Create opens a new case for one of the user's clients
func (s *CaseService) Create(ctx context.Context, userID string, req *domain.CaseRequest) (*domain.Case, error) {
	client, err := s.clientRepo.FindByID(req.ClientID, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, common.ErrClientNotFound
	}

	status := req.Status
	if status == "" {
		status = domain.CaseNovo
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedia
	}
	if err := validateCaseFields(status, priority); err != nil {
		return nil, err
	}

	legalCase := &domain.Case{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		CaseNumber:  req.CaseNumber,
		Status:      status,
		Priority:    priority,
		Court:       req.Court,
		Tags:        domain.StringList(req.Tags),
	}

	if err := s.caseRepo.Create(legalCase); err != nil {
		return nil, err
	}
	return legalCase, nil
}

// GetByID returns one of the user's cases
func (s *CaseService) GetByID(ctx context.Context, userID, caseID string) (*domain.Case, error) {
	legalCase, err := s.caseRepo.FindByID(caseID, userID)
	if err != nil {
		return nil, err
	}
	if legalCase == nil {
		return nil, common.ErrCaseNotFound
	}
	return legalCase, nil
}

// List returns the user's cases, optionally narrowed by client or status
func (s *CaseService) List(ctx context.Context, userID, clientID, status string, page, perPage int) (*CaseListResult, error) {
	if status != "" && !caseStatuses[status] {
		return nil, fmt.Errorf("%w: invalid case status %q", common.ErrInvalidInput, status)
	}
	cases, total, err := s.caseRepo.List(userID, clientID, status, page, perPage)
	if err != nil {
		return nil, err
	}
	return &CaseListResult{Cases: cases, Total: total}, nil
}

// Update replaces a case's data
func (s *CaseService) Update(ctx context.Context, userID, caseID string, req *domain.CaseRequest) (*domain.Case, error) {
	legalCase, err := s.caseRepo.FindByID(caseID, userID)
	if err != nil {
		return nil, err
	}
	if legalCase == nil {
		return nil, common.ErrCaseNotFound
	}

	if req.ClientID != "" && req.ClientID != legalCase.ClientID {
		client, err := s.clientRepo.FindByID(req.ClientID, userID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, common.ErrClientNotFound
		}
		legalCase.ClientID = req.ClientID
	}

	status := req.Status
	if status == "" {
		status = legalCase.Status
	}
	priority := req.Priority
	if priority == "" {
		priority = legalCase.Priority
	}
	if err := validateCaseFields(status, priority); err != nil {
		return nil, err
	}

	legalCase.Title = req.Title
	legalCase.Description = req.Description
	legalCase.CaseNumber = req.CaseNumber
	legalCase.Status = status
	legalCase.Priority = priority
	legalCase.Court = req.Court
	legalCase.Tags = domain.StringList(req.Tags)

	if err := s.caseRepo.Update(legalCase); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.InvalidateAutoFill(ctx, userID, legalCase.ClientID, caseID)
		_ = s.cacheService.InvalidateAutoFill(ctx, userID, "", caseID)
	}

	return legalCase, nil
}

// Delete removes one of the user's cases
func (s *CaseService) Delete(ctx context.Context, userID, caseID string) error {
	deleted, err := s.caseRepo.Delete(caseID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return common.ErrCaseNotFound
	}
	return nil
}

func validateCaseFields(status, priority string) error {
	if !caseStatuses[status] {
		return fmt.Errorf("%w: invalid case status %q", common.ErrInvalidInput, status)
	}
	if !casePriorities[priority] {
		return fmt.Errorf("%w: invalid case priority %q", common.ErrInvalidInput, priority)
	}
	return nil
}
