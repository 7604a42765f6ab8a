package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
	"github.com/jurisdesk/jurisdesk-backend/pkg/cache"
	"github.com/jurisdesk/jurisdesk-backend/pkg/logger"
)

// AutoFillService builds placeholder values out of client and case records
type AutoFillService struct {
	clientRepo   *repository.ClientRepository
	caseRepo     *repository.CaseRepository
	cacheService cache.Service
}

// NewAutoFillService creates a new AutoFillService
func NewAutoFillService(clientRepo *repository.ClientRepository, caseRepo *repository.CaseRepository, cacheService cache.Service) *AutoFillService {
	return &AutoFillService{
		clientRepo:   clientRepo,
		caseRepo:     caseRepo,
		cacheService: cacheService,
	}
}

// PlaceholderInfo describes one placeholder the resolver knows how to fill
type PlaceholderInfo struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Resolve flattens the referenced client and case into placeholder values.
// Empty source fields are omitted so the merger reports them as unresolved
// instead of writing blanks into the document. When only a case is given,
// its client is used for the cliente.* namespace too. Without any reference
// there is nothing to resolve and the map comes back empty.
func (s *AutoFillService) Resolve(ctx context.Context, userID, clientID, caseID string) (map[string]string, error) {
	if clientID == "" && caseID == "" {
		return map[string]string{}, nil
	}

	values := map[string]string{
		"documento.data": time.Now().Format("02/01/2006"),
	}

	cacheClientID, cacheCaseID := clientID, caseID
	if s.cacheService != nil {
		if cached, err := s.cacheService.GetAutoFill(ctx, userID, cacheClientID, cacheCaseID); err == nil && cached != nil {
			cached["documento.data"] = values["documento.data"]
			return cached, nil
		}
	}

	var legalCase *domain.Case
	if caseID != "" {
		found, err := s.caseRepo.FindByID(caseID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAutoFillUnavailable, err)
		}
		if found == nil {
			return nil, common.ErrCaseNotFound
		}
		legalCase = found
		s.flattenCase(values, legalCase)
		if clientID == "" {
			clientID = legalCase.ClientID
		}
	}

	if clientID != "" {
		client, err := s.clientRepo.FindByID(clientID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAutoFillUnavailable, err)
		}
		if client == nil {
			return nil, common.ErrClientNotFound
		}
		s.flattenClient(values, client)
	}

	if s.cacheService != nil {
		if err := s.cacheService.SetAutoFill(ctx, userID, cacheClientID, cacheCaseID, values); err != nil {
			logger.Warn("Failed to cache auto-fill values: %v", err)
		}
	}

	return values, nil
}

func (s *AutoFillService) flattenClient(values map[string]string, client *domain.Client) {
	putIfNotEmpty(values, "cliente.nome", client.Name)
	putIfNotEmpty(values, "cliente.cpf_cnpj", client.CPFCNPJ)
	putIfNotEmpty(values, "cliente.email", client.Email)
	putIfNotEmpty(values, "cliente.telefone", client.Phone)
	putIfNotEmpty(values, "cliente.data_nascimento", client.BirthDate)
	putIfNotEmpty(values, "cliente.nacionalidade", client.Nationality)
	putIfNotEmpty(values, "cliente.estado_civil", client.MaritalStatus)
	putIfNotEmpty(values, "cliente.profissao", client.Profession)
	putIfNotEmpty(values, "cliente.endereco.cep", client.Address.CEP)
	putIfNotEmpty(values, "cliente.endereco.rua", client.Address.Street)
	putIfNotEmpty(values, "cliente.endereco.numero", client.Address.Number)
	putIfNotEmpty(values, "cliente.endereco.complemento", client.Address.Complement)
	putIfNotEmpty(values, "cliente.endereco.bairro", client.Address.Neighborhood)
	putIfNotEmpty(values, "cliente.endereco.cidade", client.Address.City)
	putIfNotEmpty(values, "cliente.endereco.uf", client.Address.UF)
}

func (s *AutoFillService) flattenCase(values map[string]string, legalCase *domain.Case) {
	putIfNotEmpty(values, "caso.titulo", legalCase.Title)
	putIfNotEmpty(values, "caso.descricao", legalCase.Description)
	putIfNotEmpty(values, "caso.numero", legalCase.CaseNumber)
	putIfNotEmpty(values, "caso.status", legalCase.Status)
	putIfNotEmpty(values, "caso.prioridade", legalCase.Priority)
	putIfNotEmpty(values, "caso.vara", legalCase.Court)
}

func putIfNotEmpty(values map[string]string, key, value string) {
	if value != "" {
		values[key] = value
	}
}

// Catalog lists every placeholder the resolver can fill automatically
func (s *AutoFillService) Catalog() []PlaceholderInfo {
	return []PlaceholderInfo{
		{Key: "cliente.nome", Description: "Nome completo do cliente", Source: "cliente"},
		{Key: "cliente.cpf_cnpj", Description: "CPF ou CNPJ do cliente", Source: "cliente"},
		{Key: "cliente.email", Description: "E-mail do cliente", Source: "cliente"},
		{Key: "cliente.telefone", Description: "Telefone do cliente", Source: "cliente"},
		{Key: "cliente.data_nascimento", Description: "Data de nascimento do cliente", Source: "cliente"},
		{Key: "cliente.nacionalidade", Description: "Nacionalidade do cliente", Source: "cliente"},
		{Key: "cliente.estado_civil", Description: "Estado civil do cliente", Source: "cliente"},
		{Key: "cliente.profissao", Description: "Profissão do cliente", Source: "cliente"},
		{Key: "cliente.endereco.cep", Description: "CEP do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.rua", Description: "Rua do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.numero", Description: "Número do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.complemento", Description: "Complemento do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.bairro", Description: "Bairro do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.cidade", Description: "Cidade do endereço do cliente", Source: "cliente"},
		{Key: "cliente.endereco.uf", Description: "UF do endereço do cliente", Source: "cliente"},
		{Key: "caso.titulo", Description: "Título do caso", Source: "caso"},
		{Key: "caso.descricao", Description: "Descrição do caso", Source: "caso"},
		{Key: "caso.numero", Description: "Número do processo", Source: "caso"},
		{Key: "caso.status", Description: "Status do caso", Source: "caso"},
		{Key: "caso.prioridade", Description: "Prioridade do caso", Source: "caso"},
		{Key: "caso.vara", Description: "Vara ou tribunal do caso", Source: "caso"},
		{Key: "documento.data", Description: "Data de geração do documento", Source: "documento"},
	}
}
