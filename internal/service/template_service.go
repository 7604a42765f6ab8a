package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/engine"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
	"github.com/jurisdesk/jurisdesk-backend/pkg/cache"
	"github.com/jurisdesk/jurisdesk-backend/pkg/elasticsearch"
	"github.com/jurisdesk/jurisdesk-backend/pkg/logger"
)

const templateIndex = "templates"

// TemplateService handles document template business logic
type TemplateService struct {
	templateRepo *repository.TemplateRepository
	esClient     *elasticsearch.Client
	cacheService cache.Service
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo *repository.TemplateRepository, esClient *elasticsearch.Client, cacheService cache.Service) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		esClient:     esClient,
		cacheService: cacheService,
	}
}

// TemplateListResult wraps a page of templates with its total count
type TemplateListResult struct {
	Templates []domain.Template `json:"templates"`
	Total     int64             `json:"total"`
}

// EnsureSearchIndex creates the template search index with its mapping when
// missing. Safe to call on every startup.
func (s *TemplateService) EnsureSearchIndex(ctx context.Context) error {
	if s.esClient == nil {
		return nil
	}
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":          map[string]interface{}{"type": "keyword"},
				"user_id":     map[string]interface{}{"type": "keyword"},
				"name":        map[string]interface{}{"type": "text"},
				"description": map[string]interface{}{"type": "text"},
				"category":    map[string]interface{}{"type": "keyword"},
				"content":     map[string]interface{}{"type": "text"},
				"is_public":   map[string]interface{}{"type": "boolean"},
			},
		},
	}
	return s.esClient.CreateIndex(ctx, templateIndex, mapping)
}

// Create stores a new template owned by the user. Placeholders are always
// derived from the content, never taken from the request.
func (s *TemplateService) Create(ctx context.Context, userID string, req *domain.TemplateCreateRequest) (*domain.Template, error) {
	if !domain.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", common.ErrInvalidInput, req.Category)
	}

	template := &domain.Template{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Content:      req.Content,
		Placeholders: domain.StringList(engine.Extract(req.Content)),
		IsPublic:     req.IsPublic,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, err
	}

	s.indexTemplate(ctx, template)
	s.invalidateListings(ctx, userID)

	return template, nil
}

// GetByID returns a template the user can read (owned or public)
func (s *TemplateService) GetByID(ctx context.Context, userID, templateID string) (*domain.Template, error) {
	template, err := s.templateRepo.FindByID(templateID, userID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, common.ErrTemplateNotFound
	}
	return template, nil
}

// List returns the user's templates plus public ones, cached per filter
func (s *TemplateService) List(ctx context.Context, userID string, filter domain.TemplateListFilter) (*TemplateListResult, error) {
	filterKey := fmt.Sprintf("%s:%v:%d:%d", filter.Category, filter.IncludePublic, filter.Page, filter.PerPage)

	if s.cacheService != nil {
		if data, err := s.cacheService.GetTemplates(ctx, userID, filterKey); err == nil {
			var cached TemplateListResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	templates, total, err := s.templateRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}

	result := &TemplateListResult{Templates: templates, Total: total}

	if s.cacheService != nil {
		if err := s.cacheService.SetTemplates(ctx, userID, filterKey, result); err != nil {
			logger.Warn("Failed to cache template listing: %v", err)
		}
	}

	return result, nil
}

// Update applies partial changes to an owned template. A content change
// re-derives the placeholder list.
func (s *TemplateService) Update(ctx context.Context, userID, templateID string, req *domain.TemplateUpdateRequest) (*domain.Template, error) {
	template, err := s.templateRepo.FindOwnedByID(templateID, userID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, common.ErrTemplateNotFound
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Category != nil {
		if !domain.IsValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: invalid category %q", common.ErrInvalidInput, *req.Category)
		}
		template.Category = *req.Category
	}
	if req.Content != nil {
		template.Content = *req.Content
		template.Placeholders = domain.StringList(engine.Extract(*req.Content))
	}
	if req.IsPublic != nil {
		template.IsPublic = *req.IsPublic
	}
	if req.IsFavorite != nil {
		template.IsFavorite = *req.IsFavorite
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}

	s.indexTemplate(ctx, template)
	s.invalidateListings(ctx, userID)

	return template, nil
}

// Delete removes an owned template
func (s *TemplateService) Delete(ctx context.Context, userID, templateID string) error {
	deleted, err := s.templateRepo.Delete(templateID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return common.ErrTemplateNotFound
	}

	if s.esClient != nil {
		if err := s.esClient.DeleteDocument(ctx, templateIndex, templateID); err != nil {
			logger.Warn("Failed to remove template %s from search index: %v", templateID, err)
		}
	}
	s.invalidateListings(ctx, userID)

	return nil
}

// ToggleFavorite flips the favorite flag on an owned template
func (s *TemplateService) ToggleFavorite(ctx context.Context, userID, templateID string) (*domain.Template, error) {
	template, err := s.templateRepo.FindOwnedByID(templateID, userID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, common.ErrTemplateNotFound
	}

	template.IsFavorite = !template.IsFavorite
	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx, userID)

	return template, nil
}

// Search looks templates up by name/description. Elasticsearch first,
// falling back to a SQL LIKE scan when the cluster is unreachable.
func (s *TemplateService) Search(ctx context.Context, userID, query string, limit int) (*TemplateListResult, error) {
	if s.esClient != nil {
		result, err := s.searchElastic(ctx, userID, query, limit)
		if err == nil {
			return result, nil
		}
		logger.Warn("Elasticsearch template search failed, falling back to SQL: %v", err)
	}

	templates, err := s.templateRepo.Search(userID, query, true, limit)
	if err != nil {
		return nil, err
	}
	return &TemplateListResult{Templates: templates, Total: int64(len(templates))}, nil
}

func (s *TemplateService) searchElastic(ctx context.Context, userID, query string, limit int) (*TemplateListResult, error) {
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"name^2", "description", "content"},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"bool": map[string]interface{}{
							"should": []interface{}{
								map[string]interface{}{"term": map[string]interface{}{"user_id": userID}},
								map[string]interface{}{"term": map[string]interface{}{"is_public": true}},
							},
						},
					},
				},
			},
		},
	}

	resp, err := s.esClient.Search(ctx, templateIndex, esQuery, 0, limit)
	if err != nil {
		return nil, err
	}

	// Hydrate from the database so responses match the non-search endpoints
	templates := make([]domain.Template, 0, len(resp.Results))
	for _, hit := range resp.Results {
		template, err := s.templateRepo.FindByID(hit.ID, userID)
		if err != nil || template == nil {
			continue
		}
		templates = append(templates, *template)
	}

	return &TemplateListResult{Templates: templates, Total: resp.Total}, nil
}

func (s *TemplateService) indexTemplate(ctx context.Context, template *domain.Template) {
	if s.esClient == nil {
		return
	}
	doc := map[string]interface{}{
		"id":          template.ID,
		"user_id":     template.UserID,
		"name":        template.Name,
		"description": template.Description,
		"category":    template.Category,
		"content":     template.Content,
		"is_public":   template.IsPublic,
	}
	if err := s.esClient.IndexDocument(ctx, templateIndex, template.ID, doc); err != nil {
		logger.Warn("Failed to index template %s: %v", template.ID, err)
	}
}

func (s *TemplateService) invalidateListings(ctx context.Context, userID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.InvalidateTemplates(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate template cache for user %s: %v", userID, err)
	}
}
