package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/engine"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
	"github.com/jurisdesk/jurisdesk-backend/pkg/cache"
	"github.com/jurisdesk/jurisdesk-backend/pkg/logger"
	"github.com/jurisdesk/jurisdesk-backend/pkg/storage"
)

// AutomationService drives document generation, assembly and versioning
type AutomationService struct {
	templateRepo *repository.TemplateRepository
	documentRepo *repository.DocumentRepository
	versionRepo  repository.VersionRepository
	autoFill     *AutoFillService
	storage      *storage.S3Client
	cacheService cache.Service
}

// NewAutomationService creates a new AutomationService. storage may be nil
// when no object store is configured; export then fails with a clear error.
func NewAutomationService(
	templateRepo *repository.TemplateRepository,
	documentRepo *repository.DocumentRepository,
	versionRepo repository.VersionRepository,
	autoFill *AutoFillService,
	s3 *storage.S3Client,
	cacheService cache.Service,
) *AutomationService {
	return &AutomationService{
		templateRepo: templateRepo,
		documentRepo: documentRepo,
		versionRepo:  versionRepo,
		autoFill:     autoFill,
		storage:      s3,
		cacheService: cacheService,
	}
}

// VersionHistory pairs a document with its archived versions, newest first
type VersionHistory struct {
	Document *domain.GeneratedDocument `json:"document"`
	Versions []domain.DocumentVersion  `json:"versions"`
}

// Generate renders a single template into a stored document
func (s *AutomationService) Generate(ctx context.Context, userID string, req *domain.GenerateRequest) (*domain.GenerationResult, error) {
	template, err := s.templateRepo.FindByID(req.TemplateID, userID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, common.ErrTemplateNotFound
	}

	autoFillValues, degraded, err := s.resolveAutoFill(ctx, userID, req.ClientID, req.CaseID, req.StrictAutoFill)
	if err != nil {
		return nil, err
	}

	manual := req.Placeholders
	if shouldEscape(req.EscapeValues) {
		autoFillValues = engine.EscapeValues(autoFillValues)
		manual = engine.EscapeValues(manual)
	}

	merged := engine.Merge(template.Content, autoFillValues, manual)

	title := req.Title
	if title == "" {
		title = template.Name
	}

	doc := &domain.GeneratedDocument{
		ID:                uuid.New().String(),
		UserID:            userID,
		Title:             title,
		Category:          template.Category,
		Status:            domain.StatusDraft,
		Content:           merged.Content,
		Version:           1,
		ClientID:          optionalID(req.ClientID),
		CaseID:            optionalID(req.CaseID),
		TemplateIDs:       domain.StringList{template.ID},
		PlaceholderValues: effectiveValues(autoFillValues, manual),
	}

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, userID, template.ID)

	return &domain.GenerationResult{
		Document:               doc,
		UnresolvedPlaceholders: merged.Unresolved,
		AutoFillUnavailable:    degraded,
	}, nil
}

// Assemble combines two or more templates, in request order, into one document
func (s *AutomationService) Assemble(ctx context.Context, userID string, req *domain.AssemblyRequest) (*domain.GenerationResult, error) {
	if len(req.TemplateIDs) < 2 {
		return nil, common.ErrInvalidAssemblyInput
	}

	templates := make([]*domain.Template, 0, len(req.TemplateIDs))
	contents := make([]string, 0, len(req.TemplateIDs))
	for _, id := range req.TemplateIDs {
		template, err := s.templateRepo.FindByID(id, userID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, fmt.Errorf("%w: %s", common.ErrTemplateNotFound, id)
		}
		templates = append(templates, template)
		contents = append(contents, template.Content)
	}

	combined, err := engine.Assemble(contents, req.Separator)
	if err != nil {
		return nil, err
	}

	autoFillValues, degraded, err := s.resolveAutoFill(ctx, userID, req.ClientID, req.CaseID, req.StrictAutoFill)
	if err != nil {
		return nil, err
	}

	manual := req.Placeholders
	if shouldEscape(req.EscapeValues) {
		autoFillValues = engine.EscapeValues(autoFillValues)
		manual = engine.EscapeValues(manual)
	}

	merged := engine.Merge(combined, autoFillValues, manual)

	title := req.Title
	if title == "" {
		title = "Documento Combinado"
	}

	doc := &domain.GeneratedDocument{
		ID:                uuid.New().String(),
		UserID:            userID,
		Title:             title,
		Category:          domain.CategoryOutro,
		Status:            domain.StatusDraft,
		Content:           merged.Content,
		Version:           1,
		ClientID:          optionalID(req.ClientID),
		CaseID:            optionalID(req.CaseID),
		TemplateIDs:       domain.StringList(req.TemplateIDs),
		PlaceholderValues: effectiveValues(autoFillValues, manual),
	}

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, err
	}
	for _, template := range templates {
		s.afterWrite(ctx, userID, template.ID)
	}

	return &domain.GenerationResult{
		Document:               doc,
		UnresolvedPlaceholders: merged.Unresolved,
		AutoFillUnavailable:    degraded,
	}, nil
}

// CreateDocument stores a document written from scratch, without a template
func (s *AutomationService) CreateDocument(ctx context.Context, userID string, req *domain.DocumentCreateRequest) (*domain.GeneratedDocument, error) {
	category := req.Category
	if category == "" {
		category = domain.CategoryOutro
	}
	if !domain.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: invalid category %q", common.ErrInvalidInput, category)
	}

	doc := &domain.GeneratedDocument{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    req.Title,
		Category: category,
		Status:   domain.StatusDraft,
		Content:  req.Content,
		Version:  1,
		ClientID: optionalID(req.ClientID),
		CaseID:   optionalID(req.CaseID),
	}

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, userID)

	return doc, nil
}

// GetDocument returns one of the user's documents
func (s *AutomationService) GetDocument(ctx context.Context, userID, documentID string) (*domain.GeneratedDocument, error) {
	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrDocumentNotFound
	}
	return doc, nil
}

// ListDocuments returns the user's documents, newest first
func (s *AutomationService) ListDocuments(ctx context.Context, userID string, filter domain.DocumentListFilter) ([]domain.GeneratedDocument, error) {
	if filter.Status != "" && !domain.IsValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", common.ErrInvalidInput, filter.Status)
	}
	return s.documentRepo.List(userID, filter)
}

// UpdateDocument applies partial changes. A content change bumps the version
// and, unless create_version is false, archives the replaced content first.
// Metadata-only changes never touch the version counter.
func (s *AutomationService) UpdateDocument(ctx context.Context, userID, documentID string, req *domain.DocumentUpdateRequest) (*domain.GeneratedDocument, error) {
	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrDocumentNotFound
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Category != nil {
		if !domain.IsValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: invalid category %q", common.ErrInvalidInput, *req.Category)
		}
		doc.Category = *req.Category
	}
	if req.Status != nil {
		if !domain.IsValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", common.ErrInvalidInput, *req.Status)
		}
		doc.Status = *req.Status
	}

	contentChanged := req.Content != nil && *req.Content != doc.Content
	if !contentChanged {
		if err := s.documentRepo.Update(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	createVersion := req.CreateVersion == nil || *req.CreateVersion
	if err := s.replaceContent(doc, *req.Content, createVersion); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, userID)

	return doc, nil
}

// replaceContent archives the current content when requested, then swaps in
// the new content and bumps the version counter. Snapshot and save happen in
// one transaction so history never drifts from the document row.
func (s *AutomationService) replaceContent(doc *domain.GeneratedDocument, newContent string, createVersion bool) error {
	if createVersion {
		snapshot := &domain.DocumentVersion{
			DocumentID:    doc.ID,
			VersionNumber: doc.Version,
			Content:       doc.Content,
		}
		doc.Content = newContent
		doc.Version++
		return s.documentRepo.SaveWithSnapshot(doc, snapshot)
	}

	doc.Content = newContent
	doc.Version++
	return s.documentRepo.Update(doc)
}

// DeleteDocument removes a document together with its version history
func (s *AutomationService) DeleteDocument(ctx context.Context, userID, documentID string) error {
	deleted, err := s.documentRepo.Delete(documentID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return common.ErrDocumentNotFound
	}
	s.invalidateStats(ctx, userID)
	return nil
}

// ListVersions returns a document and its archived versions, newest first
func (s *AutomationService) ListVersions(ctx context.Context, userID, documentID string) (*VersionHistory, error) {
	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrDocumentNotFound
	}

	versions, err := s.versionRepo.FindByDocumentID(doc.ID)
	if err != nil {
		return nil, err
	}

	return &VersionHistory{Document: doc, Versions: versions}, nil
}

// RestoreVersion brings an archived version's content back as a fresh update.
// The pre-restore content is archived first, so a restore can be undone by
// restoring again. Restoring content identical to the current one is a no-op.
func (s *AutomationService) RestoreVersion(ctx context.Context, userID, documentID string, versionNumber int) (*domain.GeneratedDocument, error) {
	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrDocumentNotFound
	}

	version, err := s.versionRepo.FindByDocumentIDAndVersion(doc.ID, versionNumber)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, common.ErrVersionNotFound
	}

	if version.Content == doc.Content {
		return doc, nil
	}

	if err := s.replaceContent(doc, version.Content, true); err != nil {
		return nil, err
	}

	return doc, nil
}

// Export uploads the document content to object storage and stores the
// resulting key and URL on the document
func (s *AutomationService) Export(ctx context.Context, userID, documentID string) (*domain.GeneratedDocument, error) {
	if s.storage == nil {
		return nil, common.ErrStorageUnavailable
	}

	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrDocumentNotFound
	}

	key := storage.GenerateKey("documents/"+userID, fmt.Sprintf("%s-v%d.html", doc.ID, doc.Version))
	body := strings.NewReader(doc.Content)
	result, err := s.storage.Upload(ctx, key, body, "text/html; charset=utf-8", int64(len(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	doc.FileKey = result.Key
	doc.FileURL = result.URL
	if err := s.documentRepo.Update(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Stats returns per-user document counts, cached briefly
func (s *AutomationService) Stats(ctx context.Context, userID string) (*domain.DocumentStats, error) {
	if s.cacheService != nil {
		if data, err := s.cacheService.GetStats(ctx, userID); err == nil {
			var cached domain.DocumentStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.documentRepo.Stats(userID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.SetStats(ctx, userID, stats); err != nil {
			logger.Warn("Failed to cache document stats: %v", err)
		}
	}

	return stats, nil
}

// resolveAutoFill runs the resolver and applies the strict flag: lookup
// failures abort in strict mode and degrade to manual-only otherwise.
// Bad references (unknown client or case) abort either way.
func (s *AutomationService) resolveAutoFill(ctx context.Context, userID, clientID, caseID string, strict bool) (map[string]string, bool, error) {
	values, err := s.autoFill.Resolve(ctx, userID, clientID, caseID)
	if err == nil {
		return values, false, nil
	}
	if errors.Is(err, common.ErrAutoFillUnavailable) && !strict {
		logger.Warn("Auto-fill unavailable, generating without it: %v", err)
		return map[string]string{
			"documento.data": time.Now().Format("02/01/2006"),
		}, true, nil
	}
	return nil, false, err
}

func (s *AutomationService) afterWrite(ctx context.Context, userID, templateID string) {
	if err := s.templateRepo.IncrementUsage(templateID); err != nil {
		logger.Warn("Failed to increment usage for template %s: %v", templateID, err)
	}
	s.invalidateStats(ctx, userID)
}

func (s *AutomationService) invalidateStats(ctx context.Context, userID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.InvalidateStats(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate stats cache for user %s: %v", userID, err)
	}
}

// effectiveValues records what actually filled the document, manual entries
// winning over auto-fill for the same key
func effectiveValues(autoFillValues, manual map[string]string) domain.StringMap {
	merged := make(domain.StringMap, len(autoFillValues)+len(manual))
	for k, v := range autoFillValues {
		merged[k] = v
	}
	for k, v := range manual {
		if v != "" || autoFillValues[k] == "" {
			merged[k] = v
		}
	}
	return merged
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func shouldEscape(flag *bool) bool {
	return flag == nil || *flag
}
