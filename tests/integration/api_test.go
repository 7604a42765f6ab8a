package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/handler"
	"github.com/jurisdesk/jurisdesk-backend/internal/repository"
	"github.com/jurisdesk/jurisdesk-backend/internal/routes"
	"github.com/jurisdesk/jurisdesk-backend/internal/service"
	"github.com/jurisdesk/jurisdesk-backend/pkg/jwt"
)

// APISuite is an integration test suite covering the document automation flow
type APISuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	jwtManager *jwt.Manager
	token      string
	clientID   string
	caseID     string
	templateID string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// Use SQLite for tests (no external DB dependency)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(
		&domain.Client{},
		&domain.Case{},
		&domain.Template{},
		&domain.GeneratedDocument{},
		&domain.DocumentVersion{},
	))

	s.jwtManager = jwt.NewManager("test-secret-key-for-integration-tests", 900)
	token, err := s.jwtManager.GenerateToken("adv-1", "Dra. Helena Martins", "helena@jurisdesk.example")
	s.Require().NoError(err)
	s.token = token

	templateRepo := repository.NewTemplateRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)

	autoFillService := service.NewAutoFillService(clientRepo, caseRepo, nil)
	templateService := service.NewTemplateService(templateRepo, nil, nil)
	automationService := service.NewAutomationService(templateRepo, documentRepo, versionRepo, autoFillService, nil, nil)
	clientService := service.NewClientService(clientRepo, nil)
	caseService := service.NewCaseService(caseRepo, clientRepo, nil)

	templateHandler := handler.NewTemplateHandler(templateService)
	automationHandler := handler.NewAutomationHandler(automationService, autoFillService)
	clientHandler := handler.NewClientHandler(clientService)
	caseHandler := handler.NewCaseHandler(caseService)

	s.router = gin.New()
	routes.Setup(s.router, templateHandler, automationHandler, clientHandler, caseHandler, s.jwtManager, nil)

	s.seedTestData()
}

func (s *APISuite) seedTestData() {
	client := &domain.Client{
		ID:      "client-1",
		UserID:  "adv-1",
		Name:    "Maria Oliveira",
		CPFCNPJ: "123.456.789-00",
		Email:   "maria@example.com",
	}
	s.Require().NoError(s.db.Create(client).Error)
	s.clientID = client.ID

	legalCase := &domain.Case{
		ID:         "case-1",
		UserID:     "adv-1",
		ClientID:   client.ID,
		Title:      "Ação Trabalhista",
		CaseNumber: "0000123-45.2026.5.02.0001",
		Status:     domain.CaseEmAndamento,
		Priority:   domain.PriorityAlta,
	}
	s.Require().NoError(s.db.Create(legalCase).Error)
	s.caseID = legalCase.ID

	template := &domain.Template{
		ID:           "template-1",
		UserID:       "adv-1",
		Name:         "Procuração",
		Category:     domain.CategoryProcuracao,
		Content:      "Outorgante: {{cliente.nome}}, processo {{caso.numero}}. Data: {{documento.data}}",
		Placeholders: domain.StringList{"cliente.nome", "caso.numero", "documento.data"},
	}
	s.Require().NoError(s.db.Create(template).Error)
	s.templateID = template.ID
}

func (s *APISuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Auth ---

func (s *APISuite) TestRequestWithoutToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestRequestWithInvalidToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

// --- Templates ---

func (s *APISuite) TestCreateTemplate_DerivesPlaceholders() {
	w := s.request(http.MethodPost, "/api/v1/templates", map[string]interface{}{
		"name":     "Declaração de Residência",
		"category": "declaracao",
		"content":  "Eu, {{cliente.nome}}, declaro residir em {{cliente.endereco.cidade}}.",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	data := s.decode(w)["data"].(map[string]interface{})
	placeholders := data["placeholders"].([]interface{})
	assert.Equal(s.T(), []interface{}{"cliente.nome", "cliente.endereco.cidade"}, placeholders)
}

func (s *APISuite) TestCreateTemplate_InvalidCategory() {
	w := s.request(http.MethodPost, "/api/v1/templates", map[string]interface{}{
		"name":     "Modelo",
		"category": "recibo",
		"content":  "x",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestListCategories() {
	w := s.request(http.MethodGet, "/api/v1/document-automation/categories", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	data := s.decode(w)["data"].([]interface{})
	assert.Len(s.T(), data, 6)
	assert.Contains(s.T(), data, "procuracao")
}

func (s *APISuite) TestPlaceholderCatalog() {
	w := s.request(http.MethodGet, "/api/v1/document-automation/placeholders", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	data := s.decode(w)["data"].([]interface{})
	keys := make([]string, 0, len(data))
	for _, entry := range data {
		keys = append(keys, entry.(map[string]interface{})["key"].(string))
	}
	assert.Contains(s.T(), keys, "cliente.nome")
	assert.Contains(s.T(), keys, "caso.numero")
	assert.Contains(s.T(), keys, "documento.data")
}

// --- Generation and versioning flow ---

func (s *APISuite) TestGenerateUpdateRestoreFlow() {
	// Generate from the seeded template with auto-fill from client and case
	w := s.request(http.MethodPost, "/api/v1/document-automation/generate", map[string]interface{}{
		"template_id": s.templateID,
		"client_id":   s.clientID,
		"case_id":     s.caseID,
		"title":       "Procuração Maria",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	result := s.decode(w)["data"].(map[string]interface{})
	doc := result["document"].(map[string]interface{})
	docID := doc["id"].(string)
	content := doc["content"].(string)

	assert.Contains(s.T(), content, "Maria Oliveira")
	assert.Contains(s.T(), content, "0000123-45.2026.5.02.0001")
	assert.NotContains(s.T(), content, "{{")
	assert.Equal(s.T(), float64(1), doc["version"])
	assert.Empty(s.T(), result["unresolved_placeholders"])

	// Content update archives version 1
	w = s.request(http.MethodPut, "/api/v1/document-automation/documents/"+docID, map[string]interface{}{
		"content": "Texto revisado pela advogada.",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	updated := s.decode(w)["data"].(map[string]interface{})
	assert.Equal(s.T(), float64(2), updated["version"])

	// History lists the archived version, newest first
	w = s.request(http.MethodGet, "/api/v1/document-automation/documents/"+docID+"/versions", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	history := s.decode(w)["data"].(map[string]interface{})
	versions := history["versions"].([]interface{})
	s.Require().Len(versions, 1)
	first := versions[0].(map[string]interface{})
	assert.Equal(s.T(), float64(1), first["version_number"])
	assert.Contains(s.T(), first["content"].(string), "Maria Oliveira")

	// Restore version 1; the restore itself is versioned
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/document-automation/documents/%s/versions/%d/restore", docID, 1), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	restored := s.decode(w)["data"].(map[string]interface{})
	assert.Equal(s.T(), float64(3), restored["version"])
	assert.Contains(s.T(), restored["content"].(string), "Maria Oliveira")

	w = s.request(http.MethodGet, "/api/v1/document-automation/documents/"+docID+"/versions", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	history = s.decode(w)["data"].(map[string]interface{})
	assert.Len(s.T(), history["versions"].([]interface{}), 2)
}

func (s *APISuite) TestGenerate_UnknownTemplate() {
	w := s.request(http.MethodPost, "/api/v1/document-automation/generate", map[string]interface{}{
		"template_id": "missing",
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	resp := s.decode(w)
	errBody := resp["error"].(map[string]interface{})
	assert.Equal(s.T(), "NOT_FOUND", errBody["code"])
}

func (s *APISuite) TestAssembly_OrderAndSeparator() {
	// Two extra templates to combine with the seeded one
	for i, content := range []string{"SEGUNDA PARTE", "TERCEIRA PARTE"} {
		w := s.request(http.MethodPost, "/api/v1/templates", map[string]interface{}{
			"name":     fmt.Sprintf("Parte %d", i+2),
			"category": "outro",
			"content":  content,
		})
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	var list []domain.Template
	s.Require().NoError(s.db.Where("name LIKE ?", "Parte %").Order("name").Find(&list).Error)
	s.Require().Len(list, 2)

	w := s.request(http.MethodPost, "/api/v1/document-automation/assembly", map[string]interface{}{
		"template_ids": []string{list[1].ID, list[0].ID},
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	doc := s.decode(w)["data"].(map[string]interface{})["document"].(map[string]interface{})
	assert.Equal(s.T(), "TERCEIRA PARTE\n\n---\n\nSEGUNDA PARTE", doc["content"])
	assert.Equal(s.T(), "outro", doc["category"])
}

func (s *APISuite) TestAssembly_RejectsSingleTemplate() {
	w := s.request(http.MethodPost, "/api/v1/document-automation/assembly", map[string]interface{}{
		"template_ids": []string{s.templateID},
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

// --- Auto-fill ---

func (s *APISuite) TestAutoFillEndpoint() {
	w := s.request(http.MethodGet, "/api/v1/document-automation/auto-fill?client_id="+s.clientID, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	values := s.decode(w)["data"].(map[string]interface{})
	assert.Equal(s.T(), "Maria Oliveira", values["cliente.nome"])
	assert.NotEmpty(s.T(), values["documento.data"])

	// Empty source fields are omitted entirely
	_, ok := values["cliente.profissao"]
	assert.False(s.T(), ok)

	// Without any reference the resolver has nothing to offer
	w = s.request(http.MethodGet, "/api/v1/document-automation/auto-fill", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Empty(s.T(), s.decode(w)["data"])
}

// --- CRM ---

func (s *APISuite) TestClientAndCaseCRUD() {
	w := s.request(http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name":     "Pedro Santos",
		"cpf_cnpj": "111.222.333-44",
		"email":    "pedro@example.com",
		"phone":    "+55 11 90000-0000",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	clientID := s.decode(w)["data"].(map[string]interface{})["id"].(string)

	w = s.request(http.MethodPost, "/api/v1/cases", map[string]interface{}{
		"client_id": clientID,
		"title":     "Inventário",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	caseData := s.decode(w)["data"].(map[string]interface{})
	assert.Equal(s.T(), "novo", caseData["status"])
	assert.Equal(s.T(), "media", caseData["priority"])

	caseID := caseData["id"].(string)
	w = s.request(http.MethodDelete, "/api/v1/cases/"+caseID, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, "/api/v1/clients/"+clientID, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/v1/clients/"+clientID, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestDocumentStats() {
	w := s.request(http.MethodGet, "/api/v1/document-automation/stats", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	stats := s.decode(w)["data"].(map[string]interface{})
	assert.NotNil(s.T(), stats["total"])
	assert.NotNil(s.T(), stats["by_status"])
	assert.NotNil(s.T(), stats["by_category"])
}
