package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/engine"
	"github.com/jurisdesk/jurisdesk-backend/internal/middleware"
	"github.com/jurisdesk/jurisdesk-backend/internal/service"
)

// AutomationHandler handles document generation, assembly and versioning requests
type AutomationHandler struct {
	service  *service.AutomationService
	autoFill *service.AutoFillService
}

// NewAutomationHandler creates a new AutomationHandler
func NewAutomationHandler(service *service.AutomationService, autoFill *service.AutoFillService) *AutomationHandler {
	return &AutomationHandler{service: service, autoFill: autoFill}
}

// Generate handles POST /api/v1/document-automation/generate
// @Summary Gerar documento a partir de modelo
// @Description Preenche as marcações do modelo com dados do cliente/caso e valores manuais
// @Tags document-automation
// @Accept json
// @Produce json
// @Param request body domain.GenerateRequest true "Parâmetros de geração"
// @Success 201 {object} common.APIResponse{data=domain.GenerationResult}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 503 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/generate [post]
func (h *AutomationHandler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	middleware.CountGeneratedDocument("generate")

	common.CreatedResponse(c, result)
}

// Assemble handles POST /api/v1/document-automation/assembly
// @Summary Montar documento combinando modelos
// @Description Combina dois ou mais modelos, na ordem enviada, em um único documento
// @Tags document-automation
// @Accept json
// @Produce json
// @Param request body domain.AssemblyRequest true "Parâmetros de montagem"
// @Success 201 {object} common.APIResponse{data=domain.GenerationResult}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/assembly [post]
func (h *AutomationHandler) Assemble(c *gin.Context) {
	var req domain.AssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	result, err := h.service.Assemble(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	middleware.CountGeneratedDocument("assembly")

	common.CreatedResponse(c, result)
}

// Reorder handles POST /api/v1/document-automation/assembly/reorder
// @Summary Reordenar seleção de modelos
// @Description Move um modelo da seleção uma posição para cima ou para baixo
// @Tags document-automation
// @Accept json
// @Produce json
// @Param request body domain.ReorderRequest true "Seleção e movimento"
// @Success 200 {object} common.APIResponse{data=[]string}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/assembly/reorder [post]
func (h *AutomationHandler) Reorder(c *gin.Context) {
	var req domain.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}
	if req.Index < 0 || req.Index >= len(req.TemplateIDs) {
		common.ErrorResponse(c, http.StatusBadRequest, "Índice fora da seleção", nil)
		return
	}

	common.SuccessResponse(c, engine.Move(req.TemplateIDs, req.Index, req.Direction), nil)
}

// AutoFill handles GET /api/v1/document-automation/auto-fill
// @Summary Consultar valores de preenchimento automático
// @Description Retorna os valores derivados do cliente e/ou caso informados
// @Tags document-automation
// @Produce json
// @Param client_id query string false "ID do cliente"
// @Param case_id query string false "ID do caso"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 503 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/auto-fill [get]
func (h *AutomationHandler) AutoFill(c *gin.Context) {
	values, err := h.autoFill.Resolve(c.Request.Context(), middleware.GetUserID(c), c.Query("client_id"), c.Query("case_id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, values, nil)
}

// Placeholders handles GET /api/v1/document-automation/placeholders
// @Summary Listar marcações disponíveis
// @Tags document-automation
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]service.PlaceholderInfo}
// @Security BearerAuth
// @Router /document-automation/placeholders [get]
func (h *AutomationHandler) Placeholders(c *gin.Context) {
	common.SuccessResponse(c, h.autoFill.Catalog(), nil)
}

// Categories handles GET /api/v1/document-automation/categories
// @Summary Listar categorias de documento
// @Tags document-automation
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]string}
// @Security BearerAuth
// @Router /document-automation/categories [get]
func (h *AutomationHandler) Categories(c *gin.Context) {
	common.SuccessResponse(c, domain.TemplateCategories, nil)
}

// CreateDocument handles POST /api/v1/document-automation/documents
// @Summary Criar documento avulso
// @Description Cria um documento sem partir de um modelo
// @Tags document-automation
// @Accept json
// @Produce json
// @Param request body domain.DocumentCreateRequest true "Dados do documento"
// @Success 201 {object} common.APIResponse{data=domain.GeneratedDocument}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents [post]
func (h *AutomationHandler) CreateDocument(c *gin.Context) {
	var req domain.DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	doc, err := h.service.CreateDocument(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.CreatedResponse(c, doc)
}

// GetDocument handles GET /api/v1/document-automation/documents/:id
// @Summary Consultar documento
// @Tags document-automation
// @Produce json
// @Param id path string true "ID do documento"
// @Success 200 {object} common.APIResponse{data=domain.GeneratedDocument}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id} [get]
func (h *AutomationHandler) GetDocument(c *gin.Context) {
	doc, err := h.service.GetDocument(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, doc, nil)
}

// ListDocuments handles GET /api/v1/document-automation/documents
// @Summary Listar documentos
// @Tags document-automation
// @Produce json
// @Param category query string false "Categoria"
// @Param status query string false "Status (draft, review, approved, signed)"
// @Param client_id query string false "ID do cliente"
// @Param case_id query string false "ID do caso"
// @Param limit query int false "Limite de resultados" default(50)
// @Success 200 {object} common.APIResponse{data=[]domain.GeneratedDocument}
// @Security BearerAuth
// @Router /document-automation/documents [get]
func (h *AutomationHandler) ListDocuments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := domain.DocumentListFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		CaseID:   c.Query("case_id"),
		Limit:    limit,
	}

	docs, err := h.service.ListDocuments(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, docs, nil)
}

// UpdateDocument handles PUT /api/v1/document-automation/documents/:id
// @Summary Atualizar documento
// @Description Alterar o conteúdo arquiva a versão anterior, salvo quando create_version=false
// @Tags document-automation
// @Accept json
// @Produce json
// @Param id path string true "ID do documento"
// @Param request body domain.DocumentUpdateRequest true "Campos a atualizar"
// @Success 200 {object} common.APIResponse{data=domain.GeneratedDocument}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id} [put]
func (h *AutomationHandler) UpdateDocument(c *gin.Context) {
	var req domain.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	doc, err := h.service.UpdateDocument(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, doc, nil)
}

// DeleteDocument handles DELETE /api/v1/document-automation/documents/:id
// @Summary Excluir documento
// @Description Remove o documento e todo o seu histórico de versões
// @Tags document-automation
// @Produce json
// @Param id path string true "ID do documento"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id} [delete]
func (h *AutomationHandler) DeleteDocument(c *gin.Context) {
	if err := h.service.DeleteDocument(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Documento excluído com sucesso"}, nil)
}

// ListVersions handles GET /api/v1/document-automation/documents/:id/versions
// @Summary Listar versões do documento
// @Tags document-automation
// @Produce json
// @Param id path string true "ID do documento"
// @Success 200 {object} common.APIResponse{data=service.VersionHistory}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id}/versions [get]
func (h *AutomationHandler) ListVersions(c *gin.Context) {
	history, err := h.service.ListVersions(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, history, nil)
}

// RestoreVersion handles POST /api/v1/document-automation/documents/:id/versions/:version/restore
// @Summary Restaurar versão do documento
// @Description Traz o conteúdo da versão de volta como uma nova atualização versionada
// @Tags document-automation
// @Produce json
// @Param id path string true "ID do documento"
// @Param version path int true "Número da versão"
// @Success 200 {object} common.APIResponse{data=domain.GeneratedDocument}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id}/versions/{version}/restore [post]
func (h *AutomationHandler) RestoreVersion(c *gin.Context) {
	versionNumber, err := strconv.Atoi(c.Param("version"))
	if err != nil || versionNumber < 1 {
		common.ErrorResponse(c, http.StatusBadRequest, "Número de versão inválido", err)
		return
	}

	doc, err := h.service.RestoreVersion(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), versionNumber)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, doc, nil)
}

// ExportDocument handles POST /api/v1/document-automation/documents/:id/export
// @Summary Exportar documento
// @Description Envia o conteúdo para o armazenamento de objetos e retorna a URL do arquivo
// @Tags document-automation
// @Produce json
// @Param id path string true "ID do documento"
// @Success 200 {object} common.APIResponse{data=domain.GeneratedDocument}
// @Failure 404 {object} common.APIResponse
// @Failure 503 {object} common.APIResponse
// @Security BearerAuth
// @Router /document-automation/documents/{id}/export [post]
func (h *AutomationHandler) ExportDocument(c *gin.Context) {
	doc, err := h.service.Export(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, doc, nil)
}

// Stats handles GET /api/v1/document-automation/stats
// @Summary Estatísticas de documentos
// @Tags document-automation
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.DocumentStats}
// @Security BearerAuth
// @Router /document-automation/stats [get]
func (h *AutomationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, stats, nil)
}
