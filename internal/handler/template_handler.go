package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
	"github.com/jurisdesk/jurisdesk-backend/internal/domain"
	"github.com/jurisdesk/jurisdesk-backend/internal/middleware"
	"github.com/jurisdesk/jurisdesk-backend/internal/service"
)

// TemplateHandler handles document template requests
type TemplateHandler struct {
	service *service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// Create handles POST /api/v1/templates
// @Summary Criar modelo de documento
// @Description Cria um modelo com marcações {{campo}} extraídas automaticamente
// @Tags templates
// @Accept json
// @Produce json
// @Param request body domain.TemplateCreateRequest true "Dados do modelo"
// @Success 201 {object} common.APIResponse{data=domain.Template}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req domain.TemplateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	template, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.CreatedResponse(c, template)
}

// Get handles GET /api/v1/templates/:id
// @Summary Consultar modelo
// @Tags templates
// @Produce json
// @Param id path string true "ID do modelo"
// @Success 200 {object} common.APIResponse{data=domain.Template}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.service.GetByID(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, template, nil)
}

// List handles GET /api/v1/templates
// @Summary Listar modelos
// @Description Lista os modelos do usuário e os modelos públicos
// @Tags templates
// @Produce json
// @Param category query string false "Categoria (contrato, procuracao, peticao, ata, declaracao, outro)"
// @Param include_public query bool false "Incluir modelos públicos" default(true)
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Itens por página" default(20)
// @Success 200 {object} common.APIResponse{data=service.TemplateListResult}
// @Security BearerAuth
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	category := c.Query("category")
	if category != "" && !domain.IsValidCategory(category) {
		common.ErrorResponse(c, http.StatusBadRequest, "Categoria inválida", nil)
		return
	}

	filter := domain.TemplateListFilter{
		Category:      category,
		IncludePublic: c.DefaultQuery("include_public", "true") == "true",
		Page:          page,
		PerPage:       perPage,
	}

	result, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, result.Templates, common.NewMeta(page, perPage, result.Total))
}

// Search handles GET /api/v1/templates/search
// @Summary Buscar modelos
// @Tags templates
// @Produce json
// @Param q query string true "Termo de busca"
// @Param limit query int false "Limite de resultados" default(20)
// @Success 200 {object} common.APIResponse{data=service.TemplateListResult}
// @Security BearerAuth
// @Router /templates/search [get]
func (h *TemplateHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Informe o termo de busca", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	result, err := h.service.Search(c.Request.Context(), middleware.GetUserID(c), query, limit)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// Update handles PUT /api/v1/templates/:id
// @Summary Atualizar modelo
// @Description Atualização parcial; alterar o conteúdo recalcula as marcações
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "ID do modelo"
// @Param request body domain.TemplateUpdateRequest true "Campos a atualizar"
// @Success 200 {object} common.APIResponse{data=domain.Template}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req domain.TemplateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	template, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, template, nil)
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary Excluir modelo
// @Tags templates
// @Produce json
// @Param id path string true "ID do modelo"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Modelo excluído com sucesso"}, nil)
}

// ToggleFavorite handles POST /api/v1/templates/:id/favorite
// @Summary Alternar favorito
// @Tags templates
// @Produce json
// @Param id path string true "ID do modelo"
// @Success 200 {object} common.APIResponse{data=domain.Template}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /templates/{id}/favorite [post]
func (h *TemplateHandler) ToggleFavorite(c *gin.Context) {
	template, err := h.service.ToggleFavorite(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, template, nil)
}
