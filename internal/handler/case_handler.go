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

// CaseHandler handles legal case requests
type CaseHandler struct {
	service *service.CaseService
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(service *service.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// Create handles POST /api/v1/cases
// @Summary Abrir caso
// @Tags cases
// @Accept json
// @Produce json
// @Param request body domain.CaseRequest true "Dados do caso"
// @Success 201 {object} common.APIResponse{data=domain.Case}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /cases [post]
func (h *CaseHandler) Create(c *gin.Context) {
	var req domain.CaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	legalCase, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.CreatedResponse(c, legalCase)
}

// Get handles GET /api/v1/cases/:id
// @Summary Consultar caso
// @Tags cases
// @Produce json
// @Param id path string true "ID do caso"
// @Success 200 {object} common.APIResponse{data=domain.Case}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c *gin.Context) {
	legalCase, err := h.service.GetByID(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, legalCase, nil)
}

// List handles GET /api/v1/cases
// @Summary Listar casos
// @Tags cases
// @Produce json
// @Param client_id query string false "Filtrar por cliente"
// @Param status query string false "Filtrar por status"
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Itens por página" default(20)
// @Success 200 {object} common.APIResponse{data=[]domain.Case}
// @Security BearerAuth
// @Router /cases [get]
func (h *CaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	result, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), c.Query("client_id"), c.Query("status"), page, perPage)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, result.Cases, common.NewMeta(page, perPage, result.Total))
}

// Update handles PUT /api/v1/cases/:id
// @Summary Atualizar caso
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "ID do caso"
// @Param request body domain.CaseRequest true "Dados do caso"
// @Success 200 {object} common.APIResponse{data=domain.Case}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /cases/{id} [put]
func (h *CaseHandler) Update(c *gin.Context) {
	var req domain.CaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	legalCase, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, legalCase, nil)
}

// Delete handles DELETE /api/v1/cases/:id
// @Summary Excluir caso
// @Tags cases
// @Produce json
// @Param id path string true "ID do caso"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /cases/{id} [delete]
func (h *CaseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Caso excluído com sucesso"}, nil)
}
