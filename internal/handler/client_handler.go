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

// ClientHandler handles client registry requests
type ClientHandler struct {
	service *service.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(service *service.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/v1/clients
// @Summary Cadastrar cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param request body domain.ClientRequest true "Dados do cliente"
// @Success 201 {object} common.APIResponse{data=domain.Client}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req domain.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	client, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.CreatedResponse(c, client)
}

// Get handles GET /api/v1/clients/:id
// @Summary Consultar cliente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} common.APIResponse{data=domain.Client}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.service.GetByID(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, client, nil)
}

// List handles GET /api/v1/clients
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Param search query string false "Busca por nome ou CPF/CNPJ"
// @Param page query int false "Página" default(1)
// @Param per_page query int false "Itens por página" default(20)
// @Success 200 {object} common.APIResponse{data=[]domain.Client}
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	result, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), c.Query("search"), page, perPage)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, result.Clients, common.NewMeta(page, perPage, result.Total))
}

// Update handles PUT /api/v1/clients/:id
// @Summary Atualizar cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param request body domain.ClientRequest true "Dados do cliente"
// @Success 200 {object} common.APIResponse{data=domain.Client}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	var req domain.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	client, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	common.SuccessResponse(c, client, nil)
}

// Delete handles DELETE /api/v1/clients/:id
// @Summary Excluir cliente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Cliente excluído com sucesso"}, nil)
}
