package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisdesk/jurisdesk-backend/internal/common"
)

// serviceError maps service sentinel errors onto HTTP responses so every
// handler reports the same status for the same failure
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrTemplateNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Modelo não encontrado", err)
	case errors.Is(err, common.ErrDocumentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Documento não encontrado", err)
	case errors.Is(err, common.ErrVersionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Versão não encontrada", err)
	case errors.Is(err, common.ErrClientNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Cliente não encontrado", err)
	case errors.Is(err, common.ErrCaseNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Caso não encontrado", err)
	case errors.Is(err, common.ErrInvalidAssemblyInput):
		common.ErrorResponse(c, http.StatusBadRequest, "A montagem exige pelo menos dois modelos", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
	case errors.Is(err, common.ErrAutoFillUnavailable):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Preenchimento automático indisponível", err)
	case errors.Is(err, common.ErrStorageUnavailable):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Armazenamento de arquivos indisponível", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Acesso negado", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Erro interno do servidor", err)
	}
}
