package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/handlers/dto"
)

// statusForKind mapeia ErrorKind para status HTTP, mantendo o core
// livre de transporte
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		// CompensationFailed e erros não classificados
		return http.StatusInternalServerError
	}
}

// respondError traduz um erro do serviço para a resposta da API.
// Falhas não classificadas viram 500 genérico: o contexto completo
// fica apenas nos logs do servidor.
func respondError(c *gin.Context, logger ports.Logger, err error) {
	var domainErr *apperrors.DomainError
	if errs.As(err, &domainErr) {
		status := statusForKind(domainErr.Kind)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.Request.URL.Path,
				"kind", string(domainErr.Kind),
				"error", domainErr,
			)
		}
		c.JSON(status, dto.NewErrorResponse(c, string(domainErr.Kind), domainErr.Key, paramsOf(domainErr)...))
		return
	}

	logger.Error("unhandled error",
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(c, string(apperrors.KindInternal), "error.internal"))
}

// consultationID extrai o id de rota, rejeitando valores que não sejam
// inteiros positivos. Compartilhado pelos handlers de consulta e de
// conselho, que usam o mesmo parâmetro de rota.
func consultationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_id"))
		return 0, false
	}
	return uint(id), true
}

func paramsOf(err *apperrors.DomainError) []map[string]interface{} {
	if err.Params == nil {
		return nil
	}
	return []map[string]interface{}{err.Params}
}
