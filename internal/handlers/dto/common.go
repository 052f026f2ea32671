package dto

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse é o corpo uniforme de erro da API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse cria uma resposta de erro com mensagem traduzida.
// kind é o nome do ErrorKind; key é o message ID para i18n.
func NewErrorResponse(c *gin.Context, kind, key string, params ...map[string]interface{}) ErrorResponse {
	return ErrorResponse{
		Error:   kind,
		Message: T(c, key, params...),
	}
}
