package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
	"github.com/rafabene/consulta-backend/internal/infrastructure/i18n"
)

// ContextUserIDKey é a chave do id interno do usuário no contexto do Gin
const ContextUserIDKey = "user_id"

// AuthMiddleware resolve a sessão de identidade externa para o id
// interno do usuário. O token é emitido pelo provedor externo de
// autenticação; aqui apenas verificamos a assinatura e buscamos o
// vínculo de identidade. Identidade não mapeada é rejeitada — a
// criação do vínculo é responsabilidade exclusiva do fluxo de signup.
type AuthMiddleware struct {
	identityRepo repositories.IdentityMappingRepository
	secret       []byte
	logger       ports.Logger
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(identityRepo repositories.IdentityMappingRepository, secret string, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identityRepo: identityRepo,
		secret:       []byte(secret),
		logger:       logger,
	}
}

// RequireUser exige uma sessão válida e injeta o id interno do usuário
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID, ok := m.externalIdentity(c)
		if !ok {
			m.reject(c, "error.unauthorized.missing_token")
			return
		}

		mapping, err := m.identityRepo.FindByExternalID(c.Request.Context(), externalID)
		if err != nil {
			m.logger.Error("identity lookup failed", "error", err)
			m.reject(c, "error.unauthorized.unknown_identity")
			return
		}
		if mapping == nil {
			m.reject(c, "error.unauthorized.unknown_identity")
			return
		}

		c.Set(ContextUserIDKey, mapping.UserID)
		c.Next()
	}
}

// externalIdentity extrai e verifica o token Bearer, retornando o id
// externo (claim sub)
func (m *AuthMiddleware) externalIdentity(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

func (m *AuthMiddleware) reject(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Unauthorized",
		"message": translate(c, key),
	})
}

// UserIDFromContext retorna o id interno injetado pelo middleware
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// translate traduz uma chave usando o serviço i18n do contexto, se
// disponível (o middleware de auth roda depois do de i18n)
func translate(c *gin.Context, key string) string {
	service, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}
	i18nService, ok := service.(*i18n.Service)
	if !ok {
		return key
	}

	lang, _ := c.Get(LanguageContextKey)
	langStr, _ := lang.(string)

	return i18nService.T(langStr, key)
}
