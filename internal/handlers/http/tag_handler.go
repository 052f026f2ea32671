package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/handlers/dto"
	"github.com/rafabene/consulta-backend/internal/services"
)

// TagHandler lida com requisições HTTP de tags
type TagHandler struct {
	tagService *services.TagService
	logger     ports.Logger
}

// NewTagHandler cria um novo TagHandler
func NewTagHandler(tagService *services.TagService, logger ports.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags lista as tags com contagem de consultas públicas
//
//	@Summary	Lista tags; count considera apenas consultas públicas
//	@Tags		tags
//	@Produce	json
//	@Success	200	{object}	dto.TagListResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagListResponse(tags))
}
