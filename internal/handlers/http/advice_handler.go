package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/handlers/dto"
	"github.com/rafabene/consulta-backend/internal/handlers/middleware"
	"github.com/rafabene/consulta-backend/internal/services"
)

// AdviceHandler lida com requisições HTTP de conselhos
type AdviceHandler struct {
	adviceService *services.AdviceService
	logger        ports.Logger
}

// NewAdviceHandler cria um novo AdviceHandler
func NewAdviceHandler(adviceService *services.AdviceService, logger ports.Logger) *AdviceHandler {
	return &AdviceHandler{
		adviceService: adviceService,
		logger:        logger,
	}
}

// CreateAdvice cria um conselho em uma consulta visível
//
//	@Summary	Cria um conselho; qualquer usuário autenticado pode aconselhar
//	@Tags		advice
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Id da consulta"
//	@Param		request	body		dto.CreateAdviceRequest	true	"Conselho"
//	@Success	201		{object}	dto.AdviceResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/consultations/{id}/advice [post]
func (h *AdviceHandler) CreateAdvice(c *gin.Context) {
	id, ok := consultationID(c)
	if !ok {
		return
	}

	var req dto.CreateAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_body"))
		return
	}

	userID, _ := middleware.UserIDFromContext(c)

	input := services.CreateAdviceInput{
		Body:  req.Body,
		Draft: req.Draft,
	}

	advice, err := h.adviceService.CreateAdvice(c.Request.Context(), id, input, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdviceResponse(advice))
}

// UpdateDraftAdvice edita o conselho rascunho do autor na consulta
//
//	@Summary	Edita (e opcionalmente publica) o próprio conselho rascunho
//	@Tags		advice
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Id da consulta"
//	@Param		request	body		dto.UpdateDraftAdviceRequest	true	"Conselho"
//	@Success	200		{object}	dto.SavedAdviceResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/consultations/{id}/advice/draft [put]
func (h *AdviceHandler) UpdateDraftAdvice(c *gin.Context) {
	id, ok := consultationID(c)
	if !ok {
		return
	}

	var req dto.UpdateDraftAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_body"))
		return
	}

	userID, _ := middleware.UserIDFromContext(c)

	input := services.UpdateDraftAdviceInput{
		Body:  req.Body,
		Draft: req.Draft,
	}

	advice, err := h.adviceService.UpdateDraftAdvice(c.Request.Context(), id, input, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSavedAdviceResponse(advice))
}
