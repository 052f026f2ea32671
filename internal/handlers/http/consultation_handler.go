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

// ConsultationHandler lida com requisições HTTP de consultas
type ConsultationHandler struct {
	consultationService *services.ConsultationService
	logger              ports.Logger
}

// NewConsultationHandler cria um novo ConsultationHandler
func NewConsultationHandler(consultationService *services.ConsultationService, logger ports.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
		logger:              logger,
	}
}

// ListConsultations lista consultas
//
//	@Summary	Lista consultas com filtros e paginação
//	@Tags		consultations
//	@Produce	json
//	@Param		userId	query		int		false	"Filtra por autor"
//	@Param		draft	query		bool	false	"true lista apenas os próprios rascunhos"
//	@Param		solved	query		bool	false	"Filtra por resolvidas"
//	@Param		page	query		int		false	"Página (1-1000)"
//	@Param		limit	query		int		false	"Itens por página (1-100)"
//	@Success	200		{object}	dto.ConsultationListResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/consultations [get]
func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	var req dto.ListConsultationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_query"))
		return
	}

	var requestUserID *uint
	if userID, ok := middleware.UserIDFromContext(c); ok {
		requestUserID = &userID
	}

	input := services.ListConsultationsInput{
		UserID:  req.UserID,
		Draft:   req.Draft,
		Solved:  req.Solved,
		Page:    req.Page,
		PerPage: req.Limit,
	}

	list, err := h.consultationService.ListConsultations(c.Request.Context(), input, requestUserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConsultationListResponse{
		Pagination: dto.NewPaginationMeta(req.Page, req.Limit, list.TotalItems),
		Data:       dto.ToConsultationSummaryResponses(list.Consultations),
	})
}

// GetConsultation busca uma consulta por id
//
//	@Summary	Detalha uma consulta com seus conselhos visíveis
//	@Tags		consultations
//	@Produce	json
//	@Param		id	path		int	true	"Id da consulta"
//	@Success	200	{object}	dto.ConsultationDetailResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/consultations/{id} [get]
func (h *ConsultationHandler) GetConsultation(c *gin.Context) {
	id, ok := consultationID(c)
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromContext(c)

	consultation, err := h.consultationService.GetConsultation(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsultationDetailResponse(consultation))
}

// CreateConsultation cria uma consulta
//
//	@Summary	Cria uma consulta, com vínculo atômico de tags
//	@Tags		consultations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateConsultationRequest	true	"Consulta"
//	@Success	201		{object}	dto.ConsultationDetailResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/consultations [post]
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req dto.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_body"))
		return
	}

	userID, _ := middleware.UserIDFromContext(c)

	input := services.CreateConsultationInput{
		Title:  req.Title,
		Body:   req.Body,
		Draft:  req.Draft,
		TagIDs: req.TagIDs,
	}

	consultation, err := h.consultationService.CreateConsultation(c.Request.Context(), input, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConsultationDetailResponse(consultation))
}

// UpdateConsultation atualiza uma consulta do próprio autor
//
//	@Summary	Atualiza consulta e substitui tags atomicamente
//	@Tags		consultations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"Id da consulta"
//	@Param		request	body		dto.UpdateConsultationRequest	true	"Consulta"
//	@Success	200		{object}	dto.SavedConsultationResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/consultations/{id} [put]
func (h *ConsultationHandler) UpdateConsultation(c *gin.Context) {
	id, ok := consultationID(c)
	if !ok {
		return
	}

	var req dto.UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c,
			string(apperrors.KindValidation), "error.validation.invalid_body"))
		return
	}

	userID, _ := middleware.UserIDFromContext(c)

	input := services.UpdateConsultationInput{
		Title:  req.Title,
		Body:   req.Body,
		Draft:  req.Draft,
		TagIDs: req.TagIDs,
	}

	consultation, err := h.consultationService.UpdateConsultation(c.Request.Context(), id, input, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSavedConsultationResponse(consultation))
}
