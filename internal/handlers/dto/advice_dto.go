package dto

import (
	"time"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// CreateAdviceRequest representa a requisição para criar um conselho
type CreateAdviceRequest struct {
	Body  string `json:"body" binding:"required,min=10,max=10000"`
	Draft bool   `json:"draft"`
}

// UpdateDraftAdviceRequest representa a requisição para editar (e
// opcionalmente publicar) o conselho rascunho do autor
type UpdateDraftAdviceRequest struct {
	Body  string `json:"body" binding:"required,min=10,max=10000"`
	Draft *bool  `json:"draft"`
}

// AdviceResponse representa um conselho
type AdviceResponse struct {
	ID        uint            `json:"id"`
	Body      string          `json:"body"`
	Draft     bool            `json:"draft"`
	HiddenAt  *time.Time      `json:"hidden_at"`
	Author    *AuthorResponse `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SavedAdviceResponse é a resposta de edição do rascunho
type SavedAdviceResponse struct {
	ID        uint      `json:"id"`
	Draft     bool      `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ToAdviceResponse converte uma entidade Advice
func ToAdviceResponse(advice *entities.Advice) AdviceResponse {
	return AdviceResponse{
		ID:        advice.ID,
		Body:      advice.Body,
		Draft:     advice.Draft,
		HiddenAt:  advice.HiddenAt,
		Author:    ToAuthorResponse(advice.Author),
		CreatedAt: advice.CreatedAt,
		UpdatedAt: advice.UpdatedAt,
	}
}

// ToSavedAdviceResponse converte uma entidade para a resposta de edição
func ToSavedAdviceResponse(advice *entities.Advice) SavedAdviceResponse {
	return SavedAdviceResponse{
		ID:        advice.ID,
		Draft:     advice.Draft,
		UpdatedAt: advice.UpdatedAt,
		CreatedAt: advice.CreatedAt,
	}
}
