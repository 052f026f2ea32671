package dto

import (
	"time"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// previewLength é o tamanho do body_preview em caracteres
const previewLength = 100

// ListConsultationsRequest representa os filtros de listagem
type ListConsultationsRequest struct {
	PaginationRequest
	UserID *uint `form:"userId" binding:"omitempty,min=1"`
	Draft  *bool `form:"draft"`
	Solved *bool `form:"solved"`
}

// CreateConsultationRequest representa a requisição para criar uma consulta
type CreateConsultationRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=100"`
	Body   string `json:"body" binding:"required,min=10,max=10000"`
	Draft  bool   `json:"draft"`
	TagIDs []uint `json:"tagIds" binding:"omitempty,unique,dive,min=1"`
}

// UpdateConsultationRequest representa a requisição para atualizar uma consulta
type UpdateConsultationRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=100"`
	Body   string `json:"body" binding:"required,min=10,max=10000"`
	Draft  bool   `json:"draft"`
	TagIDs []uint `json:"tagIds" binding:"omitempty,unique,dive,min=1"`
}

// AuthorResponse representa o autor em respostas. Nil quando o autor
// foi deletado; disabled é metadado de exibição.
type AuthorResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
}

// TagResponse representa uma tag vinculada a uma consulta
type TagResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// ConsultationSummaryResponse é a forma de listagem: sem body nem
// conselhos, apenas o preview
type ConsultationSummaryResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	BodyPreview string          `json:"body_preview"`
	Draft       bool            `json:"draft"`
	HiddenAt    *time.Time      `json:"hidden_at"`
	SolvedAt    *time.Time      `json:"solved_at"`
	Author      *AuthorResponse `json:"author"`
	Tags        []TagResponse   `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ConsultationDetailResponse é a forma de detalhe: body completo e
// lista de conselhos visíveis
type ConsultationDetailResponse struct {
	ConsultationSummaryResponse
	Body    string           `json:"body"`
	Advices []AdviceResponse `json:"advices"`
}

// SavedConsultationResponse é a resposta de atualização
type SavedConsultationResponse struct {
	ID        uint      `json:"id"`
	Draft     bool      `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConsultationListResponse é a resposta paginada de listagem
type ConsultationListResponse struct {
	Pagination PaginationMeta                `json:"pagination"`
	Data       []ConsultationSummaryResponse `json:"data"`
}

// ToConsultationSummaryResponse converte uma entidade para a forma de listagem
func ToConsultationSummaryResponse(consultation *entities.Consultation) ConsultationSummaryResponse {
	return ConsultationSummaryResponse{
		ID:          consultation.ID,
		Title:       consultation.Title,
		BodyPreview: BodyPreview(consultation.Body),
		Draft:       consultation.Draft,
		HiddenAt:    consultation.HiddenAt,
		SolvedAt:    consultation.SolvedAt,
		Author:      ToAuthorResponse(consultation.Author),
		Tags:        ToTagResponses(consultation.Tags),
		CreatedAt:   consultation.CreatedAt,
		UpdatedAt:   consultation.UpdatedAt,
	}
}

// ToConsultationSummaryResponses converte uma lista de entidades
func ToConsultationSummaryResponses(consultations []*entities.Consultation) []ConsultationSummaryResponse {
	responses := make([]ConsultationSummaryResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = ToConsultationSummaryResponse(consultation)
	}
	return responses
}

// ToConsultationDetailResponse converte uma entidade para a forma de detalhe
func ToConsultationDetailResponse(consultation *entities.Consultation) ConsultationDetailResponse {
	advices := make([]AdviceResponse, len(consultation.Advices))
	for i := range consultation.Advices {
		advices[i] = ToAdviceResponse(&consultation.Advices[i])
	}

	return ConsultationDetailResponse{
		ConsultationSummaryResponse: ToConsultationSummaryResponse(consultation),
		Body:                        consultation.Body,
		Advices:                     advices,
	}
}

// ToSavedConsultationResponse converte uma entidade para a resposta de atualização
func ToSavedConsultationResponse(consultation *entities.Consultation) SavedConsultationResponse {
	return SavedConsultationResponse{
		ID:        consultation.ID,
		Draft:     consultation.Draft,
		UpdatedAt: consultation.UpdatedAt,
	}
}

// ToAuthorResponse converte o autor; nil permanece nil (autor deletado)
func ToAuthorResponse(author *entities.User) *AuthorResponse {
	if author == nil {
		return nil
	}
	return &AuthorResponse{
		ID:       author.ID,
		Name:     author.Name,
		Disabled: author.Disabled,
	}
}

// ToTagResponses converte as tags de uma consulta
func ToTagResponses(tags []entities.Tag) []TagResponse {
	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = TagResponse{
			ID:        tag.ID,
			Name:      tag.Name,
			SortOrder: tag.SortOrder,
		}
	}
	return responses
}

// BodyPreview trunca o body nos primeiros 100 caracteres, sem respeitar
// fronteira de palavra, em qualquer modo de resposta
func BodyPreview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLength {
		return body
	}
	return string(runes[:previewLength])
}
