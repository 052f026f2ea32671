package dto

import "math"

// PaginationRequest representa os parâmetros de paginação da query
// string. Valores fora do intervalo são rejeitados com 400 no binding;
// valores ausentes recebem os defaults.
type PaginationRequest struct {
	Page  int `form:"page,default=1" binding:"min=1,max=1000"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// PaginationMeta é o metadado de paginação das respostas de listagem
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPaginationMeta calcula o metadado para a página corrente.
// Página além da última não é erro: o dado vem vazio e o metadado
// permanece exato.
func NewPaginationMeta(page, perPage int, totalItems int64) PaginationMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(perPage)))

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
