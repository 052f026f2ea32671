package dto

import (
	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// TagItemResponse representa uma tag com a contagem de consultas públicas
type TagItemResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Count     int64  `json:"count"`
}

// TagListResponse é a resposta da listagem de tags
type TagListResponse struct {
	Data []TagItemResponse `json:"data"`
}

// ToTagListResponse converte a lista de tags com contagens
func ToTagListResponse(tags []*entities.TagWithCount) TagListResponse {
	items := make([]TagItemResponse, len(tags))
	for i, tag := range tags {
		items[i] = TagItemResponse{
			ID:        tag.ID,
			Name:      tag.Name,
			SortOrder: tag.SortOrder,
			Count:     tag.Count,
		}
	}
	return TagListResponse{Data: items}
}
