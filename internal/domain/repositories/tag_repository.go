package repositories

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// TagRepository define a interface para persistência de tags
type TagRepository interface {
	// ListWithPublicCounts retorna as tags com a contagem de consultas
	// públicas (draft=false e hidden_at IS NULL) vinculadas, ordenadas
	// por sort_order e id.
	ListWithPublicCounts(ctx context.Context) ([]*entities.TagWithCount, error)
}
