package repositories

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// AdviceRepository define a interface para persistência de conselhos
type AdviceRepository interface {
	Create(ctx context.Context, advice *entities.Advice) error

	// FindDraft retorna o conselho rascunho do autor na consulta, ou
	// nil se não houver.
	FindDraft(ctx context.Context, consultationID, authorID uint) (*entities.Advice, error)

	Update(ctx context.Context, advice *entities.Advice) error
}
