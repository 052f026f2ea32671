package repositories

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// ConsultationRepository define a interface para persistência de consultas
type ConsultationRepository interface {
	// List retorna consultas com autor e tags populados, sem body de
	// conselhos. Count conta sob os mesmos filtros.
	List(ctx context.Context, filters ConsultationFilters) ([]*entities.Consultation, error)
	Count(ctx context.Context, filters ConsultationFilters) (int64, error)

	// FindByID retorna a consulta com autor, tags e conselhos ordenados
	// por created_at ascendente. Conselhos rascunho ou ocultados são
	// excluídos na query, para todos os chamadores. Retorna nil se a
	// consulta não existe.
	FindByID(ctx context.Context, id uint) (*entities.Consultation, error)

	Create(ctx context.Context, consultation *entities.Consultation) error
	Update(ctx context.Context, consultation *entities.Consultation) error

	// DeleteByID remove a consulta. Usado apenas como delete
	// compensatório após falha de vínculo de tags na criação.
	DeleteByID(ctx context.Context, id uint) error

	// AttachTags valida que todos os ids existem (Conflict nomeando o
	// primeiro id ausente, sem inserção parcial) e insere os vínculos.
	AttachTags(ctx context.Context, consultationID uint, tagIDs []uint) error

	// ReplaceTags substitui o conjunto de vínculos. Deve executar
	// dentro da transação corrente do contexto.
	ReplaceTags(ctx context.Context, consultationID uint, tagIDs []uint) error
}

// ConsultationFilters contém filtros e paginação para listagem
type ConsultationFilters struct {
	AuthorID *uint
	Draft    *bool
	Solved   *bool // Mapeia para solved_at IS [NOT] NULL

	// VisibleFor exclui consultas ocultadas de outros autores:
	// hidden_at IS NULL OR author_id = *VisibleFor
	VisibleFor *uint

	Page    int // Página (começa em 1)
	PerPage int // Itens por página (default: 20, max: 100)
}
