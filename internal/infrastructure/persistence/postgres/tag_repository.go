package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
)

// TagRepository implementa repositories.TagRepository
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository cria um novo TagRepository
func NewTagRepository(db *gorm.DB) repositories.TagRepository {
	return &TagRepository{db: db}
}

type tagCountRow struct {
	ID        uint
	Name      string
	SortOrder int
	CreatedAt int64
	Count     int64
}

func (r *TagRepository) ListWithPublicCounts(ctx context.Context) ([]*entities.TagWithCount, error) {
	var rows []tagCountRow

	// Conta apenas consultas públicas: draft=false e não ocultadas
	err := r.getDB(ctx).
		Table("tags").
		Select("tags.id, tags.name, tags.sort_order, tags.created_at, COUNT(consultations.id) AS count").
		Joins("LEFT JOIN consultation_taggings ON consultation_taggings.tag_id = tags.id").
		Joins("LEFT JOIN consultations ON consultations.id = consultation_taggings.consultation_id"+
			" AND consultations.draft = ? AND consultations.hidden_at IS NULL", false).
		Group("tags.id, tags.name, tags.sort_order, tags.created_at").
		Order("tags.sort_order, tags.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tags := make([]*entities.TagWithCount, len(rows))
	for i, row := range rows {
		tags[i] = &entities.TagWithCount{
			Tag: entities.Tag{
				ID:        row.ID,
				Name:      row.Name,
				SortOrder: row.SortOrder,
				CreatedAt: milliToTime(row.CreatedAt),
			},
			Count: row.Count,
		}
	}

	return tags, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *TagRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
