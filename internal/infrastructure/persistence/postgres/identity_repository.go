package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
)

// IdentityMappingRepository implementa repositories.IdentityMappingRepository
type IdentityMappingRepository struct {
	db *gorm.DB
}

// NewIdentityMappingRepository cria um novo IdentityMappingRepository
func NewIdentityMappingRepository(db *gorm.DB) repositories.IdentityMappingRepository {
	return &IdentityMappingRepository{db: db}
}

func (r *IdentityMappingRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.IdentityMapping, error) {
	var model IdentityMappingModel

	db := r.getDB(ctx)
	if err := db.Where("external_id = ?", externalID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.IdentityMapping{
		ID:         model.ID,
		ExternalID: model.ExternalID,
		UserID:     model.UserID,
		CreatedAt:  milliToTime(model.CreatedAt),
	}, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *IdentityMappingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
