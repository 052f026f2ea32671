package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
)

// AdviceRepository implementa repositories.AdviceRepository
type AdviceRepository struct {
	db *gorm.DB
}

// NewAdviceRepository cria um novo AdviceRepository
func NewAdviceRepository(db *gorm.DB) repositories.AdviceRepository {
	return &AdviceRepository{db: db}
}

func (r *AdviceRepository) Create(ctx context.Context, advice *entities.Advice) error {
	model := adviceToModel(advice)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	advice.ID = model.ID
	advice.CreatedAt = milliToTime(model.CreatedAt)
	advice.UpdatedAt = milliToTime(model.UpdatedAt)
	return nil
}

func (r *AdviceRepository) FindDraft(ctx context.Context, consultationID, authorID uint) (*entities.Advice, error) {
	var model AdviceModel

	db := r.getDB(ctx)
	err := db.
		Where("consultation_id = ? AND author_id = ? AND draft = ?", consultationID, authorID, true).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return adviceToEntity(&model), nil
}

func (r *AdviceRepository) Update(ctx context.Context, advice *entities.Advice) error {
	db := r.getDB(ctx)

	result := db.Model(&AdviceModel{}).
		Where("id = ?", advice.ID).
		Updates(map[string]interface{}{
			"body":  advice.Body,
			"draft": advice.Draft,
		})
	if result.Error != nil {
		return result.Error
	}

	var model AdviceModel
	if err := db.Where("id = ?", advice.ID).First(&model).Error; err != nil {
		return err
	}
	advice.UpdatedAt = milliToTime(model.UpdatedAt)
	return nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *AdviceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Conversores
func adviceToModel(advice *entities.Advice) *AdviceModel {
	return &AdviceModel{
		ID:             advice.ID,
		Body:           advice.Body,
		Draft:          advice.Draft,
		HiddenAt:       timePtrToMilli(advice.HiddenAt),
		ConsultationID: advice.ConsultationID,
		AuthorID:       advice.AuthorID,
	}
}

func adviceToEntity(model *AdviceModel) *entities.Advice {
	return &entities.Advice{
		ID:             model.ID,
		Body:           model.Body,
		Draft:          model.Draft,
		HiddenAt:       milliPtrToTime(model.HiddenAt),
		ConsultationID: model.ConsultationID,
		AuthorID:       model.AuthorID,
		CreatedAt:      milliToTime(model.CreatedAt),
		UpdatedAt:      milliToTime(model.UpdatedAt),
	}
}
