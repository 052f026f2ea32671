package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
)

// ConsultationRepository implementa repositories.ConsultationRepository
type ConsultationRepository struct {
	db *gorm.DB
}

// NewConsultationRepository cria um novo ConsultationRepository
func NewConsultationRepository(db *gorm.DB) repositories.ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) List(ctx context.Context, filters repositories.ConsultationFilters) ([]*entities.Consultation, error) {
	var models []*ConsultationModel

	query := r.applyFilters(r.getDB(ctx).Model(&ConsultationModel{}), filters)

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	offset := (page - 1) * perPage
	query = query.Order("created_at DESC, id DESC").Limit(perPage).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	consultations := make([]*entities.Consultation, len(models))
	for i, model := range models {
		consultations[i] = r.toEntity(model)
	}

	if err := r.loadAuthors(ctx, consultations); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, consultations); err != nil {
		return nil, err
	}

	return consultations, nil
}

func (r *ConsultationRepository) Count(ctx context.Context, filters repositories.ConsultationFilters) (int64, error) {
	var count int64

	query := r.applyFilters(r.getDB(ctx).Model(&ConsultationModel{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ConsultationRepository) FindByID(ctx context.Context, id uint) (*entities.Consultation, error) {
	var model ConsultationModel

	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	consultation := r.toEntity(&model)
	one := []*entities.Consultation{consultation}

	if err := r.loadAuthors(ctx, one); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, one); err != nil {
		return nil, err
	}
	if err := r.loadAdvices(ctx, consultation); err != nil {
		return nil, err
	}

	return consultation, nil
}

func (r *ConsultationRepository) Create(ctx context.Context, consultation *entities.Consultation) error {
	model := r.toModel(consultation)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	consultation.ID = model.ID
	consultation.CreatedAt = milliToTime(model.CreatedAt)
	consultation.UpdatedAt = milliToTime(model.UpdatedAt)
	return nil
}

func (r *ConsultationRepository) Update(ctx context.Context, consultation *entities.Consultation) error {
	db := r.getDB(ctx)

	// Updates em colunas; updated_at é retocado automaticamente
	result := db.Model(&ConsultationModel{}).
		Where("id = ?", consultation.ID).
		Updates(map[string]interface{}{
			"title": consultation.Title,
			"body":  consultation.Body,
			"draft": consultation.Draft,
		})
	if result.Error != nil {
		return result.Error
	}

	var model ConsultationModel
	if err := db.Where("id = ?", consultation.ID).First(&model).Error; err != nil {
		return err
	}
	consultation.UpdatedAt = milliToTime(model.UpdatedAt)
	return nil
}

func (r *ConsultationRepository) DeleteByID(ctx context.Context, id uint) error {
	// Cascata explícita: vínculos e conselhos caem com a consulta
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("consultation_id = ?", id).Delete(&ConsultationTaggingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("consultation_id = ?", id).Delete(&AdviceModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&ConsultationModel{}).Error
	})
}

func (r *ConsultationRepository) AttachTags(ctx context.Context, consultationID uint, tagIDs []uint) error {
	// Ids repetidos contam como um vínculo só; a chave composta de
	// consultation_taggings rejeitaria o insert duplicado
	tagIDs = dedupeTagIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	db := r.getDB(ctx)

	if err := r.validateTagIDsExist(db, tagIDs); err != nil {
		return err
	}

	taggings := make([]ConsultationTaggingModel, len(tagIDs))
	for i, tagID := range tagIDs {
		taggings[i] = ConsultationTaggingModel{
			ConsultationID: consultationID,
			TagID:          tagID,
		}
	}

	// Insert único: ou todos os vínculos entram, ou nenhum
	return db.Create(&taggings).Error
}

func (r *ConsultationRepository) ReplaceTags(ctx context.Context, consultationID uint, tagIDs []uint) error {
	tagIDs = dedupeTagIDs(tagIDs)

	db := r.getDB(ctx)

	if len(tagIDs) > 0 {
		if err := r.validateTagIDsExist(db, tagIDs); err != nil {
			return err
		}
	}

	if err := db.Where("consultation_id = ?", consultationID).Delete(&ConsultationTaggingModel{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	taggings := make([]ConsultationTaggingModel, len(tagIDs))
	for i, tagID := range tagIDs {
		taggings[i] = ConsultationTaggingModel{
			ConsultationID: consultationID,
			TagID:          tagID,
		}
	}

	return db.Create(&taggings).Error
}

// dedupeTagIDs remove ids repetidos preservando a primeira ocorrência
func dedupeTagIDs(tagIDs []uint) []uint {
	seen := make(map[uint]bool, len(tagIDs))
	unique := make([]uint, 0, len(tagIDs))
	for _, id := range tagIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// validateTagIDsExist confere a existência de todos os ids antes de
// qualquer inserção. Conflict nomeia o primeiro id ausente.
func (r *ConsultationRepository) validateTagIDsExist(db *gorm.DB, tagIDs []uint) error {
	var existing []uint
	if err := db.Model(&TagModel{}).Where("id IN ?", tagIDs).Pluck("id", &existing).Error; err != nil {
		return err
	}

	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	for _, id := range tagIDs {
		if !known[id] {
			return apperrors.Conflict("error.conflict.unknown_tag", map[string]interface{}{"TagID": id})
		}
	}

	return nil
}

// applyFilters traduz os filtros de listagem para cláusulas WHERE
func (r *ConsultationRepository) applyFilters(query *gorm.DB, filters repositories.ConsultationFilters) *gorm.DB {
	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}
	if filters.Draft != nil {
		query = query.Where("draft = ?", *filters.Draft)
	}
	if filters.Solved != nil {
		if *filters.Solved {
			query = query.Where("solved_at IS NOT NULL")
		} else {
			query = query.Where("solved_at IS NULL")
		}
	}

	// Consultas ocultadas só aparecem para o próprio autor
	if filters.VisibleFor != nil {
		query = query.Where("hidden_at IS NULL OR author_id = ?", *filters.VisibleFor)
	} else {
		query = query.Where("hidden_at IS NULL")
	}

	return query
}

// loadAuthors popula autores em lote (left join: autor pode ser nil)
func (r *ConsultationRepository) loadAuthors(ctx context.Context, consultations []*entities.Consultation) error {
	ids := make([]uint, 0, len(consultations))
	for _, c := range consultations {
		if c.AuthorID != nil {
			ids = append(ids, *c.AuthorID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var models []*UserModel
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return err
	}

	users := usersByID(models)
	for _, c := range consultations {
		if c.AuthorID != nil {
			c.Author = users[*c.AuthorID]
		}
	}
	return nil
}

// loadTags popula as tags de cada consulta em lote, ordenadas por
// sort_order e id
func (r *ConsultationRepository) loadTags(ctx context.Context, consultations []*entities.Consultation) error {
	if len(consultations) == 0 {
		return nil
	}

	ids := make([]uint, len(consultations))
	for i, c := range consultations {
		ids[i] = c.ID
	}

	var taggings []ConsultationTaggingModel
	if err := r.getDB(ctx).Where("consultation_id IN ?", ids).Find(&taggings).Error; err != nil {
		return err
	}
	if len(taggings) == 0 {
		return nil
	}

	tagIDs := make([]uint, 0, len(taggings))
	for _, t := range taggings {
		tagIDs = append(tagIDs, t.TagID)
	}

	var tagModels []*TagModel
	if err := r.getDB(ctx).Where("id IN ?", tagIDs).Order("sort_order, id").Find(&tagModels).Error; err != nil {
		return err
	}

	tagsByConsultation := make(map[uint][]entities.Tag, len(consultations))
	for _, tagModel := range tagModels {
		for _, tagging := range taggings {
			if tagging.TagID == tagModel.ID {
				tagsByConsultation[tagging.ConsultationID] = append(
					tagsByConsultation[tagging.ConsultationID], tagToEntity(tagModel))
			}
		}
	}

	for _, c := range consultations {
		c.Tags = tagsByConsultation[c.ID]
	}
	return nil
}

// loadAdvices popula os conselhos visíveis da consulta: rascunhos e
// ocultados ficam de fora para todos, inclusive o autor, ordenados por
// created_at ascendente
func (r *ConsultationRepository) loadAdvices(ctx context.Context, consultation *entities.Consultation) error {
	var models []*AdviceModel

	err := r.getDB(ctx).
		Where("consultation_id = ? AND draft = ? AND hidden_at IS NULL", consultation.ID, false).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return err
	}

	authorIDs := make([]uint, 0, len(models))
	for _, m := range models {
		if m.AuthorID != nil {
			authorIDs = append(authorIDs, *m.AuthorID)
		}
	}

	users := map[uint]*entities.User{}
	if len(authorIDs) > 0 {
		var userModels []*UserModel
		if err := r.getDB(ctx).Where("id IN ?", authorIDs).Find(&userModels).Error; err != nil {
			return err
		}
		users = usersByID(userModels)
	}

	advices := make([]entities.Advice, len(models))
	for i, m := range models {
		advice := adviceToEntity(m)
		if m.AuthorID != nil {
			advice.Author = users[*m.AuthorID]
		}
		advices[i] = *advice
	}

	consultation.Advices = advices
	return nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *ConsultationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Conversores
func (r *ConsultationRepository) toModel(consultation *entities.Consultation) *ConsultationModel {
	return &ConsultationModel{
		ID:       consultation.ID,
		Title:    consultation.Title,
		Body:     consultation.Body,
		Draft:    consultation.Draft,
		HiddenAt: timePtrToMilli(consultation.HiddenAt),
		SolvedAt: timePtrToMilli(consultation.SolvedAt),
		AuthorID: consultation.AuthorID,
	}
}

func (r *ConsultationRepository) toEntity(model *ConsultationModel) *entities.Consultation {
	return &entities.Consultation{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Draft:     model.Draft,
		HiddenAt:  milliPtrToTime(model.HiddenAt),
		SolvedAt:  milliPtrToTime(model.SolvedAt),
		AuthorID:  model.AuthorID,
		CreatedAt: milliToTime(model.CreatedAt),
		UpdatedAt: milliToTime(model.UpdatedAt),
	}
}
