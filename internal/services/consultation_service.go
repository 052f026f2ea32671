package services

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
	"github.com/rafabene/consulta-backend/internal/domain/rules"
)

// ConsultationService contém a lógica de negócio para consultas:
// política de visibilidade, regras de tags e o fluxo de
// criação/compensação.
type ConsultationService struct {
	consultationRepo repositories.ConsultationRepository
	uow              ports.UnitOfWork
	logger           ports.Logger
}

// NewConsultationService cria um novo ConsultationService
func NewConsultationService(
	consultationRepo repositories.ConsultationRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultationRepo: consultationRepo,
		uow:              uow,
		logger:           logger,
	}
}

// ListConsultationsInput representa os filtros de listagem
type ListConsultationsInput struct {
	UserID  *uint
	Draft   *bool
	Solved  *bool
	Page    int
	PerPage int
}

// ConsultationList é o resultado paginado da listagem
type ConsultationList struct {
	Consultations []*entities.Consultation
	TotalItems    int64
}

// ListConsultations lista consultas com política secure-by-default:
// sem filtro draft explícito, apenas consultas públicas aparecem; com
// draft=true, o filtro de autor é forçado para o próprio solicitante,
// ignorando qualquer userId passado. Solicitante anônimo pedindo
// rascunhos recebe resultado vazio.
func (s *ConsultationService) ListConsultations(ctx context.Context, input ListConsultationsInput, requestUserID *uint) (*ConsultationList, error) {
	filters := repositories.ConsultationFilters{
		AuthorID:   input.UserID,
		Solved:     input.Solved,
		VisibleFor: requestUserID,
		Page:       input.Page,
		PerPage:    input.PerPage,
	}

	wantDrafts := input.Draft != nil && *input.Draft
	if wantDrafts {
		if requestUserID == nil {
			return &ConsultationList{Consultations: []*entities.Consultation{}}, nil
		}
		draft := true
		filters.Draft = &draft
		filters.AuthorID = requestUserID
	} else {
		// Nunca vazar rascunhos alheios implicitamente
		draft := false
		filters.Draft = &draft
	}

	consultations, err := s.consultationRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	total, err := s.consultationRepo.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &ConsultationList{
		Consultations: consultations,
		TotalItems:    total,
	}, nil
}

// GetConsultation busca uma consulta por id aplicando a política de
// visibilidade. Consulta inexistente e consulta invisível para o
// solicitante produzem o mesmo NotFound: existência não vaza.
func (s *ConsultationService) GetConsultation(ctx context.Context, id uint, requestUserID uint) (*entities.Consultation, error) {
	consultation, err := s.consultationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if consultation == nil || !consultation.VisibleTo(requestUserID) {
		return nil, apperrors.NotFound("error.not_found.consultation")
	}

	return consultation, nil
}

// CreateConsultationInput representa os dados para criar uma consulta
type CreateConsultationInput struct {
	Title  string
	Body   string
	Draft  bool
	TagIDs []uint
}

// CreateConsultation cria uma consulta. A regra de tags é avaliada
// antes de qualquer escrita. Se o vínculo de tags falhar depois do
// insert, a consulta recém-criada é removida (delete compensatório) e
// o erro original é repropagado; se a própria compensação falhar, um
// erro fatal distinto preserva ambos os contextos.
func (s *ConsultationService) CreateConsultation(ctx context.Context, input CreateConsultationInput, authorID uint) (*entities.Consultation, error) {
	if err := evaluateTagRule(input.Draft, input.TagIDs); err != nil {
		return nil, err
	}

	consultation := &entities.Consultation{
		Title:    input.Title,
		Body:     input.Body,
		Draft:    input.Draft,
		AuthorID: &authorID,
	}

	if err := s.consultationRepo.Create(ctx, consultation); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.consultationRepo.AttachTags(ctx, consultation.ID, input.TagIDs); err != nil {
			s.logger.Error("tag attach failed, compensating",
				"operation", "CreateConsultation",
				"consultation_id", consultation.ID,
				"actor_id", authorID,
				"tag_ids", input.TagIDs,
				"error", err,
			)

			if delErr := s.consultationRepo.DeleteByID(ctx, consultation.ID); delErr != nil {
				s.logger.Error("compensating delete failed, manual intervention required",
					"operation", "CreateConsultation",
					"consultation_id", consultation.ID,
					"actor_id", authorID,
					"tag_ids", input.TagIDs,
					"original_error", err,
					"rollback_error", delErr,
				)
				return nil, apperrors.CompensationFailed(err, delErr)
			}

			return nil, err
		}
	}

	return s.consultationRepo.FindByID(ctx, consultation.ID)
}

// UpdateConsultationInput representa os dados para atualizar uma consulta
type UpdateConsultationInput struct {
	Title  string
	Body   string
	Draft  bool
	TagIDs []uint
}

// UpdateConsultation atualiza uma consulta do próprio autor. Quem não
// é dono recebe Forbidden: neste caminho de escrita a existência já
// foi revelada pela listagem/detalhe, diferente do caminho de leitura.
// Atualização de colunas e substituição de tags executam como um
// batch atômico; qualquer falha deixa tudo como estava.
func (s *ConsultationService) UpdateConsultation(ctx context.Context, id uint, input UpdateConsultationInput, requestUserID uint) (*entities.Consultation, error) {
	existing, err := s.consultationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NotFound("error.not_found.consultation")
	}
	if !existing.IsOwnedBy(requestUserID) {
		return nil, apperrors.Forbidden("error.forbidden.not_owner")
	}

	if err := evaluateTagRule(input.Draft, input.TagIDs); err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Body = input.Body
	existing.Draft = input.Draft

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.consultationRepo.Update(txCtx, existing); err != nil {
			return err
		}
		return s.consultationRepo.ReplaceTags(txCtx, id, input.TagIDs)
	})
	if err != nil {
		s.logger.Error("consultation update failed",
			"operation", "UpdateConsultation",
			"consultation_id", id,
			"actor_id", requestUserID,
			"tag_ids", input.TagIDs,
			"error", err,
		)
		return nil, err
	}

	return existing, nil
}

// evaluateTagRule traduz o resultado do avaliador puro para erros de
// validação. Invocado identicamente nos caminhos de criação e
// atualização.
func evaluateTagRule(draft bool, tagIDs []uint) error {
	switch rules.EvaluateTagRule(draft, tagIDs) {
	case rules.TagRuleExceedsMax:
		return &apperrors.DomainError{
			Kind:   apperrors.KindValidation,
			Key:    "error.validation.tags_exceeds_max",
			Params: map[string]interface{}{"Max": entities.MaxTags},
		}
	case rules.TagRuleRequiredForPublic:
		return apperrors.Validation("error.validation.tags_required_for_public")
	}
	return nil
}
