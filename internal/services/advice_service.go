package services

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	apperrors "github.com/rafabene/consulta-backend/internal/domain/errors"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
)

// AdviceService contém a lógica de negócio para conselhos
type AdviceService struct {
	adviceRepo       repositories.AdviceRepository
	consultationRepo repositories.ConsultationRepository
	logger           ports.Logger
}

// NewAdviceService cria um novo AdviceService
func NewAdviceService(
	adviceRepo repositories.AdviceRepository,
	consultationRepo repositories.ConsultationRepository,
	logger ports.Logger,
) *AdviceService {
	return &AdviceService{
		adviceRepo:       adviceRepo,
		consultationRepo: consultationRepo,
		logger:           logger,
	}
}

// CreateAdviceInput representa os dados para criar um conselho
type CreateAdviceInput struct {
	Body  string
	Draft bool
}

// CreateAdvice cria um conselho. Qualquer usuário autenticado pode
// aconselhar, mas a consulta pai precisa estar visível para ele;
// consulta oculta ou rascunho alheio produz NotFound sem criar nada.
func (s *AdviceService) CreateAdvice(ctx context.Context, consultationID uint, input CreateAdviceInput, authorID uint) (*entities.Advice, error) {
	parent, err := s.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if parent == nil || !parent.VisibleTo(authorID) {
		return nil, apperrors.NotFound("error.not_found.consultation")
	}

	advice := &entities.Advice{
		Body:           input.Body,
		Draft:          input.Draft,
		ConsultationID: consultationID,
		AuthorID:       &authorID,
	}

	if err := s.adviceRepo.Create(ctx, advice); err != nil {
		return nil, err
	}

	return advice, nil
}

// UpdateDraftAdviceInput representa os dados para editar o rascunho
type UpdateDraftAdviceInput struct {
	Body  string
	Draft *bool // Permite publicar o rascunho na mesma operação
}

// UpdateDraftAdvice edita o conselho rascunho do próprio autor na
// consulta. NotFound se não houver rascunho — conselho já publicado é
// imutável por este caminho.
func (s *AdviceService) UpdateDraftAdvice(ctx context.Context, consultationID uint, input UpdateDraftAdviceInput, authorID uint) (*entities.Advice, error) {
	advice, err := s.adviceRepo.FindDraft(ctx, consultationID, authorID)
	if err != nil {
		return nil, err
	}
	if advice == nil {
		return nil, apperrors.NotFound("error.not_found.draft_advice")
	}

	advice.Body = input.Body
	if input.Draft != nil {
		advice.Draft = *input.Draft
	}

	if err := s.adviceRepo.Update(ctx, advice); err != nil {
		return nil, err
	}

	return advice, nil
}
