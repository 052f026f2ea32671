package services

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
	"github.com/rafabene/consulta-backend/internal/domain/repositories"
	"github.com/rafabene/consulta-backend/internal/infrastructure/cache"
)

// TagService contém a lógica de negócio para tags
type TagService struct {
	tagRepo repositories.TagRepository
	cache   *cache.TagCache
	logger  ports.Logger
}

// NewTagService cria um novo TagService
func NewTagService(tagRepo repositories.TagRepository, tagCache *cache.TagCache, logger ports.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		cache:   tagCache,
		logger:  logger,
	}
}

// ListTags retorna as tags com contagem de consultas públicas. O
// resultado é cacheado por um TTL curto; a contagem pode ficar
// defasada até o TTL após publicar/ocultar uma consulta.
func (s *TagService) ListTags(ctx context.Context) ([]*entities.TagWithCount, error) {
	if tags, ok := s.cache.Get(ctx); ok {
		return tags, nil
	}

	tags, err := s.tagRepo.ListWithPublicCounts(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, tags)
	return tags, nil
}
