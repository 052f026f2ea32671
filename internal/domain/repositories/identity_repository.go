package repositories

import (
	"context"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// IdentityMappingRepository define a interface para consulta do vínculo
// identidade externa → usuário interno. A busca é sempre pelo id
// externo; o id interno nunca é exposto ao subsistema de autenticação.
type IdentityMappingRepository interface {
	// FindByExternalID retorna o vínculo, ou nil se a identidade ainda
	// não foi mapeada pelo fluxo de signup.
	FindByExternalID(ctx context.Context, externalID string) (*entities.IdentityMapping, error)
}
