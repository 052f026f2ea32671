package entities

import "time"

// IdentityMapping vincula uma identidade externa (do provedor de
// autenticação) a exatamente um usuário interno. Criado uma única vez,
// no primeiro login da identidade, pelo fluxo de signup — nunca por
// este serviço. O id interno nunca é exposto ao subsistema externo.
type IdentityMapping struct {
	ID         uint
	ExternalID string
	UserID     uint
	CreatedAt  time.Time
}
