package entities

import (
	"time"
)

// User representa um usuário do sistema.
// Usuários chegam já autenticados pelo provedor externo; este serviço
// nunca gerencia credenciais.
type User struct {
	ID        uint
	Name      string
	Disabled  bool // Metadado de exibição, não é checagem de acesso
	CreatedAt time.Time
	UpdatedAt time.Time
}
