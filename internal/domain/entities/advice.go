package entities

import (
	"time"
)

// Advice representa um conselho (resposta) dado a uma consulta
type Advice struct {
	ID             uint
	Body           string
	Draft          bool
	HiddenAt       *time.Time // Soft hide
	ConsultationID uint
	AuthorID       *uint // Nil se o autor foi deletado
	Author         *User
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsHidden verifica se o conselho está ocultado
func (a *Advice) IsHidden() bool {
	return a.HiddenAt != nil
}

// IsOwnedBy verifica se o conselho pertence ao usuário
func (a *Advice) IsOwnedBy(userID uint) bool {
	return a.AuthorID != nil && *a.AuthorID == userID
}
