package entities

import (
	"time"
)

// MaxTags é o número máximo de tags que uma consulta pode ter
const MaxTags = 3

// Consultation representa uma consulta publicada no fórum
type Consultation struct {
	ID        uint
	Title     string
	Body      string
	Draft     bool
	HiddenAt  *time.Time // Soft hide
	SolvedAt  *time.Time
	AuthorID  *uint // Nil se o autor foi deletado
	Author    *User
	Tags      []Tag
	Advices   []Advice
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHidden verifica se a consulta está ocultada (soft hide)
func (c *Consultation) IsHidden() bool {
	return c.HiddenAt != nil
}

// IsSolved verifica se a consulta foi marcada como resolvida
func (c *Consultation) IsSolved() bool {
	return c.SolvedAt != nil
}

// IsOwnedBy verifica se a consulta pertence ao usuário
func (c *Consultation) IsOwnedBy(userID uint) bool {
	return c.AuthorID != nil && *c.AuthorID == userID
}

// VisibleTo verifica se a consulta é visível para o usuário.
// Rascunhos e consultas ocultadas só são visíveis para o próprio autor.
// Resolvida não afeta visibilidade.
func (c *Consultation) VisibleTo(userID uint) bool {
	if c.IsOwnedBy(userID) {
		return true
	}
	return !c.Draft && !c.IsHidden()
}
