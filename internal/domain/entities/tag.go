package entities

import "time"

// Tag representa uma tag mestre atribuível a consultas.
// Tags são dados mestres: não são criadas por usuários finais.
type Tag struct {
	ID        uint
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// TagWithCount é uma tag acompanhada da contagem de consultas
// públicas (draft=false e não ocultadas) vinculadas a ela
type TagWithCount struct {
	Tag
	Count int64
}
