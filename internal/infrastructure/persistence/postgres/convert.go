package postgres

import (
	"time"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
)

// Conversores compartilhados entre repositories

func milliToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func milliPtrToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := milliToTime(*ms)
	return &t
}

func timePtrToMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func userToEntity(model *UserModel) *entities.User {
	if model == nil {
		return nil
	}
	return &entities.User{
		ID:        model.ID,
		Name:      model.Name,
		Disabled:  model.Disabled,
		CreatedAt: milliToTime(model.CreatedAt),
		UpdatedAt: milliToTime(model.UpdatedAt),
	}
}

func tagToEntity(model *TagModel) entities.Tag {
	return entities.Tag{
		ID:        model.ID,
		Name:      model.Name,
		SortOrder: model.SortOrder,
		CreatedAt: milliToTime(model.CreatedAt),
	}
}

// loadUsersByID busca usuários em lote e indexa por id
func usersByID(models []*UserModel) map[uint]*entities.User {
	users := make(map[uint]*entities.User, len(models))
	for _, m := range models {
		users[m.ID] = userToEntity(m)
	}
	return users
}
