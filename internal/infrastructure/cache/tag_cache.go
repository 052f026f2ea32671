package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/consulta-backend/internal/domain/entities"
	"github.com/rafabene/consulta-backend/internal/domain/ports"
)

const (
	tagCountsKey = "tags:public_counts"
	tagCountsTTL = 60 * time.Second
)

// TagCache é um cache best-effort da listagem de tags com contagens
// públicas. Falhas de cache degradam para o repository e nunca falham
// a requisição; a contagem pode ficar defasada até o TTL expirar.
type TagCache struct {
	client *redis.Client
	logger ports.Logger
}

// NewTagCache cria um TagCache. client pode ser nil (cache desabilitado).
func NewTagCache(client *redis.Client, logger ports.Logger) *TagCache {
	return &TagCache{client: client, logger: logger}
}

// Get retorna a listagem cacheada, ou false em miss/erro/desabilitado
func (c *TagCache) Get(ctx context.Context) ([]*entities.TagWithCount, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, tagCountsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("tag cache read failed", "error", err)
		}
		return nil, false
	}

	var tags []*entities.TagWithCount
	if err := json.Unmarshal(data, &tags); err != nil {
		c.logger.Warn("tag cache payload corrupted", "error", err)
		return nil, false
	}

	return tags, true
}

// Set grava a listagem com TTL
func (c *TagCache) Set(ctx context.Context, tags []*entities.TagWithCount) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(tags)
	if err != nil {
		c.logger.Warn("tag cache marshal failed", "error", err)
		return
	}

	if err := c.client.Set(ctx, tagCountsKey, data, tagCountsTTL).Err(); err != nil {
		c.logger.Warn("tag cache write failed", "error", err)
	}
}
