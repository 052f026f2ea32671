package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/consulta-backend/internal/infrastructure/config"
)

// NewRedisClient cria o cliente Redis e faz um Ping de verificação.
// Retorna nil quando nenhum endereço foi configurado: o cache é
// opcional e sua ausência nunca impede o serviço de subir.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
