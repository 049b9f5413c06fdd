// Package session implementa el store de sesiones sobre Redis.
// La expiración la aplica Redis vía TTL: una sesión vencida desaparece sola,
// no hay job de limpieza.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SessionRepository = (*RedisStore)(nil)

// RedisStore implementación de SessionRepository sobre Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore construye el store. prefix separa las llaves de sesión del
// resto del keyspace (ej. "session").
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Create persiste la sesión con TTL = tiempo restante hasta ExpiresAt.
func (s *RedisStore) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("sesión ya expirada")
	}

	return s.client.Set(ctx, s.key(session.ID), data, ttl).Err()
}

// Get devuelve la sesión o (nil, nil) si no existe o ya expiró.
func (s *RedisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete borra la sesión. Idempotente: DEL sobre llave ausente no es error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
