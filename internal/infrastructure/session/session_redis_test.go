package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/session"
)

func newTestStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "session"), mr
}

func newSession(ttl time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        "sess-123",
		UserID:    "user-1",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestRedisStore_CreateYGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	s := newSession(time.Hour)

	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.UserID, got.UserID)
	assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestRedisStore_Get_Inexistente_NilNil(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "no-existe")
	require.NoError(t, err, "llave ausente no es error")
	assert.Nil(t, got)
}

func TestRedisStore_TTLExpirado_Desaparece(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	s := newSession(time.Minute)

	require.NoError(t, store.Create(ctx, s))

	// Avanzar el reloj de Redis más allá del TTL.
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "una sesión expirada por TTL debe comportarse como ausente")
}

func TestRedisStore_Create_SesionYaExpirada_Error(t *testing.T) {
	store, _ := newTestStore(t)
	s := newSession(-time.Minute)

	err := store.Create(context.Background(), s)
	assert.Error(t, err, "no tiene sentido persistir una sesión nacida muerta")
}

func TestRedisStore_Delete_Idempotente(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	s := newSession(time.Hour)

	require.NoError(t, store.Create(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Delete(ctx, s.ID), "borrar dos veces también es éxito")
	assert.NoError(t, store.Delete(ctx, "nunca-existió"))
}

func TestRedisStore_PrefijoAislaLlaves(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := session.NewRedisStore(client, "session")
	b := session.NewRedisStore(client, "otro")
	ctx := context.Background()
	s := newSession(time.Hour)

	require.NoError(t, a.Create(ctx, s))

	got, err := b.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "stores con prefijos distintos no comparten sesiones")
}
