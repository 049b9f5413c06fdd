package repository

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SessionRepository puerto del store de sesiones (Redis con TTL en producción).
// El store es responsable de la expiración: una sesión vencida simplemente
// deja de existir.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// Get devuelve (nil, nil) si la sesión no existe o ya expiró.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Delete es idempotente: borrar una sesión ausente no es error.
	Delete(ctx context.Context, id string) error
}
