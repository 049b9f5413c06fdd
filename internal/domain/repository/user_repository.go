package repository

import (
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// Las búsquedas devuelven (nil, nil) cuando no hay fila, no error.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateLoginState persiste solo los contadores del subsistema de lockout
	// (un único UPDATE de fila = unidad de atomicidad por usuario).
	UpdateLoginState(id string, attempts int, cooldownUntil *time.Time) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
