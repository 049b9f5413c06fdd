package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("sesión inválida o ausente")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrRateLimited        = errors.New("demasiados intentos fallidos")
)

// RateLimitedError indica que el usuario está en cooldown por intentos fallidos.
// RetryAfterSeconds es la pista retry-after que el boundary expone en el 429.
type RateLimitedError struct {
	RetryAfterSeconds int64
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("demasiados intentos fallidos, reintente en %d segundos", e.RetryAfterSeconds)
}

// Is permite errors.Is(err, ErrRateLimited).
func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// InsufficientStockError nombra el producto que hace fallar una venta o deducción.
type InsufficientStockError struct {
	ProductCode string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductCode, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ProductNotFoundError nombra la referencia (código manual o ID) que no resolvió a un producto.
type ProductNotFoundError struct {
	Ref string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado: %s", e.Ref)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }
