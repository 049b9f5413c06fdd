package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Code es el identificador "manual" asignado por el negocio (ej. P001) y es la
// llave principal de búsqueda en ventas; ID es el identificador interno.
// Quantity nunca puede quedar negativa: toda deducción se valida antes de mutar.
type Product struct {
	ID        string
	Code      string // código manual, único
	Name      string
	Price     decimal.Decimal // precio de venta, >= 0
	Quantity  int64           // unidades en stock, >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
