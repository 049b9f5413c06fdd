package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una transacción de venta (log append-only).
type Sale struct {
	ID        string
	Total     decimal.Decimal
	CreatedBy string // ID del usuario que registró la venta
	CreatedAt time.Time
}

// SaleItem es una línea de venta: producto, cantidad y total de línea al
// precio vigente en el momento de la transacción.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductCode string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // UnitPrice * Quantity
}
