package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de venta: referencia de producto (código manual,
// con fallback a ID interno) y cantidad.
type SaleItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleRecordDTO una línea confirmada de la venta.
type SaleRecordDTO struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta confirmada.
type SaleResponse struct {
	SaleID      string          `json:"sale_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Records     []SaleRecordDTO `json:"records"`
	CreatedAt   time.Time       `json:"created_at"`
}
