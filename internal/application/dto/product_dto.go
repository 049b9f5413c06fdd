package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=50"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Quantity no se actualiza aquí: el stock solo cambia por deducción o venta.
type UpdateProductRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price"`
}

// DeductStockRequest body para POST /api/products/:id/deduct.
type DeductStockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
