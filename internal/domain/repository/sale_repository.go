package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SaleRepository puerto de persistencia para el log append-only de ventas.
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
}

// ReportRow una fila agregada del reporte de ventas.
type ReportRow struct {
	Bucket    time.Time // inicio del día o de la semana
	SaleCount int64
	UnitsSold int64
	Revenue   decimal.Decimal
}

// ReportRepository consultas read-only de agregación de ventas.
type ReportRepository interface {
	// AggregateSales agrupa sale_items por ventana de tiempo.
	// granularity es "day" o "week" (date_trunc).
	AggregateSales(ctx context.Context, granularity string, since time.Time) ([]ReportRow, error)
}
