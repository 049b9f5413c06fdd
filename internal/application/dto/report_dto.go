package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportEntryDTO una ventana agregada del reporte de ventas (día o semana).
type ReportEntryDTO struct {
	Period    string          `json:"period"` // "daily" | "weekly"
	Bucket    time.Time       `json:"bucket"` // inicio de la ventana
	SaleCount int64           `json:"sale_count"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
